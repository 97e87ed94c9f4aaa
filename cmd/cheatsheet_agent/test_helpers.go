package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the cheatsheet_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "cheatsheet_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/cheatsheet_agent ./cmd/cheatsheet_agent'", binaryPath)
	}

	return binaryPath
}

// writeTestFile writes content to name inside a fresh temp dir and returns its path
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// clearEnv blanks every CHEATSHEET_* variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CHEATSHEET_PAGE_SIZE",
		"CHEATSHEET_FONT_SIZE",
		"CHEATSHEET_COLUMNS",
		"CHEATSHEET_PAGES",
		"CHEATSHEET_TARGET_UTILIZATION",
		"CHEATSHEET_TOPICS",
		"CHEATSHEET_REFERENCE",
	} {
		t.Setenv(name, "")
	}
}

const sampleOutline = `# Derivatives [high]

The derivative measures the instantaneous rate of change.

## Power rule

d/dx x^n = n x^(n-1)

## Chain rule [low]

d/dx f(g(x)) = f'(g(x)) g'(x)

# Integrals

Integration accumulates area under a curve.

` + "```" + `
∫ x^n dx = x^(n+1)/(n+1) + C
` + "```" + `
`
