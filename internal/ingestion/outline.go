package ingestion

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// outlineNamespace seeds deterministic IDs for outline topics
var outlineNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("cheatsheet-packer/outline"))

// priorityMarker matches a trailing "[high]", "[medium]" or "[low]" on a heading
var priorityMarker = regexp.MustCompile(`(?i)\s*\[(high|medium|low)\]\s*$`)

// outlineConfidence is assigned to hand-written outline entries
const outlineConfidence = 1.0

// ParseOutline reads a Markdown outline into topics.
//
// Level-1 headings start topics and level-2 headings start subtopics of the
// current topic. Paragraphs, lists, quotes and deeper headings become body text
// of the innermost open section. Fenced code blocks and images become visual
// examples of the current topic. A heading may carry a priority marker such as
// "## Chain rule [high]" and an explicit ID such as "# Limits {#limits}";
// otherwise the priority is medium and the ID is derived from the heading path.
func ParseOutline(source []byte) ([]types.OrganizedTopic, error) {
	md := goldmark.New(goldmark.WithParserOptions(parser.WithAttribute()))
	doc := md.Parser().Parse(text.NewReader(source))

	b := &outlineBuilder{source: source}
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		b.block(node)
	}
	b.flush()

	if len(b.topics) == 0 {
		return nil, fmt.Errorf("outline has no level-1 headings")
	}
	return b.topics, nil
}

// outlineBuilder accumulates topics while walking top-level blocks
type outlineBuilder struct {
	source []byte
	topics []types.OrganizedTopic

	topic    *types.OrganizedTopic
	subtopic *types.EnhancedSubTopic
	body     []string
}

func (b *outlineBuilder) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		switch n.Level {
		case 1:
			b.flush()
			b.startTopic(n)
		case 2:
			b.flushBody()
			b.startSubtopic(n)
		default:
			b.appendBody(inlineText(n, b.source))
		}
	case *ast.FencedCodeBlock:
		b.addExample(types.VisualExample{
			Kind:    "code",
			Caption: string(n.Language(b.source)),
			Content: strings.TrimRight(blockLines(n, b.source), "\n"),
		})
	case *ast.CodeBlock:
		b.addExample(types.VisualExample{
			Kind:    "code",
			Content: strings.TrimRight(blockLines(n, b.source), "\n"),
		})
	case *ast.Paragraph:
		for _, img := range images(n) {
			b.addExample(types.VisualExample{
				Kind:    "image",
				Caption: inlineText(img, b.source),
				Content: string(img.Destination),
			})
		}
		b.appendBody(inlineText(n, b.source))
	case *ast.List:
		b.appendBody(listText(n, b.source, 0))
	case *ast.ThematicBreak, *ast.HTMLBlock:
	default:
		b.appendBody(inlineText(n, b.source))
	}
}

func (b *outlineBuilder) startTopic(h *ast.Heading) {
	title, priority := splitHeading(inlineText(h, b.source))
	id := headingID(h)
	if id == "" {
		id = uuid.NewSHA1(outlineNamespace, []byte(fmt.Sprintf("%d/%s", len(b.topics), title))).String()
	}
	b.topic = &types.OrganizedTopic{
		ID:         id,
		Title:      title,
		Confidence: outlineConfidence,
		Priority:   priority,
		Subtopics:  []types.EnhancedSubTopic{},
	}
}

func (b *outlineBuilder) startSubtopic(h *ast.Heading) {
	if b.topic == nil {
		// A subtopic heading before any topic is promoted to a topic
		b.startTopic(h)
		return
	}
	title, priority := splitHeading(inlineText(h, b.source))
	id := headingID(h)
	if id == "" {
		seed := fmt.Sprintf("%s/%d/%s", b.topic.ID, len(b.topic.Subtopics), title)
		id = uuid.NewSHA1(outlineNamespace, []byte(seed)).String()
	}
	b.topic.Subtopics = append(b.topic.Subtopics, types.EnhancedSubTopic{
		ID:            id,
		Title:         title,
		Confidence:    outlineConfidence,
		Priority:      priority,
		ParentTopicID: b.topic.ID,
	})
	b.subtopic = &b.topic.Subtopics[len(b.topic.Subtopics)-1]
}

func (b *outlineBuilder) addExample(example types.VisualExample) {
	if b.topic == nil {
		return
	}
	if example.ID == "" {
		seed := fmt.Sprintf("%s/example/%d", b.topic.ID, len(b.topic.Examples))
		example.ID = uuid.NewSHA1(outlineNamespace, []byte(seed)).String()
	}
	b.topic.Examples = append(b.topic.Examples, example)
}

func (b *outlineBuilder) appendBody(s string) {
	if s = strings.TrimSpace(s); s != "" {
		b.body = append(b.body, s)
	}
}

// flushBody assigns the pending body text to the innermost open section
func (b *outlineBuilder) flushBody() {
	if b.topic == nil {
		b.body = nil
		return
	}
	content := CleanText(strings.Join(b.body, "\n\n"))
	b.body = nil
	if content == "" {
		return
	}
	if b.subtopic != nil {
		b.subtopic.Content = joinContent(b.subtopic.Content, content)
		return
	}
	b.topic.Content = joinContent(b.topic.Content, content)
}

// flush closes the current topic
func (b *outlineBuilder) flush() {
	b.flushBody()
	if b.topic != nil {
		b.topics = append(b.topics, *b.topic)
	}
	b.topic = nil
	b.subtopic = nil
}

func joinContent(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + "\n\n" + addition
}

// splitHeading removes a priority marker from a heading. Unmarked headings are medium.
func splitHeading(heading string) (string, types.Priority) {
	priority := types.PriorityMedium
	if m := priorityMarker.FindStringSubmatch(heading); m != nil {
		priority = types.Priority(strings.ToLower(m[1]))
		heading = heading[:len(heading)-len(m[0])]
	}
	return strings.TrimSpace(heading), priority
}

// headingID returns an explicit {#id} attribute, if any
func headingID(h *ast.Heading) string {
	value, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	if id, ok := value.([]byte); ok {
		return string(id)
	}
	return ""
}

// inlineText concatenates the text beneath a node. Images nested in the node
// contribute nothing since they are captured separately as examples; an image
// node itself yields its alt text.
func inlineText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	collectText(node, source, &buf, node.Kind() != ast.KindImage)
	return strings.TrimSpace(buf.String())
}

func collectText(n ast.Node, source []byte, buf *bytes.Buffer, skipImages bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.Image:
			if !skipImages {
				collectText(t, source, buf, skipImages)
			}
		default:
			collectText(c, source, buf, skipImages)
		}
	}
}

// images returns the images inside a paragraph
func images(p *ast.Paragraph) []*ast.Image {
	var found []*ast.Image
	_ = ast.Walk(p, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := n.(*ast.Image); ok && entering {
			found = append(found, img)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// listText renders a list as dash items, nesting with two spaces per level
func listText(list *ast.List, source []byte, depth int) string {
	var lines []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		var nested []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, listText(sub, source, depth+1))
				continue
			}
			if s := inlineText(c, source); s != "" {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Repeat("  ", depth)+"- "+strings.Join(parts, " "))
		lines = append(lines, nested...)
	}
	return strings.Join(lines, "\n")
}

// blockLines returns the raw lines of a code block
func blockLines(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.String()
}
