package types

// CalibrationMode selects how optimizer targets are calibrated.
// It is either DefaultCalibration or ReferenceGuided.
type CalibrationMode interface {
	calibrationMode()
}

// DefaultCalibration uses the constraints alone
type DefaultCalibration struct{}

// ReferenceGuided nudges targets toward a reference document
type ReferenceGuided struct {
	Analysis ReferenceFormatAnalysis
}

func (DefaultCalibration) calibrationMode() {}
func (ReferenceGuided) calibrationMode()    {}

// CalibrationFor returns ReferenceGuided when a reference analysis is present,
// DefaultCalibration otherwise.
func CalibrationFor(ref *ReferenceFormatAnalysis) CalibrationMode {
	if ref == nil {
		return DefaultCalibration{}
	}
	return ReferenceGuided{Analysis: *ref}
}
