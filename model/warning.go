package model

import "fmt"

// WarningType categorizes non-fatal issues raised during planning and
// application. Warnings are accumulated and surfaced collectively after
// processing, never interleaved.
type WarningType int

const (
	// WarningOverflow indicates replacement text exceeded a shape's
	// estimated character budget and was truncated or summarized.
	WarningOverflow WarningType = iota

	// WarningLengthRatio indicates replacement text is significantly
	// longer than the original (ratio above the configured threshold),
	// independent of whether truncation occurred.
	WarningLengthRatio

	// WarningSummarizer indicates the pluggable summarizer failed or
	// returned over-budget text and truncation was used as a backstop.
	WarningSummarizer
)

// String returns a string representation of the warning type.
func (t WarningType) String() string {
	switch t {
	case WarningOverflow:
		return "overflow"
	case WarningLengthRatio:
		return "length-ratio"
	case WarningSummarizer:
		return "summarizer"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue tied to a specific shape.
type Warning struct {
	Type    WarningType
	Slide   int // 1-based slide number
	Shape   int // 0-based shape ordinal
	Message string
}

// Error-style formatting for a single warning.
func (w Warning) String() string {
	return fmt.Sprintf("slide %d shape %d: %s: %s", w.Slide, w.Shape, w.Type, w.Message)
}
