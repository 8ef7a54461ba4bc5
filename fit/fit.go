package fit

import "context"

// Policy selects how over-budget text is shortened.
type Policy int

const (
	// PolicyTruncate cuts over-budget text to the character budget,
	// ending it with an ellipsis.
	PolicyTruncate Policy = iota
	// PolicySummarize delegates over-budget text to a Summarizer. When
	// no summarizer is configured, or it fails, truncation is used as a
	// fallback.
	PolicySummarize
)

// String returns a string representation of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyTruncate:
		return "truncate"
	case PolicySummarize:
		return "summarize"
	default:
		return "unknown"
	}
}

// ellipsis terminates truncated text.
const ellipsis = "..."

// Config holds text-fitting parameters.
type Config struct {
	// CharDensity is the shape area, in square layout units, estimated
	// to hold one character.
	// Default: 100
	CharDensity float64

	// SafetyMargin scales the raw area-derived budget down to leave
	// rendering headroom.
	// Default: 0.8
	SafetyMargin float64

	// LengthRatioLimit is the replacement-to-original length ratio above
	// which a result is flagged as disproportionate.
	// Default: 1.5
	LengthRatioLimit float64

	// Policy selects the shortening strategy for over-budget text.
	// Default: PolicyTruncate
	Policy Policy
}

// DefaultConfig returns the default fitting parameters.
func DefaultConfig() Config {
	return Config{
		CharDensity:      100,
		SafetyMargin:     0.8,
		LengthRatioLimit: 1.5,
		Policy:           PolicyTruncate,
	}
}

// Fitter applies a fixed Config to replacement text.
type Fitter struct {
	config     Config
	summarizer Summarizer
}

// New creates a fitter with default configuration.
func New() *Fitter {
	return &Fitter{config: DefaultConfig()}
}

// NewWithConfig creates a fitter with custom configuration.
func NewWithConfig(config Config) *Fitter {
	return &Fitter{config: config}
}

// Config returns the fitter's configuration.
func (f *Fitter) Config() Config {
	return f.config
}

// UseSummarizer installs the collaborator consulted under PolicySummarize.
func (f *Fitter) UseSummarizer(s Summarizer) {
	f.summarizer = s
}

// Result reports what fitting did to one replacement string.
type Result struct {
	// Text is the fitted replacement, never longer than Budget
	// characters when Budget is positive.
	Text string

	// Budget is the character budget derived from the shape area.
	Budget int

	// Overflow is true when the replacement exceeded the budget and was
	// shortened.
	Overflow bool

	// Truncated and Summarized record which strategy produced Text when
	// Overflow is true.
	Truncated  bool
	Summarized bool

	// RatioExceeded is true when the replacement was disproportionately
	// longer than the text it replaced, independent of Overflow.
	RatioExceeded bool

	// SummarizerErr holds the summarizer failure that forced the
	// truncation fallback, if any.
	SummarizerErr error
}

// Budget returns the estimated character capacity of a shape with the
// given dimensions. Degenerate dimensions yield zero, which disables
// shortening.
func (f *Fitter) Budget(width, height float64) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return int(width * height / f.config.CharDensity * f.config.SafetyMargin)
}

// Fit constrains replacement so it does not exceed the budget estimated
// from the shape dimensions. The original text is consulted only for the
// length-ratio check. The context is passed to the summarizer under
// PolicySummarize and is otherwise unused.
func (f *Fitter) Fit(ctx context.Context, original, replacement string, width, height float64) Result {
	budget := f.Budget(width, height)
	res := Result{
		Text:          replacement,
		Budget:        budget,
		RatioExceeded: f.ratioExceeded(original, replacement),
	}

	if budget <= 0 || len([]rune(replacement)) <= budget {
		return res
	}
	res.Overflow = true

	if f.config.Policy == PolicySummarize && f.summarizer != nil {
		summary, err := f.summarizer.Summarize(ctx, replacement, budget)
		if err == nil {
			res.Summarized = true
			res.Text = summary
			if len([]rune(summary)) > budget {
				// The collaborator broke its contract; cut its
				// output rather than overflow the shape.
				res.Truncated = true
				res.Text = truncate(summary, budget)
			}
			return res
		}
		res.SummarizerErr = err
	}

	res.Truncated = true
	res.Text = truncate(replacement, budget)
	return res
}

// ratioExceeded reports whether replacement is disproportionately longer
// than original. Replacing empty text with non-empty text always exceeds.
func (f *Fitter) ratioExceeded(original, replacement string) bool {
	origLen := len([]rune(original))
	newLen := len([]rune(replacement))
	if origLen == 0 {
		return newLen > 0
	}
	return float64(newLen) > float64(origLen)*f.config.LengthRatioLimit
}

// truncate cuts text to at most budget characters, ending with an ellipsis
// when the budget leaves room for one.
func truncate(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	if budget <= len(ellipsis) {
		return string(runes[:budget])
	}
	return string(runes[:budget-len(ellipsis)]) + ellipsis
}
