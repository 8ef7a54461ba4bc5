// Package fit constrains replacement text to the capacity of the shape that
// will hold it.
//
// A shape's capacity is estimated from its area: the character budget is
// (width × height / CharDensity) × SafetyMargin. Text within budget passes
// through unchanged. Text over budget is shortened according to the
// configured [Policy]: [PolicyTruncate] cuts to the budget with a trailing
// ellipsis, [PolicySummarize] delegates to a pluggable [Summarizer] and
// truncates its output as a backstop if it still exceeds the budget.
//
// Fitting is idempotent: applying the engine to its own output returns the
// output unchanged.
//
// The engine also flags disproportionate replacements. When the new text is
// more than LengthRatioLimit times the length of the text it replaces, the
// result records the excess so callers can surface a warning, whether or
// not shortening occurred.
package fit
