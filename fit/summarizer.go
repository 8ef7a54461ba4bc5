package fit

import "context"

// Summarizer condenses text to at most budget characters. Implementations
// should honor the budget themselves; the fitter truncates their output as
// a backstop if they do not.
type Summarizer interface {
	Summarize(ctx context.Context, text string, budget int) (string, error)
}

// SummarizerFunc adapts a function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, text string, budget int) (string, error)

// Summarize calls the underlying function.
func (fn SummarizerFunc) Summarize(ctx context.Context, text string, budget int) (string, error) {
	return fn(ctx, text, budget)
}
