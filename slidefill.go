// Package slidefill provides a fluent API for filling slide-deck
// templates with structured content.
//
// Basic usage:
//
//	result, warnings, err := slidefill.Open("template.pptx").
//	    WithContentFile("update.md").
//	    Fill(ctx, "out.pptx")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", slidefill.FormatWarnings(warnings))
//	}
//
// With explicit content and tuned thresholds:
//
//	batch, _, err := slidefill.Open("template.pptx").
//	    WithContent(record).
//	    WithClassifyConfig(cfg).
//	    Slides(2, 3).
//	    Plan(ctx)
//
// For advanced use cases the lower-level classify, match, fit, and pptx
// packages are also available.
package slidefill

import (
	"strings"

	"github.com/tsawler/slidefill/model"
	"github.com/tsawler/slidefill/pptx"
)

// Warning is a non-fatal issue raised while planning or applying updates.
// Warnings accumulate across the whole run and are returned collectively
// by the terminal operations.
type Warning = model.Warning

// Open opens a PPTX template and returns a Filler for fluent
// configuration. The returned Filler must be closed when done, either
// explicitly via Close() or implicitly through a terminal operation like
// Fill().
//
// Example:
//
//	batch, warnings, err := slidefill.Open("template.pptx").WithContent(record).Plan(ctx)
func Open(filename string) *Filler {
	return &Filler{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates a Filler from an already-opened pptx.Reader. The
// caller keeps responsibility for closing the reader.
func FromReader(r *pptx.Reader) *Filler {
	return &Filler{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
