package slidefill

import (
	"github.com/tsawler/slidefill/classify"
	"github.com/tsawler/slidefill/fit"
	"github.com/tsawler/slidefill/model"
)

// fillOptions holds configuration for a fill run.
type fillOptions struct {
	// Slide selection (1-indexed). nil means all slides.
	slides []int

	// Threshold configuration for classification and fitting.
	classifyConfig classify.Config
	fitConfig      fit.Config

	// Replacement content.
	record    model.ContentRecord
	hasRecord bool

	// Optional summarizer consulted under fit.PolicySummarize.
	summarizer fit.Summarizer
}

// defaultOptions returns the default fill options.
func defaultOptions() fillOptions {
	return fillOptions{
		slides:         nil,
		classifyConfig: classify.DefaultConfig(),
		fitConfig:      fit.DefaultConfig(),
	}
}

// clone creates a deep copy of fillOptions.
func (o fillOptions) clone() fillOptions {
	newOpts := fillOptions{
		classifyConfig: o.classifyConfig,
		fitConfig:      o.fitConfig,
		record:         o.record,
		hasRecord:      o.hasRecord,
		summarizer:     o.summarizer,
	}

	if o.slides != nil {
		newOpts.slides = make([]int, len(o.slides))
		copy(newOpts.slides, o.slides)
	}

	return newOpts
}
