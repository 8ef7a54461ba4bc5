package slidefill

import (
	"context"
	"fmt"
	"os"

	"github.com/tsawler/slidefill/classify"
	"github.com/tsawler/slidefill/content"
	"github.com/tsawler/slidefill/fit"
	"github.com/tsawler/slidefill/format"
	"github.com/tsawler/slidefill/match"
	"github.com/tsawler/slidefill/model"
	"github.com/tsawler/slidefill/pptx"
)

// Filler provides a fluent interface for analyzing a template and filling
// it with content. Each configuration method returns a new Filler
// instance, making it safe for concurrent use and allowing method
// chaining.
type Filler struct {
	// Source
	filename string

	reader *pptx.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options fillOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Filler with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (f *Filler) clone() *Filler {
	return &Filler{
		filename:     f.filename,
		reader:       f.reader,
		ownsReader:   f.ownsReader,
		readerOpened: f.readerOpened,
		options:      f.options.clone(),
		err:          f.err,
	}
}

// ensureReader opens the reader if not already open.
func (f *Filler) ensureReader() error {
	if f.readerOpened {
		return nil
	}
	if f.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	r, err := pptx.Open(f.filename)
	if err != nil {
		return fmt.Errorf("failed to open template: %w", err)
	}
	f.reader = r
	f.ownsReader = true
	f.readerOpened = true
	return nil
}

// Close releases resources associated with the Filler.
// It is safe to call Close multiple times.
func (f *Filler) Close() error {
	if f.ownsReader && f.reader != nil {
		err := f.reader.Close()
		f.reader = nil
		f.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Filler instance)
// ============================================================================

// WithContent sets the replacement content for the fill.
func (f *Filler) WithContent(record model.ContentRecord) *Filler {
	newF := f.clone()
	newF.options.record = record
	newF.options.hasRecord = true
	return newF
}

// WithContentFile loads replacement content from a JSON or Markdown file.
// The format is detected from the extension, falling back to content
// sniffing.
func (f *Filler) WithContentFile(path string) *Filler {
	newF := f.clone()
	if newF.err != nil {
		return newF
	}

	data, err := os.ReadFile(path)
	if err != nil {
		newF.err = fmt.Errorf("reading content file: %w", err)
		return newF
	}

	kind := format.Detect(path)
	if kind == format.Unknown {
		kind = format.DetectFromMagic(data)
	}

	var record model.ContentRecord
	switch kind {
	case format.JSON:
		record, err = content.DecodeJSON(data)
	case format.Markdown:
		record, err = content.DecodeMarkdown(data)
	default:
		err = fmt.Errorf("unsupported content format: %s", path)
	}
	if err != nil {
		newF.err = err
		return newF
	}

	newF.options.record = record
	newF.options.hasRecord = true
	return newF
}

// WithClassifyConfig overrides the classification thresholds.
func (f *Filler) WithClassifyConfig(cfg classify.Config) *Filler {
	newF := f.clone()
	newF.options.classifyConfig = cfg
	return newF
}

// WithFitConfig overrides the text-fitting parameters.
func (f *Filler) WithFitConfig(cfg fit.Config) *Filler {
	newF := f.clone()
	newF.options.fitConfig = cfg
	return newF
}

// WithSummarizer installs a summarizer for over-budget text. It is only
// consulted when the fit policy is fit.PolicySummarize.
func (f *Filler) WithSummarizer(s fit.Summarizer) *Filler {
	newF := f.clone()
	newF.options.summarizer = s
	return newF
}

// Slides restricts matching to the given slide numbers (1-indexed).
// Multiple calls are cumulative.
func (f *Filler) Slides(numbers ...int) *Filler {
	newF := f.clone()
	newF.options.slides = append(newF.options.slides, numbers...)
	return newF
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Deck extracts the template structure. The Filler is closed afterwards.
func (f *Filler) Deck() (*model.Deck, error) {
	defer f.Close()
	if f.err != nil {
		return nil, f.err
	}
	if err := f.ensureReader(); err != nil {
		return nil, err
	}
	return f.selectedDeck(), nil
}

// Structure extracts the template structure as a JSON structure record.
// The Filler is closed afterwards.
func (f *Filler) Structure() ([]byte, error) {
	deck, err := f.Deck()
	if err != nil {
		return nil, err
	}
	return deck.MarshalStructure()
}

// Analysis holds the classification of a deck.
type Analysis struct {
	Slides []SlideAnalysis
}

// SlideAnalysis holds the classification of one slide: its type, the
// purpose of each recorded shape keyed by shape index, and the detected
// label-value pairs.
type SlideAnalysis struct {
	Number   int
	Type     classify.SlideType
	Purposes map[int]classify.ShapePurpose
	Pairs    []classify.LabelValuePair
}

// Analyze classifies the template's slides and shapes. The Filler is
// closed afterwards.
func (f *Filler) Analyze() (*Analysis, error) {
	defer f.Close()
	if f.err != nil {
		return nil, f.err
	}
	if err := f.ensureReader(); err != nil {
		return nil, err
	}

	classifier := classify.NewWithConfig(f.options.classifyConfig)
	deck := f.selectedDeck()

	analysis := &Analysis{}
	for _, slide := range deck.Slides {
		sa := SlideAnalysis{
			Number:   slide.Number,
			Type:     classifier.ClassifySlide(slide),
			Purposes: make(map[int]classify.ShapePurpose, len(slide.Shapes)),
			Pairs:    classifier.DetectPairs(slide.Shapes),
		}
		for _, shape := range slide.Shapes {
			sa.Purposes[shape.Index] = classifier.ClassifyShape(shape, slide.Width, slide.Height)
		}
		analysis.Slides = append(analysis.Slides, sa)
	}
	return analysis, nil
}

// Plan matches the configured content against the template and returns
// the resulting update batch, along with any warnings raised while
// fitting text. The Filler is closed afterwards.
func (f *Filler) Plan(ctx context.Context) (model.UpdateBatch, []Warning, error) {
	defer f.Close()
	return f.plan(ctx)
}

// Fill plans and applies the configured content, writing the filled deck
// to outPath. Warnings from planning and application are returned
// together. The Filler is closed afterwards.
func (f *Filler) Fill(ctx context.Context, outPath string) (*pptx.Result, []Warning, error) {
	defer f.Close()

	batch, warnings, err := f.plan(ctx)
	if err != nil {
		return nil, warnings, err
	}
	if f.filename == "" {
		return nil, warnings, fmt.Errorf("filling requires a file-backed template")
	}

	res, err := pptx.Apply(f.filename, outPath, f.reader.Deck(), batch)
	if err != nil {
		return nil, warnings, err
	}
	warnings = append(warnings, res.Warnings...)
	return res, warnings, nil
}

// plan runs matching without closing the Filler.
func (f *Filler) plan(ctx context.Context) (model.UpdateBatch, []Warning, error) {
	if f.err != nil {
		return model.UpdateBatch{}, nil, f.err
	}
	if !f.options.hasRecord {
		return model.UpdateBatch{}, nil, fmt.Errorf("no content specified: use WithContent or WithContentFile")
	}
	if err := f.ensureReader(); err != nil {
		return model.UpdateBatch{}, nil, err
	}

	classifier := classify.NewWithConfig(f.options.classifyConfig)
	fitter := fit.NewWithConfig(f.options.fitConfig)
	if f.options.summarizer != nil {
		fitter.UseSummarizer(f.options.summarizer)
	}

	matcher := match.NewWithComponents(classifier, fitter)
	updates, warnings := matcher.Match(ctx, f.selectedDeck(), f.options.record)
	return model.UpdateBatch{Updates: updates}, warnings, nil
}

// selectedDeck returns the deck restricted to the configured slide
// numbers, or the whole deck when no restriction is set.
func (f *Filler) selectedDeck() *model.Deck {
	deck := f.reader.Deck()
	if len(f.options.slides) == 0 {
		return deck
	}

	wanted := make(map[int]bool, len(f.options.slides))
	for _, n := range f.options.slides {
		wanted[n] = true
	}

	selected := &model.Deck{
		FileName: deck.FileName,
		Width:    deck.Width,
		Height:   deck.Height,
	}
	for _, slide := range deck.Slides {
		if wanted[slide.Number] {
			selected.Slides = append(selected.Slides, slide)
		}
	}
	return selected
}
