package match

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/slidefill/classify"
	"github.com/tsawler/slidefill/fit"
	"github.com/tsawler/slidefill/model"
)

// Matcher produces update instructions from a content record and a deck.
type Matcher struct {
	classifier *classify.Classifier
	fitter     *fit.Fitter
}

// New creates a matcher with default classifier and fitter.
func New() *Matcher {
	return &Matcher{
		classifier: classify.New(),
		fitter:     fit.New(),
	}
}

// NewWithComponents creates a matcher from pre-configured collaborators.
// Nil arguments fall back to the defaults.
func NewWithComponents(classifier *classify.Classifier, fitter *fit.Fitter) *Matcher {
	m := New()
	if classifier != nil {
		m.classifier = classifier
	}
	if fitter != nil {
		m.fitter = fitter
	}
	return m
}

// pending is an instruction before the fitting pass.
type pending struct {
	shape           model.Shape
	text            string
	preserveBullets bool
}

// Match maps the content record onto the deck and returns the resulting
// instructions, in slide order and shape order within each slide, together
// with any warnings raised while fitting replacement text. An empty record
// yields no instructions. The context is consulted only by the fit
// engine's summarizer, when one is configured.
func (m *Matcher) Match(ctx context.Context, deck *model.Deck, record model.ContentRecord) ([]model.UpdateInstruction, []model.Warning) {
	if deck == nil || record.IsEmpty() {
		return nil, nil
	}

	var updates []model.UpdateInstruction
	var warnings []model.Warning

	// Each metric is consumed once across the whole deck, unlike the
	// date, which repeats on every date field.
	usedMetrics := make([]bool, len(record.Metrics))

	for _, slide := range deck.Slides {
		for _, p := range m.matchSlide(slide, record, usedMetrics) {
			res := m.fitter.Fit(ctx, p.shape.Text, p.text, p.shape.Width, p.shape.Height)
			warnings = append(warnings, fitWarnings(m.fitter.Config(), slide.Number, p.shape.Index, res)...)

			updates = append(updates, model.UpdateInstruction{
				Slide:           slide.Number,
				Shape:           p.shape.Index,
				Text:            res.Text,
				PreserveBullets: p.preserveBullets,
			})
		}
	}
	return updates, warnings
}

// matchSlide pairs the record's fields with the slide's shapes and returns
// the resulting replacements ordered by shape index. usedMetrics tracks
// metric consumption across slides.
func (m *Matcher) matchSlide(slide model.Slide, record model.ContentRecord, usedMetrics []bool) []pending {
	purposes := make(map[int]classify.ShapePurpose, len(slide.Shapes))
	for _, shape := range slide.Shapes {
		purposes[shape.Index] = m.classifier.ClassifyShape(shape, slide.Width, slide.Height)
	}

	var out []pending
	claimed := make(map[int]bool)

	// Table shapes carry their text in cells, not in a text body, so they
	// never receive a text update. Claiming them up front keeps every
	// matching pass away from them.
	for _, shape := range slide.Shapes {
		if shape.IsTable() {
			claimed[shape.Index] = true
		}
	}

	// Every date field receives the same date.
	if record.Date != "" {
		for _, shape := range slide.Shapes {
			if purposes[shape.Index] == classify.DateField {
				out = append(out, pending{shape: shape, text: record.Date})
				claimed[shape.Index] = true
			}
		}
	}

	if len(record.Metrics) > 0 {
		out = append(out, m.matchMetrics(slide, record.Metrics, usedMetrics, purposes, claimed)...)
	}

	if len(record.KeyPoints) > 0 {
		for _, shape := range slide.Shapes {
			if purposes[shape.Index] != classify.BulletList || claimed[shape.Index] {
				continue
			}
			lines := PreserveHierarchy(shape.ParagraphLevels, record.KeyPoints)
			out = append(out, pending{
				shape:           shape,
				text:            model.EncodeBulletLines(lines),
				preserveBullets: true,
			})
			claimed[shape.Index] = true
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].shape.Index < out[j].shape.Index
	})
	return out
}

// matchMetrics assigns metric entries to shapes: first through label-value
// pairs whose label text matches a metric label, then positionally to the
// remaining metric-value shapes in slide order. used spans the whole deck,
// so a metric consumed on an earlier slide is never reassigned and
// assignment proceeds until metrics or value shapes run out.
func (m *Matcher) matchMetrics(slide model.Slide, metrics []model.Metric, used []bool, purposes map[int]classify.ShapePurpose, claimed map[int]bool) []pending {
	var out []pending

	for _, pair := range m.classifier.DetectPairs(slide.Shapes) {
		if claimed[pair.Value.Index] {
			continue
		}
		mi := metricByLabel(metrics, used, pair.LabelText())
		if mi < 0 {
			continue
		}
		used[mi] = true
		claimed[pair.Value.Index] = true
		out = append(out, pending{shape: pair.Value, text: metrics[mi].Value})
	}

	// Positional pass for whatever label matching left over.
	next := 0
	for _, shape := range slide.Shapes {
		if purposes[shape.Index] != classify.MetricValue || claimed[shape.Index] {
			continue
		}
		for next < len(metrics) && used[next] {
			next++
		}
		if next == len(metrics) {
			break
		}
		used[next] = true
		claimed[shape.Index] = true
		out = append(out, pending{shape: shape, text: metrics[next].Value})
	}
	return out
}

// metricByLabel returns the index of the first unused metric whose label
// matches, comparing case-insensitively after trimming, or -1.
func metricByLabel(metrics []model.Metric, used []bool, label string) int {
	want := normalizeLabel(label)
	for i, metric := range metrics {
		if !used[i] && normalizeLabel(metric.Label) == want {
			return i
		}
	}
	return -1
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// fitWarnings converts a fit result into warnings tied to the shape.
func fitWarnings(cfg fit.Config, slideNumber, shapeIndex int, res fit.Result) []model.Warning {
	var warnings []model.Warning

	if res.Overflow {
		action := "truncated"
		if res.Summarized {
			action = "summarized"
		}
		warnings = append(warnings, model.Warning{
			Type:    model.WarningOverflow,
			Slide:   slideNumber,
			Shape:   shapeIndex,
			Message: fmt.Sprintf("replacement exceeds budget of %d characters, %s", res.Budget, action),
		})
	}
	if res.RatioExceeded {
		warnings = append(warnings, model.Warning{
			Type:    model.WarningLengthRatio,
			Slide:   slideNumber,
			Shape:   shapeIndex,
			Message: fmt.Sprintf("replacement is more than %.1fx the original length", cfg.LengthRatioLimit),
		})
	}
	if res.SummarizerErr != nil {
		warnings = append(warnings, model.Warning{
			Type:    model.WarningSummarizer,
			Slide:   slideNumber,
			Shape:   shapeIndex,
			Message: fmt.Sprintf("summarizer failed, truncated instead: %v", res.SummarizerErr),
		})
	}
	return warnings
}
