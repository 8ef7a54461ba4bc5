package classify

import (
	"regexp"
	"strings"

	"github.com/tsawler/slidefill/model"
)

// Metric patterns used by the slide-type rule: a run of digits followed by
// "%", a "$" followed by digits, or a line consisting solely of digits.
var (
	percentPattern  = regexp.MustCompile(`\d+%`)
	currencyPattern = regexp.MustCompile(`\$\d`)
	bareLinePattern = regexp.MustCompile(`(?m)^\d+$`)
)

// ClassifySlide assigns one SlideType from aggregate shape evidence.
// Rules are evaluated in precedence order, first match wins:
//
//  1. shape count at or below TitleSlideMaxShapes → TitleSlide
//  2. concatenated shape text matches a metric pattern → MetricsSlide
//  3. total bullet count at or above MinContentBullets → ContentSlide
//  4. otherwise → GeneralSlide
func (c *Classifier) ClassifySlide(slide model.Slide) SlideType {
	if len(slide.Shapes) <= c.config.TitleSlideMaxShapes {
		return TitleSlide
	}

	if hasMetricText(slide) {
		return MetricsSlide
	}

	bullets := 0
	for _, shape := range slide.Shapes {
		bullets += shape.BulletCount()
	}
	if bullets >= c.config.MinContentBullets {
		return ContentSlide
	}

	return GeneralSlide
}

// hasMetricText reports whether any shape text on the slide matches one of
// the metric patterns.
func hasMetricText(slide model.Slide) bool {
	var sb strings.Builder
	for _, shape := range slide.Shapes {
		sb.WriteString(shape.Text)
		sb.WriteString("\n")
	}
	all := sb.String()

	return percentPattern.MatchString(all) ||
		currencyPattern.MatchString(all) ||
		bareLinePattern.MatchString(all)
}
