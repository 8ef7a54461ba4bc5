package classify

import (
	"regexp"
	"strings"

	"github.com/tsawler/slidefill/model"
)

// Content-signal patterns. These, like the Config thresholds, are part of
// the classifier's contract.
var (
	// metricValuePattern matches trimmed text that is purely digits with
	// an optional trailing "%", or a "$" followed by digits and commas.
	metricDigitsPattern   = regexp.MustCompile(`^\d+%?$`)
	metricCurrencyPattern = regexp.MustCompile(`^\$[\d,]+$`)

	// Date evidence: a month name, a quarter token, or a 4-digit year.
	monthPattern   = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\b`)
	quarterPattern = regexp.MustCompile(`\bQ[1-4]\b`)
	yearPattern    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// ClassifyShape assigns one ShapePurpose from position and content
// evidence. The content signal takes precedence over the position signal
// when both produce a value other than the generic fallbacks
// (SupplementaryContent / BodyText); otherwise the position signal is used.
func (c *Classifier) ClassifyShape(shape model.Shape, slideWidth, slideHeight float64) ShapePurpose {
	content := c.contentSignal(shape.Text)
	if content != BodyText {
		return content
	}
	return c.positionSignal(shape, slideWidth, slideHeight)
}

// positionSignal classifies a shape by its offsets relative to the slide
// dimensions. Rules are evaluated top to bottom, first match wins.
func (c *Classifier) positionSignal(shape model.Shape, slideWidth, slideHeight float64) ShapePurpose {
	if slideWidth <= 0 || slideHeight <= 0 {
		return SupplementaryContent
	}

	box := shape.BBox()
	topRatio := box.Top() / slideHeight
	leftRatio := box.Left() / slideWidth
	widthRatio := (box.Right() - box.Left()) / slideWidth

	switch {
	case topRatio < c.config.TitleTopRatio:
		if widthRatio > c.config.WideTitleRatio {
			return SlideTitle
		}
		return HeaderElement
	case topRatio >= c.config.FooterTopRatio:
		return Footer
	case leftRatio < c.config.SidebarLeftRatio:
		return SidebarContent
	case leftRatio > c.config.SidebarLeftRatio && leftRatio < c.config.MainRightRatio:
		return MainContent
	default:
		return SupplementaryContent
	}
}

// contentSignal classifies a shape by its text alone. Rules are evaluated
// top to bottom, first match wins.
func (c *Classifier) contentSignal(text string) ShapePurpose {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return BodyText
	}

	lines := strings.Split(trimmed, "\n")

	switch {
	case IsDateText(trimmed):
		return DateField
	case IsMetricValue(trimmed):
		return MetricValue
	case len([]rune(trimmed)) < c.config.HeaderMaxChars && len(lines) == 1 && IsTitleCase(trimmed):
		return Header
	case len(lines) >= c.config.BulletListMinLines:
		return BulletList
	case strings.HasSuffix(trimmed, ":") || len(strings.Fields(trimmed)) <= c.config.LabelMaxWords:
		return Label
	default:
		return BodyText
	}
}

// IsDateText reports whether the text carries date evidence: a month name,
// a quarter token (Q1-Q4), or a 4-digit year.
func IsDateText(text string) bool {
	return monthPattern.MatchString(text) ||
		quarterPattern.MatchString(text) ||
		yearPattern.MatchString(text)
}

// IsMetricValue reports whether trimmed text is a bare metric value:
// purely digits with an optional trailing "%", or a "$" followed by digits
// and commas.
func IsMetricValue(text string) bool {
	text = strings.TrimSpace(text)
	return metricDigitsPattern.MatchString(text) ||
		metricCurrencyPattern.MatchString(text)
}
