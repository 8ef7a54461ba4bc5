package classify

import "github.com/tsawler/slidefill/model"

// SlideType represents the inferred role of a whole slide.
type SlideType int

const (
	// TitleSlide is a sparse slide, typically the deck opener.
	TitleSlide SlideType = iota
	// MetricsSlide carries numeric measurements (percentages, currency).
	MetricsSlide
	// ContentSlide carries substantial bulleted content.
	ContentSlide
	// GeneralSlide is the fallback when no specific rule matches.
	GeneralSlide
)

// String returns a string representation of the slide type.
func (t SlideType) String() string {
	switch t {
	case TitleSlide:
		return "title_slide"
	case MetricsSlide:
		return "metrics_slide"
	case ContentSlide:
		return "content_slide"
	case GeneralSlide:
		return "general_slide"
	default:
		return "unknown"
	}
}

// ShapePurpose represents the inferred semantic role of a single shape.
// A shape has exactly one purpose at a time.
type ShapePurpose int

const (
	// Position-signal purposes.

	// SlideTitle is a wide shape in the title zone near the top.
	SlideTitle ShapePurpose = iota
	// HeaderElement is a narrow shape in the title zone.
	HeaderElement
	// Footer is a shape in the bottom zone of the slide.
	Footer
	// SidebarContent sits in the left column.
	SidebarContent
	// MainContent sits in the central column.
	MainContent
	// SupplementaryContent is the position-signal fallback.
	SupplementaryContent

	// Content-signal purposes.

	// DateField holds a date, quarter token, or year.
	DateField
	// MetricValue holds a bare number, percentage, or currency amount.
	MetricValue
	// Header is a short single-line title-cased caption.
	Header
	// BulletList holds multi-line list content.
	BulletList
	// Label is a short caption, typically ending with ":".
	Label
	// BodyText is the content-signal fallback.
	BodyText
)

// String returns a string representation of the shape purpose.
func (p ShapePurpose) String() string {
	switch p {
	case SlideTitle:
		return "slide_title"
	case HeaderElement:
		return "header_element"
	case Footer:
		return "footer"
	case SidebarContent:
		return "sidebar_content"
	case MainContent:
		return "main_content"
	case SupplementaryContent:
		return "supplementary_content"
	case DateField:
		return "date_field"
	case MetricValue:
		return "metric_value"
	case Header:
		return "header"
	case BulletList:
		return "bullet_list"
	case Label:
		return "label"
	case BodyText:
		return "body_text"
	default:
		return "unknown"
	}
}

// LabelValuePair associates a label shape with the value shape it captions.
// Each value shape is claimed by at most one label.
type LabelValuePair struct {
	Label model.Shape
	Value model.Shape

	// Gap is the horizontal distance between the two left offsets, the
	// quantity pairing minimizes.
	Gap float64
}
