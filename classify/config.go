package classify

// Config holds every classification threshold as a named field. These
// values are the tunable contract of the classifier rather than inline
// literals, so behavior stays auditable and testable in isolation.
type Config struct {
	// TitleSlideMaxShapes is the maximum shape count for a slide to be
	// classified as a title slide.
	// Default: 3
	TitleSlideMaxShapes int

	// MinContentBullets is the minimum total bullet count across shapes
	// for a slide to be classified as a content slide.
	// Default: 5
	MinContentBullets int

	// TitleTopRatio is the top-offset ratio (of slide height) below which
	// a shape is in the title zone.
	// Default: 0.20
	TitleTopRatio float64

	// FooterTopRatio is the top-offset ratio above which a shape is a
	// footer.
	// Default: 0.90
	FooterTopRatio float64

	// WideTitleRatio is the width ratio (of slide width) above which a
	// title-zone shape is the slide title rather than a header element.
	// Default: 0.60
	WideTitleRatio float64

	// SidebarLeftRatio is the left-offset ratio below which a shape is
	// sidebar content.
	// Default: 0.30
	SidebarLeftRatio float64

	// MainRightRatio is the left-offset ratio below which (and above
	// SidebarLeftRatio) a shape is main content.
	// Default: 0.70
	MainRightRatio float64

	// HeaderMaxChars is the maximum text length for the header content
	// signal.
	// Default: 60
	HeaderMaxChars int

	// BulletListMinLines is the minimum line count for the bullet-list
	// content signal.
	// Default: 3
	BulletListMinLines int

	// LabelMaxWords is the maximum word count for the label content
	// signal (a trailing ":" also qualifies).
	// Default: 3
	LabelMaxWords int

	// PairMaxGap is the maximum horizontal gap, in slide units, between a
	// label's left offset and a value's left offset.
	// Default: 100
	PairMaxGap float64

	// PairMaxVerticalOffset is the maximum difference between a label's
	// and a value's top offsets.
	// Default: 50
	PairMaxVerticalOffset float64
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		TitleSlideMaxShapes:   3,
		MinContentBullets:     5,
		TitleTopRatio:         0.20,
		FooterTopRatio:        0.90,
		WideTitleRatio:        0.60,
		SidebarLeftRatio:      0.30,
		MainRightRatio:        0.70,
		HeaderMaxChars:        60,
		BulletListMinLines:    3,
		LabelMaxWords:         3,
		PairMaxGap:            100,
		PairMaxVerticalOffset: 50,
	}
}

// Classifier classifies slides and shapes using a fixed Config.
type Classifier struct {
	config Config
}

// New creates a classifier with default configuration.
func New() *Classifier {
	return &Classifier{config: DefaultConfig()}
}

// NewWithConfig creates a classifier with custom configuration.
func NewWithConfig(config Config) *Classifier {
	return &Classifier{config: config}
}

// Config returns the classifier's configuration.
func (c *Classifier) Config() Config {
	return c.config
}
