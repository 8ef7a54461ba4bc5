package classify

import (
	"testing"

	"github.com/tsawler/slidefill/model"
)

func shapeWithText(index int, text string) model.Shape {
	return model.Shape{Index: index, Text: text}
}

func TestClassifySlide(t *testing.T) {
	tests := []struct {
		name   string
		shapes []model.Shape
		want   SlideType
	}{
		{
			name: "sparse slide is title slide",
			shapes: []model.Shape{
				shapeWithText(0, "Annual Report"),
				shapeWithText(1, "Fiscal Overview"),
			},
			want: TitleSlide,
		},
		{
			name:   "empty slide is title slide",
			shapes: nil,
			want:   TitleSlide,
		},
		{
			name: "exactly three shapes is title slide",
			shapes: []model.Shape{
				shapeWithText(0, "one"),
				shapeWithText(1, "two"),
				shapeWithText(2, "three"),
			},
			want: TitleSlide,
		},
		{
			name: "percent text makes metrics slide",
			shapes: []model.Shape{
				shapeWithText(0, "Growth Rate:"),
				shapeWithText(1, "45%"),
				shapeWithText(2, "Retention:"),
				shapeWithText(3, "92%"),
			},
			want: MetricsSlide,
		},
		{
			name: "currency text makes metrics slide",
			shapes: []model.Shape{
				shapeWithText(0, "Revenue:"),
				shapeWithText(1, "$2,600,000"),
				shapeWithText(2, "some prose here"),
				shapeWithText(3, "more prose here"),
			},
			want: MetricsSlide,
		},
		{
			name: "bare numeric line makes metrics slide",
			shapes: []model.Shape{
				shapeWithText(0, "Headcount:"),
				shapeWithText(1, "120"),
				shapeWithText(2, "filler"),
				shapeWithText(3, "filler"),
			},
			want: MetricsSlide,
		},
		{
			name: "digits embedded in prose are not a metric",
			shapes: []model.Shape{
				shapeWithText(0, "meeting room 12 is booked"),
				shapeWithText(1, "filler"),
				shapeWithText(2, "filler"),
				shapeWithText(3, "filler"),
			},
			want: GeneralSlide,
		},
		{
			name: "five bullets make content slide",
			shapes: []model.Shape{
				shapeWithText(0, "first point\nsecond point\nthird point"),
				shapeWithText(1, "fourth point\nfifth point"),
				shapeWithText(2, "filler"),
				shapeWithText(3, "filler"),
			},
			want: ContentSlide,
		},
		{
			name: "metric precedence beats bullet count",
			shapes: []model.Shape{
				shapeWithText(0, "alpha\nbeta\ngamma\ndelta\nepsilon"),
				shapeWithText(1, "45%"),
				shapeWithText(2, "filler"),
				shapeWithText(3, "filler"),
			},
			want: MetricsSlide,
		},
		{
			name: "dense slide with no signals is general",
			shapes: []model.Shape{
				shapeWithText(0, "prose"),
				shapeWithText(1, "prose"),
				shapeWithText(2, "prose"),
				shapeWithText(3, "prose"),
			},
			want: GeneralSlide,
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Bullet totals count non-empty lines even when the shapes
			// carry no ParagraphLevels, matching extracted decks whose
			// templates use plain paragraphs.
			slide := model.Slide{Number: 1, Width: 720, Height: 540, Shapes: tt.shapes}
			got := c.ClassifySlide(slide)
			if got != tt.want {
				t.Errorf("ClassifySlide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifySlideCustomThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TitleSlideMaxShapes = 1
	cfg.MinContentBullets = 2
	c := NewWithConfig(cfg)

	slide := model.Slide{Number: 1, Width: 720, Height: 540, Shapes: []model.Shape{
		shapeWithText(0, "one point\nanother point"),
		shapeWithText(1, "aside"),
	}}
	if got := c.ClassifySlide(slide); got != ContentSlide {
		t.Errorf("ClassifySlide() = %v, want %v", got, ContentSlide)
	}
}

func TestSlideTypeString(t *testing.T) {
	tests := []struct {
		typ  SlideType
		want string
	}{
		{TitleSlide, "title_slide"},
		{MetricsSlide, "metrics_slide"},
		{ContentSlide, "content_slide"},
		{GeneralSlide, "general_slide"},
		{SlideType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("SlideType(%d).String() = %q, want %q", int(tt.typ), got, tt.want)
		}
	}
}
