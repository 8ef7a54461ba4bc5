package model

import "strings"

// Shape represents a positioned text-bearing region on a slide.
//
// A shape is owned exclusively by the slide it belongs to. SlideNumber and
// Index together identify it: SlideNumber is 1-based (matching the update
// record), Index is the shape's 0-based ordinal among the slide's shape
// elements in document order. The ordinal is stable even when text-less
// shapes are omitted from the record.
type Shape struct {
	SlideNumber int    // 1-based slide number
	Index       int    // 0-based shape ordinal within the slide
	Name        string // Shape name from the document, if any

	// Position and size in a linear unit (points for PPTX sources).
	Left, Top     float64
	Width, Height float64

	// Text is the raw text content, paragraphs joined by "\n".
	Text string

	// ParagraphLevels holds the bullet/indent level of each paragraph,
	// one entry per paragraph, 0 = outermost.
	ParagraphLevels []int

	// Table holds the grid content when the shape is a table. Table
	// shapes carry no direct text; their content lives in the cells.
	Table *TableData
}

// IsTable reports whether the shape is a table.
func (s Shape) IsTable() bool {
	return s.Table != nil
}

// BBox returns the shape's bounding box.
func (s Shape) BBox() BBox {
	return NewBBox(s.Left, s.Top, s.Width, s.Height)
}

// Lines returns the shape text split into lines.
func (s Shape) Lines() []string {
	if s.Text == "" {
		return nil
	}
	return strings.Split(s.Text, "\n")
}

// LineCount returns the number of text lines in the shape.
func (s Shape) LineCount() int {
	return len(s.Lines())
}

// BulletCount returns the number of non-empty paragraphs, the unit the
// slide-type classifier counts.
func (s Shape) BulletCount() int {
	count := 0
	for _, line := range s.Lines() {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// HasHierarchy returns true if the shape's paragraphs use more than one
// distinct indentation level.
func (s Shape) HasHierarchy() bool {
	if len(s.ParagraphLevels) < 2 {
		return false
	}
	first := s.ParagraphLevels[0]
	for _, lvl := range s.ParagraphLevels[1:] {
		if lvl != first {
			return true
		}
	}
	return false
}

// Slide represents a single slide: its dimensions and an ordered sequence
// of shapes.
type Slide struct {
	Number int // 1-based slide number
	Width  float64
	Height float64
	Shapes []Shape
}

// ShapeByIndex returns the shape with the given ordinal, or nil if no such
// shape was recorded.
func (s *Slide) ShapeByIndex(index int) *Shape {
	for i := range s.Shapes {
		if s.Shapes[i].Index == index {
			return &s.Shapes[i]
		}
	}
	return nil
}

// Text returns all shape text on the slide joined by newlines.
func (s *Slide) Text() string {
	var sb strings.Builder
	for _, shape := range s.Shapes {
		if shape.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(shape.Text)
	}
	return sb.String()
}

// Deck represents the extracted structure of a slide-deck template.
type Deck struct {
	FileName string
	Width    float64 // Slide width shared by all slides
	Height   float64 // Slide height shared by all slides
	Slides   []Slide
}

// SlideByNumber returns the slide with the given 1-based number, or nil.
func (d *Deck) SlideByNumber(number int) *Slide {
	for i := range d.Slides {
		if d.Slides[i].Number == number {
			return &d.Slides[i]
		}
	}
	return nil
}

// SlideCount returns the number of slides in the deck.
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}
