package model

import (
	"fmt"
	"strings"
)

// UpdateInstruction targets one shape with replacement text.
//
// Slide is the 1-based slide number and Shape the 0-based shape ordinal
// within that slide, matching the update interchange record. When
// PreserveBullets is set the replacement text is treated as one bullet line
// per "\n"-separated line, with indentation levels encoded as leading tab
// characters (see EncodeBulletLines).
//
// TableCells, when non-empty, makes this a table update: the listed cells
// of the target table shape are rewritten and Text is ignored.
type UpdateInstruction struct {
	Slide           int
	Shape           int
	Text            string
	PreserveBullets bool
	TableCells      []TableCell
}

// Target returns a printable identifier for the instruction's target.
func (u UpdateInstruction) Target() string {
	return fmt.Sprintf("slide %d shape %d", u.Slide, u.Shape)
}

// UpdateBatch is an ordered list of update instructions. Instructions
// preserve the slide order and, within a slide, the shape order of the
// source deck so that application is deterministic and diff-friendly.
type UpdateBatch struct {
	Updates []UpdateInstruction
}

// Validate rejects batches in which two instructions target the same
// (slide, shape) pair. Last-wins must not be relied upon: a conflicting
// batch is an error before any application occurs.
func (b UpdateBatch) Validate() error {
	type target struct{ slide, shape int }
	seen := make(map[target]int, len(b.Updates))
	for i, u := range b.Updates {
		t := target{u.Slide, u.Shape}
		if prev, ok := seen[t]; ok {
			return fmt.Errorf("conflicting batch: instructions %d and %d both target %s", prev, i, u.Target())
		}
		seen[t] = i
	}
	return nil
}

// RefError reports an instruction whose slide or shape reference does not
// exist at apply time. The instruction is skipped; the batch continues.
type RefError struct {
	Index       int // Position of the instruction in the batch
	Instruction UpdateInstruction
	Reason      string
}

// Error implements the error interface.
func (e *RefError) Error() string {
	return fmt.Sprintf("update %d (%s): %s", e.Index, e.Instruction.Target(), e.Reason)
}

// CheckRef verifies that the instruction references an existing shape in
// the deck. It returns nil when the reference is valid.
func (b UpdateBatch) CheckRef(index int, deck *Deck) *RefError {
	u := b.Updates[index]
	slide := deck.SlideByNumber(u.Slide)
	if slide == nil {
		return &RefError{
			Index:       index,
			Instruction: u,
			Reason:      fmt.Sprintf("invalid slide number: deck has %d slides", deck.SlideCount()),
		}
	}
	shape := slide.ShapeByIndex(u.Shape)
	if shape == nil {
		return &RefError{
			Index:       index,
			Instruction: u,
			Reason:      fmt.Sprintf("invalid shape index: slide has %d shapes", len(slide.Shapes)),
		}
	}
	if len(u.TableCells) == 0 {
		if shape.Table != nil {
			return &RefError{
				Index:       index,
				Instruction: u,
				Reason:      "text update targets a table shape: use table cells",
			}
		}
	} else {
		if shape.Table == nil {
			return &RefError{
				Index:       index,
				Instruction: u,
				Reason:      "table cell update targets a shape that is not a table",
			}
		}
		for _, c := range u.TableCells {
			if !shape.Table.InRange(c.Row, c.Column) {
				return &RefError{
					Index:       index,
					Instruction: u,
					Reason: fmt.Sprintf("cell (%d,%d) outside %dx%d table",
						c.Row, c.Column, shape.Table.Rows, shape.Table.Columns),
				}
			}
		}
	}
	return nil
}

// EncodeBulletLines joins bullet lines into the wire text form: one line
// per bullet, with one leading tab per indentation level.
func EncodeBulletLines(lines []BulletLine) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Repeat("\t", line.Level))
		sb.WriteString(line.Text)
	}
	return sb.String()
}

// DecodeBulletLines splits wire text back into bullet lines, mapping
// leading tabs to indentation levels.
func DecodeBulletLines(text string) []BulletLine {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]BulletLine, 0, len(raw))
	for _, r := range raw {
		level := 0
		for level < len(r) && r[level] == '\t' {
			level++
		}
		lines = append(lines, BulletLine{Text: r[level:], Level: level})
	}
	return lines
}
