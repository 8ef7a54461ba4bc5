package model

import (
	"encoding/json"
	"fmt"
)

// FieldError reports a malformed interchange record: a required field is
// missing or invalid. Malformed records are fatal for that record's
// processing; no default is substituted.
type FieldError struct {
	Record string // Which record failed, e.g. `slides[1].shapes[0]`
	Field  string // Which field is missing or invalid
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: missing or invalid required field %q", e.Record, e.Field)
}

// Wire forms for the structure record. Required fields are pointers so that
// absence can be detected rather than silently defaulted.

type structureJSON struct {
	FileName    string      `json:"file_name,omitempty"`
	TotalSlides int         `json:"total_slides"`
	SlideWidth  *float64    `json:"slide_width"`
	SlideHeight *float64    `json:"slide_height"`
	Slides      []slideJSON `json:"slides"`
}

type slideJSON struct {
	SlideNumber *int        `json:"slide_number"`
	Shapes      []shapeJSON `json:"shapes"`
}

type shapeJSON struct {
	Index          *int          `json:"index"`
	Name           string        `json:"name,omitempty"`
	TextContent    *string       `json:"text_content"`
	CharacterCount int           `json:"character_count"`
	Position       *positionJSON `json:"position"`
	Paragraphs     int           `json:"paragraphs"`
	Levels         []int         `json:"paragraph_levels,omitempty"`
	IsTable        bool          `json:"is_table,omitempty"`
	Table          *tableJSON    `json:"table,omitempty"`
}

type tableJSON struct {
	Rows    *int            `json:"rows"`
	Columns *int            `json:"columns"`
	Cells   []tableCellJSON `json:"cells"`
}

type tableCellJSON struct {
	Row            *int    `json:"row"`
	Column         *int    `json:"column"`
	Text           *string `json:"text"`
	CharacterCount int     `json:"character_count,omitempty"`
}

type positionJSON struct {
	Left   *float64 `json:"left"`
	Top    *float64 `json:"top"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

// MarshalStructure encodes the deck as a structure record.
func (d *Deck) MarshalStructure() ([]byte, error) {
	out := structureJSON{
		FileName:    d.FileName,
		TotalSlides: len(d.Slides),
		SlideWidth:  &d.Width,
		SlideHeight: &d.Height,
	}
	for i := range d.Slides {
		slide := &d.Slides[i]
		sj := slideJSON{SlideNumber: &slide.Number, Shapes: []shapeJSON{}}
		for j := range slide.Shapes {
			shape := &slide.Shapes[j]
			text := shape.Text
			pos := positionJSON{
				Left:   &shape.Left,
				Top:    &shape.Top,
				Width:  &shape.Width,
				Height: &shape.Height,
			}
			shj := shapeJSON{
				Index:          &shape.Index,
				Name:           shape.Name,
				TextContent:    &text,
				CharacterCount: len(text),
				Position:       &pos,
				Paragraphs:     len(shape.ParagraphLevels),
				Levels:         shape.ParagraphLevels,
			}
			if shape.IsTable() {
				shj.IsTable = true
				shj.CharacterCount = shape.Table.CharacterCount()
				shj.Table = marshalTable(shape.Table)
			}
			sj.Shapes = append(sj.Shapes, shj)
		}
		out.Slides = append(out.Slides, sj)
	}
	return json.MarshalIndent(out, "", "  ")
}

func marshalTable(t *TableData) *tableJSON {
	tj := &tableJSON{Rows: &t.Rows, Columns: &t.Columns, Cells: []tableCellJSON{}}
	for i := range t.Cells {
		cell := &t.Cells[i]
		tj.Cells = append(tj.Cells, tableCellJSON{
			Row:            &cell.Row,
			Column:         &cell.Column,
			Text:           &cell.Text,
			CharacterCount: len(cell.Text),
		})
	}
	return tj
}

// DecodeStructure parses a structure record into a Deck, validating that
// every required field is present.
func DecodeStructure(data []byte) (*Deck, error) {
	var in structureJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing structure record: %w", err)
	}

	if in.SlideWidth == nil {
		return nil, &FieldError{Record: "structure record", Field: "slide_width"}
	}
	if in.SlideHeight == nil {
		return nil, &FieldError{Record: "structure record", Field: "slide_height"}
	}
	if in.Slides == nil {
		return nil, &FieldError{Record: "structure record", Field: "slides"}
	}

	deck := &Deck{
		FileName: in.FileName,
		Width:    *in.SlideWidth,
		Height:   *in.SlideHeight,
	}

	for i, sj := range in.Slides {
		record := fmt.Sprintf("slides[%d]", i)
		if sj.SlideNumber == nil {
			return nil, &FieldError{Record: record, Field: "slide_number"}
		}
		slide := Slide{
			Number: *sj.SlideNumber,
			Width:  deck.Width,
			Height: deck.Height,
		}
		for j, shj := range sj.Shapes {
			shapeRecord := fmt.Sprintf("%s.shapes[%d]", record, j)
			if shj.Index == nil {
				return nil, &FieldError{Record: shapeRecord, Field: "index"}
			}
			if shj.TextContent == nil {
				return nil, &FieldError{Record: shapeRecord, Field: "text_content"}
			}
			if shj.Position == nil {
				return nil, &FieldError{Record: shapeRecord, Field: "position"}
			}
			pos := shj.Position
			switch {
			case pos.Left == nil:
				return nil, &FieldError{Record: shapeRecord, Field: "position.left"}
			case pos.Top == nil:
				return nil, &FieldError{Record: shapeRecord, Field: "position.top"}
			case pos.Width == nil:
				return nil, &FieldError{Record: shapeRecord, Field: "position.width"}
			case pos.Height == nil:
				return nil, &FieldError{Record: shapeRecord, Field: "position.height"}
			}
			shape := Shape{
				SlideNumber:     slide.Number,
				Index:           *shj.Index,
				Name:            shj.Name,
				Left:            *pos.Left,
				Top:             *pos.Top,
				Width:           *pos.Width,
				Height:          *pos.Height,
				Text:            *shj.TextContent,
				ParagraphLevels: shj.Levels,
			}
			if shj.Table != nil {
				table, err := decodeTable(shj.Table, shapeRecord)
				if err != nil {
					return nil, err
				}
				shape.Table = table
			}
			slide.Shapes = append(slide.Shapes, shape)
		}
		deck.Slides = append(deck.Slides, slide)
	}

	return deck, nil
}

func decodeTable(tj *tableJSON, shapeRecord string) (*TableData, error) {
	record := shapeRecord + ".table"
	switch {
	case tj.Rows == nil:
		return nil, &FieldError{Record: record, Field: "rows"}
	case tj.Columns == nil:
		return nil, &FieldError{Record: record, Field: "columns"}
	case tj.Cells == nil:
		return nil, &FieldError{Record: record, Field: "cells"}
	}
	table := &TableData{Rows: *tj.Rows, Columns: *tj.Columns, Cells: []TableCell{}}
	for i, cj := range tj.Cells {
		cellRecord := fmt.Sprintf("%s.cells[%d]", record, i)
		switch {
		case cj.Row == nil:
			return nil, &FieldError{Record: cellRecord, Field: "row"}
		case cj.Column == nil:
			return nil, &FieldError{Record: cellRecord, Field: "column"}
		case cj.Text == nil:
			return nil, &FieldError{Record: cellRecord, Field: "text"}
		}
		table.Cells = append(table.Cells, TableCell{
			Row:    *cj.Row,
			Column: *cj.Column,
			Text:   *cj.Text,
		})
	}
	return table, nil
}

// Wire forms for the update record.

type updatesJSON struct {
	Updates []updateJSON `json:"updates"`
}

type updateJSON struct {
	Slide           *int            `json:"slide"`
	Shape           *int            `json:"shape"`
	Text            *string         `json:"text,omitempty"`
	PreserveBullets bool            `json:"preserve_bullets,omitempty"`
	TableCells      []tableCellJSON `json:"table_cells,omitempty"`
}

// MarshalUpdates encodes the batch as an update record.
func (b UpdateBatch) MarshalUpdates() ([]byte, error) {
	out := updatesJSON{Updates: []updateJSON{}}
	for i := range b.Updates {
		u := &b.Updates[i]
		uj := updateJSON{
			Slide:           &u.Slide,
			Shape:           &u.Shape,
			PreserveBullets: u.PreserveBullets,
		}
		if len(u.TableCells) > 0 {
			for j := range u.TableCells {
				cell := &u.TableCells[j]
				uj.TableCells = append(uj.TableCells, tableCellJSON{
					Row:    &cell.Row,
					Column: &cell.Column,
					Text:   &cell.Text,
				})
			}
		} else {
			uj.Text = &u.Text
		}
		out.Updates = append(out.Updates, uj)
	}
	return json.MarshalIndent(out, "", "  ")
}

// DecodeUpdates parses an update record into an UpdateBatch, validating
// required fields. Text is required unless the instruction carries
// table_cells instead. PreserveBullets defaults to false when absent.
func DecodeUpdates(data []byte) (UpdateBatch, error) {
	var in updatesJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return UpdateBatch{}, fmt.Errorf("parsing update record: %w", err)
	}
	if in.Updates == nil {
		return UpdateBatch{}, &FieldError{Record: "update record", Field: "updates"}
	}

	var batch UpdateBatch
	for i, uj := range in.Updates {
		record := fmt.Sprintf("updates[%d]", i)
		switch {
		case uj.Slide == nil:
			return UpdateBatch{}, &FieldError{Record: record, Field: "slide"}
		case uj.Shape == nil:
			return UpdateBatch{}, &FieldError{Record: record, Field: "shape"}
		case uj.Text == nil && len(uj.TableCells) == 0:
			return UpdateBatch{}, &FieldError{Record: record, Field: "text"}
		}
		u := UpdateInstruction{
			Slide:           *uj.Slide,
			Shape:           *uj.Shape,
			PreserveBullets: uj.PreserveBullets,
		}
		if uj.Text != nil {
			u.Text = *uj.Text
		}
		for j, cj := range uj.TableCells {
			cellRecord := fmt.Sprintf("%s.table_cells[%d]", record, j)
			switch {
			case cj.Row == nil:
				return UpdateBatch{}, &FieldError{Record: cellRecord, Field: "row"}
			case cj.Column == nil:
				return UpdateBatch{}, &FieldError{Record: cellRecord, Field: "column"}
			case cj.Text == nil:
				return UpdateBatch{}, &FieldError{Record: cellRecord, Field: "text"}
			}
			u.TableCells = append(u.TableCells, TableCell{
				Row:    *cj.Row,
				Column: *cj.Column,
				Text:   *cj.Text,
			})
		}
		batch.Updates = append(batch.Updates, u)
	}
	return batch, nil
}
