package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsawler/slidefill/model"
)

// Reader provides access to the structure of a PPTX template.
type Reader struct {
	zr           *zip.Reader
	closer       io.Closer
	presentation *presentationXML
	deck         *model.Deck
}

// Open opens a PPTX file and parses its structure.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zr: &zr.Reader, closer: zr}
	if err := r.parse(); err != nil {
		zr.Close()
		return nil, err
	}
	r.deck.FileName = filepath.Base(filename)
	return r, nil
}

// NewReader parses a PPTX document from an in-memory or already-open
// source.
func NewReader(src io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(src, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zr: zr}
	if err := r.parse(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// Deck returns the extracted template structure.
func (r *Reader) Deck() *model.Deck {
	return r.deck
}

// SlideCount returns the number of slides.
func (r *Reader) SlideCount() int {
	return len(r.deck.Slides)
}

func (r *Reader) parse() error {
	if err := r.validate(); err != nil {
		return err
	}
	if err := r.parsePresentation(); err != nil {
		return fmt.Errorf("parsing presentation: %w", err)
	}
	if err := r.parseSlides(); err != nil {
		return fmt.Errorf("parsing slides: %w", err)
	}
	return nil
}

// validate checks that required PPTX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zr.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	if len(slideFiles(r.zr)) == 0 {
		return fmt.Errorf("no slides found in presentation")
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parsePresentation reads the slide dimensions from ppt/presentation.xml.
func (r *Reader) parsePresentation() error {
	data, err := r.getFileContent("ppt/presentation.xml")
	if err != nil {
		return err
	}

	r.presentation = &presentationXML{}
	if err := xml.Unmarshal(data, r.presentation); err != nil {
		return err
	}

	r.deck = &model.Deck{}
	if sz := r.presentation.SlideSz; sz != nil {
		r.deck.Width = float64(sz.Cx) / emuPerPoint
		r.deck.Height = float64(sz.Cy) / emuPerPoint
	}
	return nil
}

// slideFiles returns the slide XML entries sorted by slide number.
func slideFiles(zr *zip.Reader) []string {
	var files []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") &&
			strings.HasSuffix(f.Name, ".xml") &&
			!strings.Contains(f.Name, "_rels") {
			files = append(files, f.Name)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return extractSlideNumber(files[i]) < extractSlideNumber(files[j])
	})
	return files
}

// extractSlideNumber extracts the number from a path like
// "ppt/slides/slide1.xml".
func extractSlideNumber(path string) int {
	name := strings.TrimPrefix(path, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

// parseSlides parses all slide files in order.
func (r *Reader) parseSlides() error {
	for i, slidePath := range slideFiles(r.zr) {
		data, err := r.getFileContent(slidePath)
		if err != nil {
			return err
		}
		slide, err := parseSlide(data, i+1, r.deck.Width, r.deck.Height)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", slidePath, err)
		}
		r.deck.Slides = append(r.deck.Slides, slide)
	}
	return nil
}

// parseSlide extracts the text-bearing shapes of one slide. Shape ordinals
// count every top-level element of the shape tree in document order:
// plain shapes, pictures, connectors, graphic frames, and groups. A group
// takes one ordinal as a unit; its members are not counted. Textless
// shapes take an ordinal but are not reported, so ordinals stay aligned
// with the applier's view of the same XML.
func parseSlide(data []byte, number int, width, height float64) (model.Slide, error) {
	slide := model.Slide{Number: number, Width: width, Height: height}

	dec := xml.NewDecoder(bytes.NewReader(data))
	ordinal := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Slide{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var shape *model.Shape
		switch se.Name.Local {
		case "sp":
			var sp spXML
			if err := dec.DecodeElement(&sp, &se); err != nil {
				return model.Slide{}, err
			}
			shape = extractShape(&sp, number, ordinal)
		case "graphicFrame":
			var gf graphicFrameXML
			if err := dec.DecodeElement(&gf, &se); err != nil {
				return model.Slide{}, err
			}
			shape = extractTableShape(&gf, number, ordinal)
		case "pic", "cxnSp", "grpSp":
			// Counted but never reported. Skipping the subtree keeps
			// group members from being seen as further shapes.
			if err := dec.Skip(); err != nil {
				return model.Slide{}, err
			}
		default:
			continue
		}

		ordinal++
		if shape == nil {
			continue
		}
		slide.Shapes = append(slide.Shapes, *shape)
	}
	return slide, nil
}

// extractShape converts a parsed shape element to a model.Shape, or nil if
// the shape carries no text.
func extractShape(sp *spXML, slideNumber, ordinal int) *model.Shape {
	if sp.TxBody == nil || len(sp.TxBody.P) == 0 {
		return nil
	}

	shape := &model.Shape{
		SlideNumber: slideNumber,
		Index:       ordinal,
		Name:        sp.NvSpPr.CNvPr.Name,
	}

	if sp.SpPr.Xfrm != nil {
		shape.Left = float64(sp.SpPr.Xfrm.Off.X) / emuPerPoint
		shape.Top = float64(sp.SpPr.Xfrm.Off.Y) / emuPerPoint
		shape.Width = float64(sp.SpPr.Xfrm.Ext.Cx) / emuPerPoint
		shape.Height = float64(sp.SpPr.Xfrm.Ext.Cy) / emuPerPoint
	}

	var text strings.Builder
	for _, p := range sp.TxBody.P {
		paraText := paragraphText(&p)
		if paraText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(paraText)

		level := 0
		if p.PPr != nil {
			level = p.PPr.Lvl
		}
		shape.ParagraphLevels = append(shape.ParagraphLevels, level)
	}

	shape.Text = text.String()
	if shape.Text == "" {
		return nil
	}
	return shape
}

// extractTableShape converts a parsed graphic frame to a table shape, or
// nil when the frame holds no table or the table has no text in any cell.
func extractTableShape(gf *graphicFrameXML, slideNumber, ordinal int) *model.Shape {
	if gf.Tbl == nil {
		return nil
	}

	table := &model.TableData{
		Rows:    len(gf.Tbl.Tr),
		Columns: len(gf.Tbl.Grid.Cols),
	}
	for row, tr := range gf.Tbl.Tr {
		for col, tc := range tr.Tc {
			text := cellText(tc.TxBody)
			if text == "" {
				continue
			}
			table.Cells = append(table.Cells, model.TableCell{
				Row:    row,
				Column: col,
				Text:   text,
			})
		}
	}
	if len(table.Cells) == 0 {
		return nil
	}

	shape := &model.Shape{
		SlideNumber: slideNumber,
		Index:       ordinal,
		Name:        gf.NvPr.CNvPr.Name,
		Table:       table,
	}
	if gf.Xfrm != nil {
		shape.Left = float64(gf.Xfrm.Off.X) / emuPerPoint
		shape.Top = float64(gf.Xfrm.Off.Y) / emuPerPoint
		shape.Width = float64(gf.Xfrm.Ext.Cx) / emuPerPoint
		shape.Height = float64(gf.Xfrm.Ext.Cy) / emuPerPoint
	}
	return shape
}

// cellText joins the paragraph texts of one table cell.
func cellText(body *txBodyXML) string {
	if body == nil {
		return ""
	}
	var text strings.Builder
	for _, p := range body.P {
		paraText := paragraphText(&p)
		if paraText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(paraText)
	}
	return text.String()
}

// paragraphText joins the run and field text of one paragraph.
func paragraphText(p *pXML) string {
	var text strings.Builder
	for _, run := range p.R {
		text.WriteString(run.T)
	}
	for _, fld := range p.Fld {
		text.WriteString(fld.T)
	}
	return strings.TrimSpace(text.String())
}
