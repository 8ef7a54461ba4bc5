package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/slidefill/model"
)

// Result summarizes one application of an update batch.
type Result struct {
	Applied  int              // Instructions written to the output
	Skipped  []model.RefError // Instructions dropped for invalid references
	Warnings []model.Warning  // Non-fatal issues raised during application
}

// Apply writes a copy of the template with the batch's text replacements
// applied. Every zip entry other than the targeted slide parts is copied
// verbatim; targeted slides have only the text bodies of the targeted
// shapes rewritten.
//
// A batch with two instructions for the same (slide, shape) target is
// rejected before anything is written. Instructions referring to a slide
// or shape the deck does not have are recorded in Result.Skipped and do
// not abort the rest of the batch.
func Apply(templatePath, outPath string, deck *model.Deck, batch model.UpdateBatch) (*Result, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}

	// Partition instructions per slide, dropping bad references.
	bySlide := make(map[int][]model.UpdateInstruction)
	for i := range batch.Updates {
		if refErr := batch.CheckRef(i, deck); refErr != nil {
			res.Skipped = append(res.Skipped, *refErr)
			continue
		}
		u := batch.Updates[i]
		bySlide[u.Slide] = append(bySlide[u.Slide], u)
	}

	zr, err := zip.OpenReader(templatePath)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer zr.Close()

	// Map 1-based slide numbers to their zip entry names, matching the
	// reader's ordering.
	slideEntry := make(map[string]int)
	for i, name := range slideFiles(&zr.Reader) {
		slideEntry[name] = i + 1
	}

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range zr.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}

		if number, ok := slideEntry[f.Name]; ok {
			if updates := bySlide[number]; len(updates) > 0 {
				data, err = patchSlide(data, updates)
				if err != nil {
					return nil, fmt.Errorf("patching %s: %w", f.Name, err)
				}
				res.Applied += len(updates)
			}
		}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing output: %w", err)
	}
	return res, out.Close()
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// patchSlide rewrites the text bodies of the targeted shapes in one
// slide's XML.
func patchSlide(data []byte, updates []model.UpdateInstruction) ([]byte, error) {
	doc := string(data)
	for _, u := range updates {
		patched, err := patchShape(doc, u)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", u.Shape, err)
		}
		doc = patched
	}
	return []byte(doc), nil
}

// patchShape locates the instruction's shape by its document-order
// ordinal and replaces either its text body or, for a table update, the
// text bodies of the listed cells.
func patchShape(doc string, u model.UpdateInstruction) (string, error) {
	name, start, end, err := shapeBounds(doc, u.Shape)
	if err != nil {
		return "", err
	}
	shape := doc[start:end]

	var newShape string
	if len(u.TableCells) > 0 {
		if name != "graphicFrame" {
			return "", fmt.Errorf("table cell update targets a %s element", name)
		}
		newShape, err = patchTableCells(shape, u.TableCells)
	} else {
		if name == "graphicFrame" {
			return "", fmt.Errorf("text update targets a table shape")
		}
		newShape, err = patchTextBody(shape, u.Text, u.PreserveBullets)
	}
	if err != nil {
		return "", err
	}
	return doc[:start] + newShape + doc[end:], nil
}

// patchTextBody replaces the paragraph content of a shape's text body.
func patchTextBody(shape, text string, preserveBullets bool) (string, error) {
	bodyStart := strings.Index(shape, "<p:txBody")
	bodyEnd := strings.Index(shape, "</p:txBody>")
	if bodyStart < 0 || bodyEnd < 0 {
		return "", fmt.Errorf("shape has no text body")
	}
	body := shape[bodyStart : bodyEnd+len("</p:txBody>")]

	newBody, err := rebuildTxBody(body, text, preserveBullets)
	if err != nil {
		return "", err
	}
	return shape[:bodyStart] + newBody + shape[bodyEnd+len("</p:txBody>"):], nil
}

// patchTableCells rewrites the text bodies of the listed cells inside a
// graphic frame's table.
func patchTableCells(frame string, cells []model.TableCell) (string, error) {
	for _, c := range cells {
		patched, err := patchTableCell(frame, c)
		if err != nil {
			return "", fmt.Errorf("cell (%d,%d): %w", c.Row, c.Column, err)
		}
		frame = patched
	}
	return frame, nil
}

// patchTableCell rewrites one table cell's text body. Rows and columns are
// 0-based positions in the XML, which carries every cell of the grid
// whether or not it has text.
func patchTableCell(frame string, c model.TableCell) (string, error) {
	rowStart, rowEnd, err := elementBounds(frame, "a:tr", c.Row)
	if err != nil {
		return "", err
	}
	row := frame[rowStart:rowEnd]

	cellStart, cellEnd, err := elementBounds(row, "a:tc", c.Column)
	if err != nil {
		return "", err
	}
	cell := row[cellStart:cellEnd]

	bodyStart := strings.Index(cell, "<a:txBody")
	bodyEnd := strings.Index(cell, "</a:txBody>")
	if bodyStart < 0 || bodyEnd < 0 {
		return "", fmt.Errorf("cell has no text body")
	}
	body := cell[bodyStart : bodyEnd+len("</a:txBody>")]

	newBody, err := rebuildTxBody(body, c.Text, false)
	if err != nil {
		return "", err
	}

	newCell := cell[:bodyStart] + newBody + cell[bodyEnd+len("</a:txBody>"):]
	newRow := row[:cellStart] + newCell + row[cellEnd:]
	return frame[:rowStart] + newRow + frame[rowEnd:], nil
}

// shapeElementNames are the top-level shape tree element kinds, in no
// particular order. They match the reader's ordinal view.
var shapeElementNames = []string{"sp", "pic", "cxnSp", "grpSp", "graphicFrame"}

// shapeBounds returns the element name and byte range of the ordinal-th
// top-level shape element. Ordinals count every such element in document
// order, with a group and all its members taking a single ordinal, the
// same view the reader produces.
func shapeBounds(doc string, ordinal int) (string, int, int, error) {
	offset := 0
	for i := 0; ; i++ {
		name, start, end, err := nextShapeElement(doc, offset)
		if err != nil {
			return "", 0, 0, err
		}
		if start < 0 {
			return "", 0, 0, fmt.Errorf("shape ordinal %d not found", ordinal)
		}
		if i == ordinal {
			return name, start, end, nil
		}
		offset = end
	}
}

// nextShapeElement finds the earliest top-level shape element at or after
// offset and returns its kind and byte range, or start -1 when none
// remains.
func nextShapeElement(doc string, offset int) (string, int, int, error) {
	best := -1
	bestName := ""
	for _, name := range shapeElementNames {
		if i := indexElementStart(doc, offset, "p:"+name); i >= 0 && (best < 0 || i < best) {
			best = i
			bestName = name
		}
	}
	if best < 0 {
		return "", -1, -1, nil
	}

	if bestName == "grpSp" {
		end, err := groupEnd(doc, best)
		if err != nil {
			return "", -1, -1, err
		}
		return bestName, best, end, nil
	}

	closeTag := "</p:" + bestName + ">"
	j := strings.Index(doc[best:], closeTag)
	if j < 0 {
		return "", -1, -1, fmt.Errorf("unterminated %s element", bestName)
	}
	return bestName, best, best + j + len(closeTag), nil
}

// groupEnd finds the end of a group shape, tracking nesting so an inner
// group's close tag is not mistaken for the outer one's.
func groupEnd(doc string, start int) (int, error) {
	depth := 0
	pos := start
	for {
		closeIdx := strings.Index(doc[pos:], "</p:grpSp>")
		if closeIdx < 0 {
			return 0, fmt.Errorf("unterminated grpSp element")
		}
		closeIdx += pos
		if open := indexElementStart(doc, pos, "p:grpSp"); open >= 0 && open < closeIdx {
			depth++
			pos = open + len("<p:grpSp")
			continue
		}
		depth--
		pos = closeIdx + len("</p:grpSp>")
		if depth == 0 {
			return pos, nil
		}
	}
}

// elementBounds returns the byte range of the n-th (0-based) occurrence of
// the named element within s.
func elementBounds(s, name string, n int) (int, int, error) {
	closeTag := "</" + name + ">"
	offset := 0
	for i := 0; ; i++ {
		start := indexElementStart(s, offset, name)
		if start < 0 {
			return 0, 0, fmt.Errorf("no %s element at position %d", name, n)
		}
		j := strings.Index(s[start:], closeTag)
		if j < 0 {
			return 0, 0, fmt.Errorf("unterminated %s element", name)
		}
		end := start + j + len(closeTag)
		if i == n {
			return start, end, nil
		}
		offset = end
	}
}

// indexElementStart finds the next opening tag of the named element at or
// after offset. The prefix alone is not enough: "<p:sp" also begins
// "<p:spPr" and "<a:tc" begins "<a:tcPr", so the byte after the name must
// end the tag name.
func indexElementStart(doc string, offset int, name string) int {
	open := "<" + name
	for {
		i := strings.Index(doc[offset:], open)
		if i < 0 {
			return -1
		}
		pos := offset + i
		rest := doc[pos+len(open):]
		if strings.HasPrefix(rest, ">") || strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "/") {
			return pos
		}
		offset = pos + len(open)
	}
}

// rebuildTxBody replaces every paragraph of a text body with paragraphs
// holding the replacement text. The body properties and list style ahead
// of the first paragraph are kept, as are the first paragraph's paragraph
// and run properties, so the new text renders in the template's style.
//
// With preserveBullets, each line becomes its own paragraph and leading
// tabs in the line set its indentation level. Otherwise the whole text
// becomes a single paragraph with line breaks between lines.
//
// Shape bodies are p:txBody elements and table cell bodies a:txBody; the
// namespace of the closing tag follows the body's opening tag.
func rebuildTxBody(body, text string, preserveBullets bool) (string, error) {
	closing := "</p:txBody>"
	if strings.HasPrefix(body, "<a:txBody") {
		closing = "</a:txBody>"
	}

	firstPara := strings.Index(body, "<a:p>")
	if firstPara < 0 {
		firstPara = strings.Index(body, "<a:p ")
	}
	if firstPara < 0 {
		return "", fmt.Errorf("text body has no paragraphs")
	}
	prefix := body[:firstPara]

	// Style properties come from the first paragraph only.
	para := body[firstPara:]
	if end := strings.Index(para, "</a:p>"); end >= 0 {
		para = para[:end+len("</a:p>")]
	}
	pPr := extractElement(para, "a:pPr")
	rPr := extractElement(para, "a:rPr")

	var sb strings.Builder
	sb.WriteString(prefix)

	if preserveBullets {
		for _, line := range model.DecodeBulletLines(text) {
			sb.WriteString("<a:p>")
			sb.WriteString(paragraphProps(pPr, line.Level))
			writeRun(&sb, rPr, line.Text)
			sb.WriteString("</a:p>")
		}
		if text == "" {
			sb.WriteString("<a:p></a:p>")
		}
	} else {
		sb.WriteString("<a:p>")
		sb.WriteString(pPr)
		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				sb.WriteString("<a:br/>")
			}
			writeRun(&sb, rPr, line)
		}
		sb.WriteString("</a:p>")
	}

	sb.WriteString(closing)
	return sb.String(), nil
}

func writeRun(sb *strings.Builder, rPr, text string) {
	sb.WriteString("<a:r>")
	sb.WriteString(rPr)
	sb.WriteString("<a:t>")
	sb.WriteString(xmlEscape(text))
	sb.WriteString("</a:t>")
	sb.WriteString("</a:r>")
}

// paragraphProps renders paragraph properties carrying the given level,
// reusing the template's properties when present.
func paragraphProps(pPr string, level int) string {
	if level <= 0 {
		if pPr != "" {
			return setLvlAttr(pPr, -1)
		}
		return ""
	}
	if pPr != "" {
		return setLvlAttr(pPr, level)
	}
	return fmt.Sprintf(`<a:pPr lvl="%d"/>`, level)
}

// setLvlAttr rewrites the lvl attribute of a pPr element. A negative
// level removes the attribute.
func setLvlAttr(pPr string, level int) string {
	// Strip any existing lvl attribute first.
	if i := strings.Index(pPr, ` lvl="`); i >= 0 {
		j := strings.Index(pPr[i+len(` lvl="`):], `"`)
		if j >= 0 {
			pPr = pPr[:i] + pPr[i+len(` lvl="`)+j+1:]
		}
	}
	if level < 0 {
		return pPr
	}
	attr := fmt.Sprintf(` lvl="%d"`, level)
	if strings.HasPrefix(pPr, "<a:pPr") {
		return "<a:pPr" + attr + pPr[len("<a:pPr"):]
	}
	return pPr
}

// extractElement returns the first occurrence of the named element in s,
// whether self-closing or paired, or "" when absent.
func extractElement(s, name string) string {
	open := "<" + name
	i := strings.Index(s, open)
	if i < 0 {
		return ""
	}
	rest := s[i:]
	next := rest[len(open):]
	if !strings.HasPrefix(next, ">") && !strings.HasPrefix(next, " ") && !strings.HasPrefix(next, "/") {
		return ""
	}

	// Self-closing form.
	gt := strings.Index(rest, ">")
	if gt < 0 {
		return ""
	}
	if strings.HasSuffix(rest[:gt+1], "/>") {
		return rest[:gt+1]
	}

	closeTag := "</" + name + ">"
	j := strings.Index(rest, closeTag)
	if j < 0 {
		return ""
	}
	return rest[:j+len(closeTag)]
}

// xmlEscape escapes the characters XML text content cannot carry raw.
func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
