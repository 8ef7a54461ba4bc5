// Package pptx reads slide-deck templates (Office Open XML presentations)
// into the interchange model and applies update batches back to them.
package pptx

import "encoding/xml"

// emuPerPoint converts OOXML English Metric Units to points.
const emuPerPoint = 12700

// presentationXML represents the ppt/presentation.xml file structure.
type presentationXML struct {
	XMLName xml.Name    `xml:"presentation"`
	SlideSz *slideSzXML `xml:"sldSz"`
}

type slideSzXML struct {
	Cx int64 `xml:"cx,attr"` // Width in EMUs
	Cy int64 `xml:"cy,attr"` // Height in EMUs
}

// spXML represents a shape element within a slide's shape tree.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type spPrXML struct {
	Xfrm *xfrmXML `xml:"xfrm"`
}

type xfrmXML struct {
	Off offXML `xml:"off"`
	Ext extXML `xml:"ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"` // X position in EMUs
	Y int64 `xml:"y,attr"` // Y position in EMUs
}

type extXML struct {
	Cx int64 `xml:"cx,attr"` // Width in EMUs
	Cy int64 `xml:"cy,attr"` // Height in EMUs
}

// graphicFrameXML represents a graphic frame element, the shape kind that
// carries tables. Frames holding other graphic content (charts, diagrams)
// parse with a nil Tbl.
type graphicFrameXML struct {
	NvPr nvGraphicFramePrXML `xml:"nvGraphicFramePr"`
	Xfrm *xfrmXML            `xml:"xfrm"`
	Tbl  *tblXML             `xml:"graphic>graphicData>tbl"`
}

type nvGraphicFramePrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type tblXML struct {
	Grid tblGridXML `xml:"tblGrid"`
	Tr   []trXML    `xml:"tr"`
}

type tblGridXML struct {
	Cols []gridColXML `xml:"gridCol"`
}

type gridColXML struct{}

type trXML struct {
	Tc []tcXML `xml:"tc"`
}

type tcXML struct {
	TxBody *txBodyXML `xml:"txBody"`
}

// txBodyXML represents text body content.
type txBodyXML struct {
	P []pXML `xml:"p"` // Paragraphs
}

// pXML represents a paragraph.
type pXML struct {
	PPr *pPrXML  `xml:"pPr"` // Paragraph properties
	R   []rXML   `xml:"r"`   // Text runs
	Fld []fldXML `xml:"fld"` // Fields (like slide number)
}

type pPrXML struct {
	Lvl int `xml:"lvl,attr"` // Bullet level (0-8)
}

// rXML represents a text run.
type rXML struct {
	T string `xml:"t"` // Text content
}

type fldXML struct {
	Type string `xml:"type,attr"` // slidenum, datetime, etc.
	T    string `xml:"t"`         // Field value
}
