package pptx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/slidefill/model"
)

func TestApply(t *testing.T) {
	template := buildTemplate(t)
	r, err := Open(template)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	batch := model.UpdateBatch{Updates: []model.UpdateInstruction{
		{Slide: 1, Shape: 2, Text: "New A\n\tNew B", PreserveBullets: true},
		{Slide: 2, Shape: 0, Text: "March 2025"},
	}}

	outPath := filepath.Join(t.TempDir(), "out.pptx")
	res, err := Apply(template, outPath, r.Deck(), batch)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if res.Applied != 2 {
		t.Errorf("Applied = %d, want 2", res.Applied)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", res.Skipped)
	}

	out, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open(output) error: %v", err)
	}
	defer out.Close()

	slide1 := out.Deck().SlideByNumber(1)
	content := slide1.ShapeByIndex(2)
	if content == nil {
		t.Fatal("output slide 1 lost shape ordinal 2")
	}
	if content.Text != "New A\nNew B" {
		t.Errorf("content text = %q, want %q", content.Text, "New A\nNew B")
	}
	if len(content.ParagraphLevels) != 2 || content.ParagraphLevels[0] != 0 || content.ParagraphLevels[1] != 1 {
		t.Errorf("content levels = %v, want [0 1]", content.ParagraphLevels)
	}

	// The untouched title keeps its text and position.
	title := slide1.ShapeByIndex(0)
	if title == nil || title.Text != "Quarterly Update" || title.Left != 100 {
		t.Errorf("title shape changed: %+v", title)
	}

	date := out.Deck().SlideByNumber(2).ShapeByIndex(0)
	if date == nil || date.Text != "March 2025" {
		t.Errorf("date shape = %+v, want text March 2025", date)
	}
}

func TestApplyTableCells(t *testing.T) {
	template := buildTableTemplate(t)
	r, err := Open(template)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	batch := model.UpdateBatch{Updates: []model.UpdateInstruction{
		{Slide: 1, Shape: 2, TableCells: []model.TableCell{
			{Row: 0, Column: 1, Text: "Q3 2026"},
			{Row: 1, Column: 1, Text: "$2.6M"},
		}},
		{Slide: 1, Shape: 3, Text: "Figures in EUR"},
	}}

	outPath := filepath.Join(t.TempDir(), "out.pptx")
	res, err := Apply(template, outPath, r.Deck(), batch)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if res.Applied != 2 {
		t.Errorf("Applied = %d, want 2", res.Applied)
	}

	out, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open(output) error: %v", err)
	}
	defer out.Close()

	table := out.Deck().SlideByNumber(1).ShapeByIndex(2)
	if table == nil || !table.IsTable() {
		t.Fatalf("output lost the table shape: %+v", table)
	}
	if got := table.Table.CellText(0, 1); got != "Q3 2026" {
		t.Errorf("cell (0,1) = %q, want %q", got, "Q3 2026")
	}
	if got := table.Table.CellText(1, 1); got != "$2.6M" {
		t.Errorf("cell (1,1) = %q, want %q", got, "$2.6M")
	}

	// Untargeted cells keep their text.
	if got := table.Table.CellText(0, 0); got != "Metric" {
		t.Errorf("cell (0,0) = %q, want %q", got, "Metric")
	}
	if got := table.Table.CellText(1, 0); got != "Revenue" {
		t.Errorf("cell (1,0) = %q, want %q", got, "Revenue")
	}

	caption := out.Deck().SlideByNumber(1).ShapeByIndex(3)
	if caption == nil || caption.Text != "Figures in EUR" {
		t.Errorf("caption = %+v, want text Figures in EUR", caption)
	}
}

func TestApplyTableCellMismatches(t *testing.T) {
	template := buildTableTemplate(t)
	r, err := Open(template)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	batch := model.UpdateBatch{Updates: []model.UpdateInstruction{
		{Slide: 1, Shape: 3, TableCells: []model.TableCell{{Row: 0, Column: 0, Text: "x"}}},
		{Slide: 1, Shape: 2, Text: "plain text at a table"},
	}}

	outPath := filepath.Join(t.TempDir(), "out.pptx")
	res, err := Apply(template, outPath, r.Deck(), batch)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if res.Applied != 0 {
		t.Errorf("Applied = %d, want 0", res.Applied)
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("Skipped has %d entries, want 2", len(res.Skipped))
	}

	// The output deck is unchanged.
	out, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open(output) error: %v", err)
	}
	defer out.Close()
	table := out.Deck().SlideByNumber(1).ShapeByIndex(2)
	if table == nil || table.Table.CellText(0, 0) != "Metric" {
		t.Errorf("skipped instructions still changed the table: %+v", table)
	}
}

func TestApplyInvalidReferences(t *testing.T) {
	template := buildTemplate(t)
	r, err := Open(template)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	batch := model.UpdateBatch{Updates: []model.UpdateInstruction{
		{Slide: 9, Shape: 0, Text: "nowhere"},
		{Slide: 1, Shape: 7, Text: "no such shape"},
		{Slide: 2, Shape: 0, Text: "March 2025"},
	}}

	outPath := filepath.Join(t.TempDir(), "out.pptx")
	res, err := Apply(template, outPath, r.Deck(), batch)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if res.Applied != 1 {
		t.Errorf("Applied = %d, want 1", res.Applied)
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("Skipped has %d entries, want 2", len(res.Skipped))
	}
	if res.Skipped[0].Index != 0 || res.Skipped[1].Index != 1 {
		t.Errorf("Skipped indices = %d, %d, want 0, 1", res.Skipped[0].Index, res.Skipped[1].Index)
	}

	// The valid instruction still landed.
	out, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open(output) error: %v", err)
	}
	defer out.Close()
	date := out.Deck().SlideByNumber(2).ShapeByIndex(0)
	if date == nil || date.Text != "March 2025" {
		t.Errorf("date shape = %+v, want text March 2025", date)
	}
}

func TestApplyConflictingBatch(t *testing.T) {
	template := buildTemplate(t)
	r, err := Open(template)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	batch := model.UpdateBatch{Updates: []model.UpdateInstruction{
		{Slide: 2, Shape: 0, Text: "first"},
		{Slide: 2, Shape: 0, Text: "second"},
	}}

	outPath := filepath.Join(t.TempDir(), "out.pptx")
	if _, err := Apply(template, outPath, r.Deck(), batch); err == nil {
		t.Fatal("Apply() with conflicting instructions returned nil error")
	}
	// Nothing may have been written.
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("conflicting batch still produced an output file")
	}
}

func TestApplyEscapesText(t *testing.T) {
	template := buildTemplate(t)
	r, err := Open(template)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	batch := model.UpdateBatch{Updates: []model.UpdateInstruction{
		{Slide: 2, Shape: 0, Text: "R&D <2025>"},
	}}

	outPath := filepath.Join(t.TempDir(), "out.pptx")
	if _, err := Apply(template, outPath, r.Deck(), batch); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	out, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open(output) error: %v", err)
	}
	defer out.Close()

	shape := out.Deck().SlideByNumber(2).ShapeByIndex(0)
	if shape == nil || shape.Text != "R&D <2025>" {
		t.Errorf("shape = %+v, want text R&D <2025> round-tripped", shape)
	}
}

func TestRebuildTxBodyKeepsStyle(t *testing.T) {
	body := `<p:txBody><a:bodyPr/><a:p><a:pPr algn="ctr"/><a:r><a:rPr lang="en-US" sz="2400"/><a:t>Old</a:t></a:r></a:p></p:txBody>`

	got, err := rebuildTxBody(body, "New", false)
	if err != nil {
		t.Fatalf("rebuildTxBody() error: %v", err)
	}
	for _, want := range []string{`<a:bodyPr/>`, `<a:pPr algn="ctr"/>`, `<a:rPr lang="en-US" sz="2400"/>`, `<a:t>New</a:t>`} {
		if !strings.Contains(got, want) {
			t.Errorf("rebuilt body missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Old") {
		t.Errorf("rebuilt body still contains old text:\n%s", got)
	}
}

func TestRebuildTxBodyBulletLevels(t *testing.T) {
	body := `<p:txBody><a:bodyPr/><a:p><a:r><a:t>Old</a:t></a:r></a:p></p:txBody>`

	got, err := rebuildTxBody(body, "Top\n\tNested", true)
	if err != nil {
		t.Fatalf("rebuildTxBody() error: %v", err)
	}
	if !strings.Contains(got, `<a:pPr lvl="1"/>`) {
		t.Errorf("rebuilt body lacks level-1 paragraph properties:\n%s", got)
	}
	if !strings.Contains(got, "<a:t>Top</a:t>") || !strings.Contains(got, "<a:t>Nested</a:t>") {
		t.Errorf("rebuilt body lost line text:\n%s", got)
	}
}

func TestSetLvlAttr(t *testing.T) {
	tests := []struct {
		name  string
		pPr   string
		level int
		want  string
	}{
		{"add to bare element", `<a:pPr/>`, 1, `<a:pPr lvl="1"/>`},
		{"replace existing", `<a:pPr lvl="2" algn="l"/>`, 1, `<a:pPr lvl="1" algn="l"/>`},
		{"remove", `<a:pPr lvl="2"/>`, -1, `<a:pPr/>`},
		{"keep other attrs on remove", `<a:pPr lvl="2" algn="l"/>`, -1, `<a:pPr algn="l"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := setLvlAttr(tt.pPr, tt.level); got != tt.want {
				t.Errorf("setLvlAttr(%q, %d) = %q, want %q", tt.pPr, tt.level, got, tt.want)
			}
		})
	}
}
