package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PPTX, "PPTX"},
		{JSON, "JSON"},
		{Markdown, "Markdown"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PPTX, ".pptx"},
		{JSON, ".json"},
		{Markdown, ".md"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"template.pptx", PPTX},
		{"template.PPTX", PPTX},
		{"template.Pptx", PPTX},
		{"content.json", JSON},
		{"content.JSON", JSON},
		{"content.md", Markdown},
		{"content.markdown", Markdown},
		{"content.MD", Markdown},
		{"document.txt", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.pptx", PPTX},
		{"/path/to/file.json", JSON},
		{"/path/to/file.md", Markdown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "JSON object",
			data: []byte(`{"date": "March 2025"}`),
			want: JSON,
		},
		{
			name: "JSON array",
			data: []byte(`[{"slide": 1}]`),
			want: JSON,
		},
		{
			name: "JSON with leading whitespace",
			data: []byte("  \n  {\"date\": \"Q3\"}"),
			want: JSON,
		},
		{
			name: "ZIP magic bytes need reader inspection",
			data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00},
			want: Unknown,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "plain text",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_PPTX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("ppt/presentation.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("<p:presentation/>")); err != nil {
		t.Fatal(err)
	}
	zw.Close()

	format, err := DetectFromReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != PPTX {
		t.Errorf("DetectFromReader() = %v, want PPTX", format)
	}
}

func TestDetectFromReader_ZIPWithoutPresentation(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("<w:document/>")); err != nil {
		t.Fatal(err)
	}
	zw.Close()

	format, err := DetectFromReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}

func TestDetectFromReader_JSON(t *testing.T) {
	data := []byte(`{"metrics": []}`)
	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != JSON {
		t.Errorf("DetectFromReader() = %v, want JSON", format)
	}
}
