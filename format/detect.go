// Package format provides input format detection for the slidefill
// library: templates are PPTX archives, content comes as JSON or Markdown.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PPTX indicates a Microsoft PowerPoint (.pptx) template.
	PPTX
	// JSON indicates a JSON content or interchange record.
	JSON
	// Markdown indicates a Markdown content document.
	Markdown
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PPTX:
		return "PPTX"
	case JSON:
		return "JSON"
	case Markdown:
		return "Markdown"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PPTX:
		return ".pptx"
	case JSON:
		return ".json"
	case Markdown:
		return ".md"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pptx":
		return PPTX
	case ".json":
		return JSON
	case ".md", ".markdown":
		return Markdown
	default:
		return Unknown
	}
}

// DetectFromMagic inspects leading bytes to determine the format. A ZIP
// archive needs the full reader to confirm it holds a presentation; use
// DetectFromReader for that.
func DetectFromMagic(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return Unknown
	}

	// JSON records start with an object or array.
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return JSON
	}

	return Unknown
}

// DetectFromReader inspects the content to determine the format. Unlike
// extension-based detection it can confirm that a ZIP archive actually
// holds a presentation.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	// ZIP magic: PK\x03\x04
	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}

	return DetectFromMagic(magic), nil
}

// detectZIPFormat inspects a ZIP archive for presentation markers.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/") {
			return PPTX, nil
		}
	}
	return Unknown, nil
}
