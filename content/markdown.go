package content

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tsawler/slidefill/classify"
	"github.com/tsawler/slidefill/model"
)

// DecodeMarkdown parses a Markdown document into a content record.
//
// The first date-like heading or paragraph becomes the date. Top-level
// list items of the form "Label: value" become metrics; every other list
// item becomes a key point whose level is its list nesting depth. Nested
// "Label: value" items stay key points, since indentation marks them as
// detail rather than a measurement.
func DecodeMarkdown(data []byte) (model.ContentRecord, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	var record model.ContentRecord
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph:
			if insideListItem(n) {
				return ast.WalkContinue, nil
			}
			if record.Date == "" {
				line := blockText(node, data)
				if classify.IsDateText(line) {
					record.Date = line
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			line := listItemText(node, data)
			if line == "" {
				return ast.WalkContinue, nil
			}
			level := listDepth(node)
			if label, value, ok := splitMetric(line); ok && level == 0 {
				record.Metrics = append(record.Metrics, model.Metric{Label: label, Value: value})
			} else {
				record.KeyPoints = append(record.KeyPoints, model.KeyPoint{Text: line, Level: level})
			}
			// Continue into the item so nested lists get their own visits.
			return ast.WalkContinue, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return model.ContentRecord{}, fmt.Errorf("markdown content: %w", err)
	}
	return record, nil
}

// listItemText returns the text of the item's own line, excluding any
// nested list beneath it.
func listItemText(item *ast.ListItem, source []byte) string {
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.TextBlock, *ast.Paragraph:
			return blockText(child, source)
		}
	}
	return ""
}

// blockText collects the inline text of a block node.
func blockText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			continue
		}
		sb.WriteString(blockText(child, source))
	}
	return strings.TrimSpace(sb.String())
}

// listDepth returns how many lists enclose the item beyond the outermost
// one, so top-level items are depth 0.
func listDepth(item *ast.ListItem) int {
	depth := -1
	for n := ast.Node(item); n != nil; n = n.Parent() {
		if _, ok := n.(*ast.List); ok {
			depth++
		}
	}
	if depth < 0 {
		depth = 0
	}
	return depth
}

// insideListItem reports whether the node has a ListItem ancestor.
func insideListItem(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.ListItem); ok {
			return true
		}
	}
	return false
}

// splitMetric splits "Label: value" into its parts. Both sides must be
// non-empty and the label short enough to be a caption.
func splitMetric(line string) (label, value string, ok bool) {
	i := strings.Index(line, ":")
	if i <= 0 {
		return "", "", false
	}
	label = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if label == "" || value == "" || len(strings.Fields(label)) > 3 {
		return "", "", false
	}
	return label, value, true
}
