package match

import "github.com/tsawler/slidefill/model"

// PreserveHierarchy assigns indentation levels to replacement lines based
// on the level structure of the paragraphs they replace.
//
// When the original levels contain more than one distinct value the shape
// has hierarchy: a line hinted at level 0 stays at level 0 and an indented
// line becomes one level deeper than the preceding top-level line. An
// indented line with no preceding top-level line is pinned to level 0.
// When the original levels are uniform (or absent), every line gets level
// 0 regardless of hints.
//
// This is a best-effort remap of depth-one structure, not a guarantee of
// visual equivalence with the original list.
func PreserveHierarchy(originalLevels []int, points []model.KeyPoint) []model.BulletLine {
	lines := make([]model.BulletLine, len(points))
	hierarchical := hasHierarchy(originalLevels)

	seenTopLevel := false
	for i, p := range points {
		level := 0
		if hierarchical && p.Level > 0 && seenTopLevel {
			level = 1
		}
		if p.Level == 0 {
			seenTopLevel = true
		}
		lines[i] = model.BulletLine{Text: p.Text, Level: level}
	}
	return lines
}

// hasHierarchy reports whether levels contain more than one distinct value.
func hasHierarchy(levels []int) bool {
	if len(levels) < 2 {
		return false
	}
	first := levels[0]
	for _, lvl := range levels[1:] {
		if lvl != first {
			return true
		}
	}
	return false
}
