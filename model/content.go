package model

// Metric is a single labeled measurement, e.g. {"Revenue", "$2.6M"}.
type Metric struct {
	Label string
	Value string
}

// KeyPoint is a single content point destined for a bullet list. Level is
// the indentation hint supplied by the caller (0 = top level); the bullet
// hierarchy preserver decides how hints map onto the target shape's levels.
type KeyPoint struct {
	Text  string
	Level int
}

// ContentRecord holds the structured content to map onto a classified deck.
// Every field is optional; an absent field means the matching shapes are
// left untouched.
type ContentRecord struct {
	Date      string
	Metrics   []Metric
	KeyPoints []KeyPoint
}

// IsEmpty returns true if no field of the record is populated.
func (c ContentRecord) IsEmpty() bool {
	return c.Date == "" && len(c.Metrics) == 0 && len(c.KeyPoints) == 0
}

// BulletLine is one line of replacement bullet text with its assigned
// indentation level, as produced by the bullet hierarchy preserver.
type BulletLine struct {
	Text  string
	Level int
}
