package classify

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/slidefill/model"
)

// candidatePair is a feasible (label, value) pairing awaiting greedy
// assignment.
type candidatePair struct {
	labelIdx int
	valueIdx int
	gap      float64
}

// DetectPairs finds label-value pairs among the shapes of one slide.
//
// A shape whose trimmed text ends with ":" is a label candidate. A value
// for it is any other shape whose left offset is strictly greater than the
// label's, with a horizontal gap (difference of left offsets) below
// PairMaxGap and a top-offset difference below PairMaxVerticalOffset.
//
// Candidates are assigned greedily by ascending gap in a single pass, so
// each label takes its nearest value and a value claimed by a closer label
// is never reassigned to a farther one. Ties break by label order, then
// value order, keeping the result deterministic.
func (c *Classifier) DetectPairs(shapes []model.Shape) []LabelValuePair {
	var candidates []candidatePair

	for li, label := range shapes {
		if !isLabelCandidate(label.Text) {
			continue
		}
		labelBox := label.BBox()
		for vi, value := range shapes {
			if vi == li {
				continue
			}
			valueBox := value.BBox()
			gap := valueBox.Left() - labelBox.Left()
			if gap <= 0 || gap >= c.config.PairMaxGap {
				continue
			}
			if math.Abs(valueBox.Top()-labelBox.Top()) >= c.config.PairMaxVerticalOffset {
				continue
			}
			candidates = append(candidates, candidatePair{labelIdx: li, valueIdx: vi, gap: gap})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].gap != candidates[j].gap {
			return candidates[i].gap < candidates[j].gap
		}
		if candidates[i].labelIdx != candidates[j].labelIdx {
			return candidates[i].labelIdx < candidates[j].labelIdx
		}
		return candidates[i].valueIdx < candidates[j].valueIdx
	})

	labelTaken := make(map[int]bool)
	valueTaken := make(map[int]bool)
	var pairs []LabelValuePair

	for _, cand := range candidates {
		if labelTaken[cand.labelIdx] || valueTaken[cand.valueIdx] {
			continue
		}
		labelTaken[cand.labelIdx] = true
		valueTaken[cand.valueIdx] = true
		pairs = append(pairs, LabelValuePair{
			Label: shapes[cand.labelIdx],
			Value: shapes[cand.valueIdx],
			Gap:   cand.gap,
		})
	}

	// Report pairs in slide order of their labels.
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Label.Index < pairs[j].Label.Index
	})

	return pairs
}

// isLabelCandidate reports whether the text marks a label shape.
func isLabelCandidate(text string) bool {
	return strings.HasSuffix(strings.TrimSpace(text), ":")
}

// LabelText returns the label's caption without the trailing colon,
// trimmed. This is the form matched against metric labels.
func (p LabelValuePair) LabelText() string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p.Label.Text), ":"))
}
