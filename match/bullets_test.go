package match

import (
	"reflect"
	"testing"

	"github.com/tsawler/slidefill/model"
)

func TestPreserveHierarchy(t *testing.T) {
	tests := []struct {
		name           string
		originalLevels []int
		points         []model.KeyPoint
		want           []model.BulletLine
	}{
		{
			name:           "uniform original flattens everything",
			originalLevels: []int{0, 0, 0},
			points: []model.KeyPoint{
				{Text: "Point A", Level: 0},
				{Text: "Point B", Level: 1},
			},
			want: []model.BulletLine{
				{Text: "Point A", Level: 0},
				{Text: "Point B", Level: 0},
			},
		},
		{
			name:           "hierarchical original keeps indentation hints",
			originalLevels: []int{0, 1, 1},
			points: []model.KeyPoint{
				{Text: "Point A", Level: 0},
				{Text: "Point B", Level: 1},
				{Text: "Point C", Level: 0},
			},
			want: []model.BulletLine{
				{Text: "Point A", Level: 0},
				{Text: "Point B", Level: 1},
				{Text: "Point C", Level: 0},
			},
		},
		{
			name:           "deep hints clamp to one level",
			originalLevels: []int{0, 1},
			points: []model.KeyPoint{
				{Text: "Point A", Level: 0},
				{Text: "Point B", Level: 3},
			},
			want: []model.BulletLine{
				{Text: "Point A", Level: 0},
				{Text: "Point B", Level: 1},
			},
		},
		{
			name:           "indented line without a preceding top level is pinned",
			originalLevels: []int{0, 1},
			points: []model.KeyPoint{
				{Text: "Point A", Level: 1},
				{Text: "Point B", Level: 0},
				{Text: "Point C", Level: 1},
			},
			want: []model.BulletLine{
				{Text: "Point A", Level: 0},
				{Text: "Point B", Level: 0},
				{Text: "Point C", Level: 1},
			},
		},
		{
			name:           "no original levels flattens everything",
			originalLevels: nil,
			points: []model.KeyPoint{
				{Text: "Point A", Level: 2},
			},
			want: []model.BulletLine{
				{Text: "Point A", Level: 0},
			},
		},
		{
			name:           "empty points yield empty lines",
			originalLevels: []int{0, 1},
			points:         nil,
			want:           []model.BulletLine{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreserveHierarchy(tt.originalLevels, tt.points)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PreserveHierarchy() = %v, want %v", got, tt.want)
			}
		})
	}
}
