package content

import (
	"encoding/json"
	"fmt"

	"github.com/tsawler/slidefill/model"
)

type recordJSON struct {
	Date      string            `json:"date,omitempty"`
	Metrics   []metricJSON      `json:"metrics,omitempty"`
	KeyPoints []json.RawMessage `json:"key_points,omitempty"`
}

type metricJSON struct {
	Label *string `json:"label"`
	Value *string `json:"value"`
}

type keyPointJSON struct {
	Text  *string `json:"text"`
	Level int     `json:"level,omitempty"`
}

// DecodeJSON parses a JSON content record. All fields are optional, but a
// present metric must carry both label and value, and a key-point object
// must carry text; malformed entries are fatal, not defaulted.
func DecodeJSON(data []byte) (model.ContentRecord, error) {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.ContentRecord{}, fmt.Errorf("content record: %w", err)
	}

	record := model.ContentRecord{Date: raw.Date}

	for i, m := range raw.Metrics {
		if m.Label == nil {
			return model.ContentRecord{}, &model.FieldError{
				Record: fmt.Sprintf("metrics[%d]", i), Field: "label",
			}
		}
		if m.Value == nil {
			return model.ContentRecord{}, &model.FieldError{
				Record: fmt.Sprintf("metrics[%d]", i), Field: "value",
			}
		}
		record.Metrics = append(record.Metrics, model.Metric{Label: *m.Label, Value: *m.Value})
	}

	for i, raw := range raw.KeyPoints {
		point, err := decodeKeyPoint(i, raw)
		if err != nil {
			return model.ContentRecord{}, err
		}
		record.KeyPoints = append(record.KeyPoints, point)
	}
	return record, nil
}

// decodeKeyPoint accepts either a plain string (level 0) or an object with
// required text and optional level.
func decodeKeyPoint(index int, raw json.RawMessage) (model.KeyPoint, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return model.KeyPoint{Text: s}, nil
	}

	var obj keyPointJSON
	if err := json.Unmarshal(raw, &obj); err != nil {
		return model.KeyPoint{}, fmt.Errorf("key_points[%d]: %w", index, err)
	}
	if obj.Text == nil {
		return model.KeyPoint{}, &model.FieldError{
			Record: fmt.Sprintf("key_points[%d]", index), Field: "text",
		}
	}
	level := obj.Level
	if level < 0 {
		level = 0
	}
	return model.KeyPoint{Text: *obj.Text, Level: level}, nil
}

// EncodeJSON renders the record in the JSON interchange form, with key
// points always in object form.
func EncodeJSON(record model.ContentRecord) ([]byte, error) {
	out := recordOut{Date: record.Date}

	for _, m := range record.Metrics {
		out.Metrics = append(out.Metrics, metricOut{Label: m.Label, Value: m.Value})
	}
	for _, p := range record.KeyPoints {
		out.KeyPoints = append(out.KeyPoints, keyPointOut{Text: p.Text, Level: p.Level})
	}
	return json.MarshalIndent(out, "", "  ")
}

type recordOut struct {
	Date      string        `json:"date,omitempty"`
	Metrics   []metricOut   `json:"metrics,omitempty"`
	KeyPoints []keyPointOut `json:"key_points,omitempty"`
}

type metricOut struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type keyPointOut struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}
