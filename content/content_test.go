package content

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tsawler/slidefill/model"
)

func TestDecodeJSON(t *testing.T) {
	data := []byte(`{
		"date": "March 2025",
		"metrics": [
			{"label": "Revenue", "value": "$2.6M"},
			{"label": "Growth", "value": "45%"}
		],
		"key_points": [
			"Point A",
			{"text": "Point B", "level": 1}
		]
	}`)

	record, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON() error: %v", err)
	}

	want := model.ContentRecord{
		Date: "March 2025",
		Metrics: []model.Metric{
			{Label: "Revenue", Value: "$2.6M"},
			{Label: "Growth", Value: "45%"},
		},
		KeyPoints: []model.KeyPoint{
			{Text: "Point A", Level: 0},
			{Text: "Point B", Level: 1},
		},
	}
	if !reflect.DeepEqual(record, want) {
		t.Errorf("DecodeJSON() = %+v, want %+v", record, want)
	}
}

func TestDecodeJSONEmpty(t *testing.T) {
	record, err := DecodeJSON([]byte(`{}`))
	if err != nil {
		t.Fatalf("DecodeJSON() error: %v", err)
	}
	if !record.IsEmpty() {
		t.Errorf("DecodeJSON({}) = %+v, want empty record", record)
	}
}

func TestDecodeJSONMissingFields(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantRecord string
		wantField  string
	}{
		{
			name:       "metric without value",
			data:       `{"metrics": [{"label": "Revenue"}]}`,
			wantRecord: "metrics[0]",
			wantField:  "value",
		},
		{
			name:       "metric without label",
			data:       `{"metrics": [{"label": "Revenue", "value": "$1M"}, {"value": "$2M"}]}`,
			wantRecord: "metrics[1]",
			wantField:  "label",
		},
		{
			name:       "key point object without text",
			data:       `{"key_points": [{"level": 1}]}`,
			wantRecord: "key_points[0]",
			wantField:  "text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.data))
			var fieldErr *model.FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("DecodeJSON() error = %v, want FieldError", err)
			}
			if fieldErr.Record != tt.wantRecord || fieldErr.Field != tt.wantField {
				t.Errorf("FieldError = {%q, %q}, want {%q, %q}",
					fieldErr.Record, fieldErr.Field, tt.wantRecord, tt.wantField)
			}
		})
	}
}

func TestDecodeJSONMalformed(t *testing.T) {
	if _, err := DecodeJSON([]byte(`{not json`)); err == nil {
		t.Error("DecodeJSON() on malformed input returned nil error")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	record := model.ContentRecord{
		Date:    "Q3 2025",
		Metrics: []model.Metric{{Label: "Margin", Value: "12%"}},
		KeyPoints: []model.KeyPoint{
			{Text: "Point A", Level: 0},
			{Text: "Point B", Level: 1},
		},
	}
	data, err := EncodeJSON(record)
	if err != nil {
		t.Fatalf("EncodeJSON() error: %v", err)
	}
	got, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON() error: %v", err)
	}
	if !reflect.DeepEqual(got, record) {
		t.Errorf("round trip = %+v, want %+v", got, record)
	}
}

func TestDecodeMarkdown(t *testing.T) {
	doc := []byte(`# Quarterly Update

March 2025

- Revenue: $2.6M
- Growth: 45%
- Expanded into two new regions
  - EMEA launch complete
  - APAC pilot started
- Hiring on track
`)

	record, err := DecodeMarkdown(doc)
	if err != nil {
		t.Fatalf("DecodeMarkdown() error: %v", err)
	}

	if record.Date != "March 2025" {
		t.Errorf("Date = %q, want %q", record.Date, "March 2025")
	}

	wantMetrics := []model.Metric{
		{Label: "Revenue", Value: "$2.6M"},
		{Label: "Growth", Value: "45%"},
	}
	if !reflect.DeepEqual(record.Metrics, wantMetrics) {
		t.Errorf("Metrics = %+v, want %+v", record.Metrics, wantMetrics)
	}

	wantPoints := []model.KeyPoint{
		{Text: "Expanded into two new regions", Level: 0},
		{Text: "EMEA launch complete", Level: 1},
		{Text: "APAC pilot started", Level: 1},
		{Text: "Hiring on track", Level: 0},
	}
	if !reflect.DeepEqual(record.KeyPoints, wantPoints) {
		t.Errorf("KeyPoints = %+v, want %+v", record.KeyPoints, wantPoints)
	}
}

func TestDecodeMarkdownDateFromHeading(t *testing.T) {
	doc := []byte("# Q3 2025 Review\n\nsome prose\n")
	record, err := DecodeMarkdown(doc)
	if err != nil {
		t.Fatalf("DecodeMarkdown() error: %v", err)
	}
	if record.Date != "Q3 2025 Review" {
		t.Errorf("Date = %q, want %q", record.Date, "Q3 2025 Review")
	}
}

func TestDecodeMarkdownNestedMetricStaysKeyPoint(t *testing.T) {
	doc := []byte("- Region results\n  - EMEA: strong\n")
	record, err := DecodeMarkdown(doc)
	if err != nil {
		t.Fatalf("DecodeMarkdown() error: %v", err)
	}
	if len(record.Metrics) != 0 {
		t.Errorf("Metrics = %+v, want none", record.Metrics)
	}
	want := []model.KeyPoint{
		{Text: "Region results", Level: 0},
		{Text: "EMEA: strong", Level: 1},
	}
	if !reflect.DeepEqual(record.KeyPoints, want) {
		t.Errorf("KeyPoints = %+v, want %+v", record.KeyPoints, want)
	}
}

func TestDecodeMarkdownEmpty(t *testing.T) {
	record, err := DecodeMarkdown(nil)
	if err != nil {
		t.Fatalf("DecodeMarkdown() error: %v", err)
	}
	if !record.IsEmpty() {
		t.Errorf("DecodeMarkdown(nil) = %+v, want empty record", record)
	}
}
