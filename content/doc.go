// Package content loads structured replacement content from JSON or
// Markdown into a [model.ContentRecord].
//
// The JSON form mirrors the record directly:
//
//	{
//	  "date": "March 2025",
//	  "metrics": [{"label": "Revenue", "value": "$2.6M"}],
//	  "key_points": ["Point A", {"text": "Point B", "level": 1}]
//	}
//
// Every field is optional, but a present metric entry must carry both
// label and value; key points may be plain strings (level 0) or objects
// with an explicit level.
//
// The Markdown form is a plain document: the first date-like line becomes
// the date, list items of the form "Label: value" become metrics, and the
// remaining list items become key points with their level taken from the
// list nesting depth. This nesting is how Markdown callers supply
// indentation hints for bullet-hierarchy preservation.
package content
