// Package model provides the intermediate representation (IR) for slide-deck
// template analysis and content filling.
//
// This package defines the user-facing value types that flow between the
// pipeline stages. The structure extractor produces these types, the
// classifiers and the content matcher consume them, and the update applier
// consumes the instructions they produce.
//
// # Deck Structure
//
// A [Deck] is an ordered sequence of [Slide] values, each holding its
// dimensions and an ordered sequence of [Shape] values:
//
//	deck, err := pptx.Open("template.pptx").Deck()
//	for _, slide := range deck.Slides {
//	    for _, shape := range slide.Shapes {
//	        fmt.Println(shape.Text)
//	    }
//	}
//
// All derived entities (slide types, shape purposes, label-value pairs,
// update instructions) are ephemeral and recomputed per invocation; the deck
// itself and the interchange JSON records are the only persisted forms.
//
// # Interchange Records
//
// Two JSON records cross the process boundary:
//
//   - the structure record ([Deck.MarshalStructure] / [DecodeStructure]),
//     produced by the extractor
//   - the update record ([UpdateBatch.MarshalUpdates] / [DecodeUpdates]),
//     consumed by the applier
//
// Decoding is strict: a record missing a required field fails with a
// [FieldError] naming the record and field rather than substituting a
// default.
//
// # Geometry
//
// [BBox] supports the position arithmetic used by the classifiers. Unlike
// PDF coordinates, slide coordinates are top-left origin with Y increasing
// downward, matching the OOXML drawing model.
package model
