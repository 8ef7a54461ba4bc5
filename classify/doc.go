// Package classify provides heuristic semantic classification for slide-deck
// templates: slide types, shape purposes, and label-value pair detection.
//
// Classification is a best-effort heuristic producing a single discrete label
// per slide or shape, with no confidence score. All classifiers are pure
// functions over the model types: deterministic given identical input, with
// no side effects and no shared state, so slides can be classified
// independently and in any order.
//
// # Slide Types
//
// [Classifier.ClassifySlide] assigns one [SlideType] per slide from aggregate
// shape evidence, evaluating rules in a fixed precedence order (first match
// wins): shape count, metric patterns, bullet volume, then the general
// fallback.
//
// # Shape Purposes
//
// [Classifier.ClassifyShape] combines two independent signal sources:
//
//   - the position signal, from the shape's offsets relative to the slide
//     dimensions (title zone, footer zone, sidebar, main column)
//   - the content signal, from the shape's text (dates, metric values,
//     headers, bullet lists, labels)
//
// The content signal takes precedence whenever both signals produce a value
// other than their generic fallbacks. Ties break by this fixed policy, never
// by iteration order.
//
// # Label-Value Pairs
//
// [Classifier.DetectPairs] finds geometrically adjacent label/value shape
// pairs: a label candidate ends with ":", and its value is the nearest shape
// to its right within the configured gap and vertical-offset thresholds.
// Pairing is injective on values; assignment is greedy by ascending gap, so
// a value claimed by a closer label is never reassigned to a farther one.
//
// # Configuration
//
// Every threshold is a named field of [Config]; the thresholds are the
// tunable contract of the classifier, kept auditable and testable in
// isolation:
//
//	config := classify.DefaultConfig()
//	config.TitleSlideMaxShapes = 4
//	c := classify.NewWithConfig(config)
package classify
