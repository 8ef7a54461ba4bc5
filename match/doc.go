// Package match maps structured content onto a classified slide deck.
//
// The matcher walks each slide, classifies its shapes, and emits one
// [model.UpdateInstruction] per shape that has both a semantic purpose and
// a corresponding content field:
//
//   - date fields receive the record's date, each of them
//   - metric values receive metric entries, matched first through
//     label-value pairs by label text, then positionally in slide order
//   - bullet lists receive the record's key points with their indentation
//     remapped to the shape's existing level structure
//
// Shapes without a matching content field are left untouched, and an empty
// content record yields an empty instruction list. Every emitted
// instruction passes through the text fit engine; overflow, length-ratio,
// and summarizer issues come back as [model.Warning] values alongside the
// instructions.
//
// Instructions preserve the slide order of the deck and, within a slide,
// the shape order, so repeated runs over the same input are
// byte-for-byte identical.
package match
