package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser title-cases the first letter of each word without lowering
// the rest, so acronyms ("IBM", "KPI") survive the transform unchanged.
var titleCaser = cases.Title(language.English, cases.NoLower)

// IsTitleCase reports whether the text is title-cased.
//
// The exact notion of "title case" is locale-sensitive and underspecified;
// the predicate used here is deliberately strict and documented: a string is
// title-cased when it contains at least one letter and is a fixed point of
// the English title caser with lowering disabled. In practice that means
// every word starts with an uppercase letter (articles and prepositions
// included) and interior capitalization such as acronyms is allowed.
// "Quarterly Update" and "IBM Results" qualify; "Revenue growth this year"
// and "a Tale of Metrics" do not.
func IsTitleCase(text string) bool {
	text = strings.TrimSpace(text)
	if !containsLetter(text) {
		return false
	}
	return titleCaser.String(text) == text
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
