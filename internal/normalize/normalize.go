// Package normalize canonicalizes free text into matchable author keys.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// latinFolds transliterates lowercase Latin letters that carry no combining
// mark, so NFD decomposition leaves them untouched. Uppercase forms never
// reach it because folding runs after ToLower.
var latinFolds = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"ł", "l",
	"đ", "d",
	"ð", "d",
	"þ", "th",
	"ħ", "h",
	"ı", "i",
	"ŧ", "t",
	"ŋ", "ng",
)

// Key canonicalizes text into a lowercase, transliterated, alphanumeric-only
// key with no whitespace. It is deterministic, idempotent, and total: any
// input produces a key, and the empty string maps to the empty string.
//
// The same function runs at index-build time and at query time; the two
// sides must never diverge or matching silently breaks.
func Key(text string) string {
	lowered := latinFolds.Replace(strings.ToLower(text))

	// Decompose, strip combining marks, recompose. This maps accented
	// characters to their unaccented base ("é" -> "e"); stroked and
	// ligature letters were already folded above.
	// The transformer carries state, so build a fresh chain per call.
	deaccent := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(deaccent, lowered)
	if err != nil {
		ascii = lowered
	}

	var b strings.Builder
	b.Grow(len(ascii))
	for _, r := range ascii {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
