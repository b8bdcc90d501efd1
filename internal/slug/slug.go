// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9_\s-]+`)
	separators = regexp.MustCompile(`[-\s]+`)
)

// Make lower-cases text, folds accented letters to ASCII, drops anything that is
// not a letter, digit, underscore, hyphen or space, and joins the words with
// single hyphens. "Léon: The Professional" becomes "leon-the-professional".
func Make(text string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(folder, text)
	if err != nil {
		ascii = text
	}

	s := disallowed.ReplaceAllString(strings.ToLower(ascii), "")
	s = separators.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-_")
}
