// Package sanitize turns free-form folder and file names into identifiers
// that are safe as asset-host path segments and public ids.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the Combining Diacritical Marks block used by Latin accents.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0300, Hi: 0x036f, Stride: 1},
	},
}

// Œ has no canonical decomposition, so without this it would be dropped
// along with other non-ASCII letters.
var ligatures = strings.NewReplacer("œ", "oe", "Œ", "Oe")

var (
	punctuation   = regexp.MustCompile(`['",/\\()]`)
	whitespace    = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	disallowed    = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// Name normalizes raw into a lowercase identifier made of [a-z0-9_-] with no
// leading, trailing or repeated underscores. It never fails; input that has
// nothing usable yields "".
func Name(raw string) string {
	s := ligatures.Replace(raw)
	s = stripAccents(s)
	s = punctuation.ReplaceAllString(s, "_")
	s = whitespace.ReplaceAllString(s, "_")
	s = disallowed.ReplaceAllString(s, "")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	return strings.ToLower(s)
}

// Path sanitizes each segment on its own and joins the results with "/".
// Segments that sanitize to "" are kept as empty elements.
func Path(segments []string) string {
	cleaned := make([]string, len(segments))
	for i, seg := range segments {
		cleaned[i] = Name(seg)
	}
	return strings.Join(cleaned, "/")
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacritics)))
	out, _, _ := transform.String(t, s)
	return out
}
