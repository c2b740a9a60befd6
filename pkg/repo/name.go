package repo

import (
	"strings"
	"unicode"
)

var textToSymbol = map[string]string{
	"plus":  "+",
	"sharp": "#",
	"star":  `\*`,
}

// ReadableName converts a hyphenated language identifier into its display name.
//
//	google-apps-script -> Google Apps Script
//	c-sharp            -> C#
//	c-plus-plus        -> C++
//
// Symbol tokens are concatenated instead of space-joined.
func ReadableName(name string) string {
	tokens := strings.Split(name, "-")
	symbolic := false
	for i, tok := range tokens {
		if sym, ok := textToSymbol[tok]; ok {
			tokens[i] = sym
			symbolic = true
		}
	}
	if symbolic {
		return titleCase(strings.Join(tokens, ""))
	}
	return titleCase(strings.Join(tokens, " "))
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest ("x86 64bit" -> "X86 64Bit").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			r = unicode.ToUpper(r)
		case isLetter:
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
		prevLetter = isLetter
	}
	return b.String()
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(strings.ToLower(s))
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
