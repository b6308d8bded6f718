package certparser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatSkill title-cases a skill while keeping acronyms and mixed-case
// product names ("JavaScript", "AWS") as written. Minor words such as "for"
// stay lower case unless they open the phrase.
func FormatSkill(skill string) string {
	skill = trimSkill(skill)
	if upper := strings.ToUpper(skill); skillAcronyms[upper] {
		return upper
	}

	words := strings.Fields(skill)
	out := make([]string, 0, len(words))
	for i, w := range words {
		clean := trimSkill(w)
		if clean == "" {
			continue
		}
		lower := strings.ToLower(clean)
		n := utf8.RuneCountInString(clean)

		switch {
		case isAllCaps(clean) && n >= 2 && n <= 5:
			out = append(out, clean)
		case isMixedCase(clean):
			out = append(out, clean)
		case i > 0 && minorWords[lower]:
			out = append(out, lower)
		default:
			out = append(out, capitalize(clean))
		}
	}
	return strings.Join(out, " ")
}

func trimSkill(s string) string {
	return strings.TrimSpace(strings.Trim(s, skillTrimChars))
}

// isAllCaps reports whether s has at least one cased letter and no lower
// case ones.
func isAllCaps(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// isMixedCase reports an upper-case initial followed by some lower case.
func isMixedCase(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return false
	}
	return strings.IndexFunc(s[size:], unicode.IsLower) >= 0
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
