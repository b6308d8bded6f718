package certparser

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"fjacquet/cert-archive/internal/models"
	"fjacquet/cert-archive/internal/textutils"
)

var (
	skillsHeaderRe     = regexp.MustCompile(`(?i)top\s+skills\s+covered`)
	sectionCertIDRe    = regexp.MustCompile(`(?i)^Certificate\s+ID`)
	sectionSignatureRe = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+\s+Head`)
	sectionCapsRunRe   = regexp.MustCompile(`^[A-Z][A-Z ]{15,}`)
	leadingBulletsRe   = regexp.MustCompile(`^[•\-\*\.\s]+`)
	inlineSeparatorsRe = regexp.MustCompile(`[•,\-;]`)
)

const (
	maxWholeLineWords   = 4
	maxWholeLineSkillLn = 80
)

// ExtractSkills returns up to five distinct skills listed under the
// "Top skills covered" header. The list is empty when there is no header.
func ExtractSkills(text string) []string {
	loc := skillsHeaderRe.FindStringIndex(text)
	if loc == nil {
		return []string{}
	}
	rest := text[loc[1]:]

	leadLen := strings.IndexFunc(rest, func(r rune) bool {
		return r != ':' && !unicode.IsSpace(r)
	})
	if leadLen < 0 {
		leadLen = len(rest)
	}
	lead := rest[:leadLen]

	switch {
	case strings.Contains(lead, "\n"):
		body := rest[strings.LastIndex(lead, "\n")+1:]
		return dedupeSkills(skillsFromSection(sectionLines(body)))
	case leadLen > 0:
		return dedupeSkills(skillsFromInline(firstLine(rest[leadLen:])))
	default:
		return []string{}
	}
}

// sectionLines returns the lines of the skills block. The first line always
// belongs to it; a blank line, the certificate ID, a signature or a long
// capitalized run ends it.
func sectionLines(body string) []string {
	raw := strings.Split(body, "\n")
	if strings.TrimSpace(raw[0]) == "" {
		return nil
	}

	lines := []string{raw[0]}
	for _, line := range raw[1:] {
		if strings.TrimSpace(line) == "" ||
			sectionCertIDRe.MatchString(line) ||
			sectionSignatureRe.MatchString(line) ||
			sectionCapsRunRe.MatchString(line) {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func skillsFromInline(line string) []string {
	var skills []string
	for _, piece := range inlineSeparatorsRe.Split(line, -1) {
		piece = strings.TrimSpace(piece)
		if utf8.RuneCountInString(piece) < 2 {
			continue
		}
		if s := FormatSkill(piece); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func skillsFromSection(lines []string) []string {
	var skills []string
	for _, line := range lines {
		found, stop := skillsFromLine(line)
		if stop {
			break
		}
		skills = append(skills, found...)
	}
	return skills
}

// skillsFromLine turns one line of the section into skills. stop is true
// when the line marks the end of the section.
func skillsFromLine(line string) (skills []string, stop bool) {
	clean := leadingBulletsRe.ReplaceAllString(strings.TrimSpace(line), "")
	clean = trimSkill(clean)
	if utf8.RuneCountInString(clean) < 2 {
		return nil, false
	}

	for _, re := range skillStopPatterns {
		if re.MatchString(clean) {
			return nil, true
		}
	}
	if isAdministrativeLine(clean) {
		return nil, false
	}

	spans := matchKnownPhrases(clean)
	if len(spans) > 0 {
		for _, sp := range spans {
			skills = appendFormatted(skills, clean[sp.start:sp.end])
		}
		return append(skills, groupLeftovers(leftoverWords(clean, spans))...), false
	}

	words := strings.Fields(clean)
	if len(words) > maxWholeLineWords {
		return pairWords(words), false
	}

	skill := FormatSkill(clean)
	n := utf8.RuneCountInString(skill)
	if n < 2 || n > maxWholeLineSkillLn || !textutils.HasLetter(skill) {
		return nil, false
	}
	if fields := strings.Fields(strings.ToLower(skill)); len(fields) == 1 && loneFillers[fields[0]] {
		return nil, false
	}
	return []string{skill}, false
}

// isAdministrativeLine reports boilerplate that is skipped without ending
// the section: provider names, accreditation IDs, bare durations.
func isAdministrativeLine(clean string) bool {
	for _, phrase := range skillSkipPhrases {
		if textutils.ContainsWord(clean, phrase) {
			return true
		}
	}
	for _, re := range skillMetadataPatterns {
		if re.MatchString(clean) {
			return true
		}
	}

	lower := strings.ToLower(clean)
	if bareDurationRe.MatchString(lower) || !textutils.HasLetter(clean) {
		return true
	}
	return compactIDRe.MatchString(lower) && textutils.HasDigit(clean) && !idLookalikes[lower]
}

type phraseSpan struct {
	start, end int
}

// matchKnownPhrases finds dictionary phrases in line, keeping the earliest
// and then longest match wherever two overlap. Spans come back in positional
// order.
func matchKnownPhrases(line string) []phraseSpan {
	var candidates []phraseSpan
	for _, re := range knownSkillPhrases {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			candidates = append(candidates, phraseSpan{start: loc[0], end: loc[1]})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].end-candidates[i].start > candidates[j].end-candidates[j].start
	})

	var kept []phraseSpan
	for _, c := range candidates {
		overlaps := false
		for _, k := range kept {
			if c.start < k.end && k.start < c.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, c)
		}
	}
	return kept
}

// leftoverWords blanks the matched spans out of line and returns the
// remaining words longer than one character.
func leftoverWords(line string, spans []phraseSpan) []string {
	b := []byte(line)
	for _, sp := range spans {
		for i := sp.start; i < sp.end; i++ {
			b[i] = ' '
		}
	}
	var words []string
	for _, w := range strings.Fields(string(b)) {
		if utf8.RuneCountInString(w) > 1 {
			words = append(words, w)
		}
	}
	return words
}

// groupLeftovers groups words around matched phrases into "X for Y"
// triples, pairs, or single words that aren't fillers.
func groupLeftovers(words []string) []string {
	var skills []string
	for i := 0; i < len(words); {
		if i+2 < len(words) && strings.EqualFold(words[i+1], "for") {
			skills = appendFormatted(skills, strings.Join(words[i:i+3], " "))
			i += 3
			continue
		}
		if i+1 < len(words) && !strings.EqualFold(words[i], "for") {
			skills = appendFormatted(skills, strings.Join(words[i:i+2], " "))
			i += 2
			continue
		}
		if !groupingFillers[strings.ToLower(words[i])] {
			skills = appendFormatted(skills, words[i])
		}
		i++
	}
	return skills
}

// pairWords splits a long run-together line into two-word skills.
func pairWords(words []string) []string {
	var skills []string
	for i := 0; i < len(words); {
		if i+1 < len(words) {
			if s := FormatSkill(words[i] + " " + words[i+1]); s != "" && len(strings.Fields(s)) <= 3 {
				skills = append(skills, s)
				i += 2
				continue
			}
		}
		skills = appendFormatted(skills, words[i])
		i++
	}
	return skills
}

func appendFormatted(skills []string, raw string) []string {
	if s := FormatSkill(strings.TrimSpace(raw)); s != "" {
		return append(skills, s)
	}
	return skills
}

// dedupeSkills drops case-insensitive duplicates and entries that contain,
// or are contained in, a skill already kept. At most five survive.
func dedupeSkills(skills []string) []string {
	out := make([]string, 0, models.MaxSkills)
	var seen []string

	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		lower := strings.ToLower(skill)
		if utf8.RuneCountInString(lower) < 2 {
			continue
		}

		overlap := false
		for _, s := range seen {
			if strings.Contains(lower, s) || strings.Contains(s, lower) {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}

		seen = append(seen, lower)
		out = append(out, skill)
		if len(out) == models.MaxSkills {
			break
		}
	}
	return out
}
