package certparser

import (
	"regexp"
	"strings"
)

// Title extraction vocabulary.
var (
	titleExcluded = []string{"certificate", "id:", "head of", "provider", "top skills covered"}
	monthPrefixes = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
)

// skillStopPatterns end the skills section: once one matches, nothing after
// it is a skill. The name-shaped ones are case sensitive so ordinary skills
// such as "Data strategy" are not mistaken for signature lines.
var skillStopPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Certificate\s+ID`),
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+\s+Head`),
	regexp.MustCompile(`^[A-Z][a-z]+\s+Of\s+`),
	regexp.MustCompile(`^[A-Z][a-z]+\s+Strategy$`),
	regexp.MustCompile(`(?i)^\d+[a-z]+\s+\d+[a-z]+$`),
	regexp.MustCompile(`^\d{1,2}[-/]\d{1,2}[-/]\d{4}`),
	regexp.MustCompile(`(?i)^[a-z]+\s+\d+,\s+\d{4}`),
}

// skillSkipPhrases mark administrative lines. Matched as whole words.
var skillSkipPhrases = []string{
	"certificate id", "head of", "learning content", "content strategy",
	"shea hanson", "provider", "linkedin learning", "course completed",
	"completed by", "top skills covered", "institute inc", "institute",
	"activity #", "activity", "inc", "ltd", "llc", "corp", "corporation",
	"pdus", "pdu", "contact hours", "contacthours",
}

// skillMetadataPatterns flag accreditation boilerplate and identifiers.
var skillMetadataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^[a-z]+\s+Inc\.?$`),
	regexp.MustCompile(`(?i)Activity\s*#`),
	regexp.MustCompile(`^#\s*\d+`),
	regexp.MustCompile(`(?i)^\d+[a-z0-9]+$`),
	regexp.MustCompile(`(?i)^[a-z]+\d+[a-z0-9]+$`),
	regexp.MustCompile(`(?i)^\d+[a-z]+\d+`),
	regexp.MustCompile(`(?i)PDUs?/ContactHours?`),
	regexp.MustCompile(`(?i)Contact\s+Hours?`),
	regexp.MustCompile(`(?i)\bPDUs?\b`),
}

var (
	bareDurationRe = regexp.MustCompile(`^\d+[hm]\s*$|^\d+h\s+\d+m\s*$`)
	compactIDRe    = regexp.MustCompile(`^[a-z0-9]{8,}$`)
)

// idLookalikes are long single tokens that are real skills.
var idLookalikes = map[string]bool{
	"javascript": true,
	"typescript": true,
	"postgresql": true,
	"mongodb":    true,
}

// knownSkillPhrases are multi-word skills kept together when a line holds
// several skills run together. Earlier entries win ties on position.
var knownSkillPhrases = compilePhrases(
	"Artificial Intelligence for Business",
	"AI for Business Analysis",
	"AI for Business",
	"Artificial Intelligence for Business Analysis",
	"Media Literacy",
	"Media Psychology",
	"Software Testing",
	"Programming Foundations",
	"Software Quality Assurance",
	"Quality Assurance",
	"Microsoft Copilot",
	"Security Operations",
	"Security Incident Response",
	"Generative AI",
	"Artificial Intelligence",
	"Visual Studio Code",
	"Visual Studio",
	"Personal Development",
	"Critical Thinking",
	"Digital Transformation",
	"Cloud Computing",
	"Interpersonal Communication",
	"SQL Database",
	"Design AI",
	"Data Analysis",
	"Business Analysis",
)

func compilePhrases(phrases ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		words := strings.Fields(p)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		out = append(out, regexp.MustCompile(`(?i)`+strings.Join(words, `\s+`)))
	}
	return out
}

// Formatter vocabulary.
var (
	skillAcronyms = map[string]bool{
		"AI": true, "API": true, "SQL": true, "XML": true, "JSON": true,
		"HTML": true, "CSS": true, "JS": true, "REST": true, "SOAP": true,
		"HTTP": true, "HTTPS": true, "URL": true, "UI": true, "UX": true,
		"CI": true, "CD": true, "QA": true, "ID": true,
	}
	minorWords = map[string]bool{
		"for": true, "and": true, "or": true, "the": true, "of": true, "in": true,
		"on": true, "at": true, "to": true, "a": true, "an": true, "as": true,
		"by": true, "with": true,
	}
	// groupingFillers are dropped when left alone after phrase matching.
	groupingFillers = map[string]bool{
		"for": true, "and": true, "or": true, "the": true, "of": true,
		"in": true, "on": true, "at": true, "to": true,
	}
	// loneFillers are rejected as whole-line skills.
	loneFillers = map[string]bool{
		"the": true, "of": true, "and": true, "or": true, "for": true,
		"with": true, "from": true,
	}
)

const skillTrimChars = "•,.:;()[]"
