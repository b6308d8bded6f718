package certparser

import (
	"fmt"
	"regexp"
)

type durationPattern struct {
	re     *regexp.Regexp
	format func(m []string) string
}

func hoursMinutes(m []string) string { return fmt.Sprintf("%sh %sm", m[1], m[2]) }
func hoursOnly(m []string) string    { return m[1] + "h" }
func minutesOnly(m []string) string  { return m[1] + "m" }

var durationPatterns = []durationPattern{
	{regexp.MustCompile(`(?i)(\d+)\s+hours?\s+(\d+)\s+minutes?`), hoursMinutes},
	{regexp.MustCompile(`(?i)(\d+)\s+hours?`), hoursOnly},
	{regexp.MustCompile(`(?i)(\d+)\s+minutes?`), minutesOnly},
	{regexp.MustCompile(`(?i)(\d+)h\s*(\d+)m`), hoursMinutes},
	{regexp.MustCompile(`(?i)(\d+)h`), hoursOnly},
	{regexp.MustCompile(`(?i)(\d+)m`), minutesOnly},
}

// ExtractDuration returns the course length in compact form: "1h 27m",
// "2h" or "45m".
func ExtractDuration(text string) Field[string] {
	for _, p := range durationPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return found(p.format(m))
		}
	}
	return absent[string]()
}
