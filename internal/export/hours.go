// Package export renders catalog records as CSV and XLSX spreadsheets.
package export

import (
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/cert-archive/internal/models"
)

var (
	durationHoursRe   = regexp.MustCompile(`(\d+)h`)
	durationMinutesRe = regexp.MustCompile(`(\d+)m`)
	minutesPerHour    = decimal.NewFromInt(60)
)

// Hours converts a compact duration ("1h 27m", "2h", "45m") into hours
// rounded to two decimal places. Unknown input is zero.
func Hours(duration string) decimal.Decimal {
	total := decimal.Zero
	if m := durationHoursRe.FindStringSubmatch(duration); m != nil {
		total = total.Add(decimal.RequireFromString(m[1]))
	}
	if m := durationMinutesRe.FindStringSubmatch(duration); m != nil {
		total = total.Add(decimal.RequireFromString(m[1]).Div(minutesPerHour))
	}
	return total.Round(2)
}

// DomainHours is the learning time accumulated in one domain.
type DomainHours struct {
	Domain models.Domain
	Count  int
	Hours  decimal.Decimal
}

// HoursByDomain sums course hours per domain, largest total first. Ties
// follow the vocabulary order.
func HoursByDomain(records []models.CertificateRecord) []DomainHours {
	byDomain := make(map[models.Domain]*DomainHours)
	for _, r := range records {
		dh, ok := byDomain[r.Domain]
		if !ok {
			dh = &DomainHours{Domain: r.Domain, Hours: decimal.Zero}
			byDomain[r.Domain] = dh
		}
		dh.Count++
		dh.Hours = dh.Hours.Add(Hours(r.DurationValue()))
	}

	out := make([]DomainHours, 0, len(byDomain))
	for _, d := range models.AllDomains {
		if dh, ok := byDomain[d]; ok {
			out = append(out, *dh)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Hours.GreaterThan(out[j].Hours)
	})
	return out
}

// TotalHours sums the course hours of every record.
func TotalHours(records []models.CertificateRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(Hours(r.DurationValue()))
	}
	return total
}
