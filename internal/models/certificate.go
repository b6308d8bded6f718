// Package models defines the certificate records and the catalog index that
// the archive tooling produces.
package models

// DefaultProvider is stamped on every record unless configured otherwise.
const DefaultProvider = "LinkedIn Learning"

// MaxSkills caps the number of skills kept per certificate.
const MaxSkills = 5

// CertificateRecord is the catalog entry for one certificate PDF.
type CertificateRecord struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Domain   Domain   `json:"domain"`
	Year     string   `json:"year"`
	Date     *string  `json:"date,omitempty"`
	Duration *string  `json:"duration,omitempty"`
	Skills   []string `json:"skills"`
	Provider string   `json:"provider"`
}

// DateValue returns the ISO date or "" when absent.
func (r CertificateRecord) DateValue() string {
	if r.Date == nil {
		return ""
	}
	return *r.Date
}

// DurationValue returns the compact duration or "" when absent.
func (r CertificateRecord) DurationValue() string {
	if r.Duration == nil {
		return ""
	}
	return *r.Duration
}

// StringPtr returns a pointer to s, or nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
