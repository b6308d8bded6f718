package models

// CatalogMetadata summarizes a CatalogIndex.
type CatalogMetadata struct {
	Total       int      `json:"total"`
	Domains     int      `json:"domains"`
	Years       []string `json:"years"`
	LastUpdated string   `json:"last_updated"`
}

// CatalogIndex is the document written to the JSON index file. Certificates
// are ordered by (year, title) descending.
type CatalogIndex struct {
	Metadata     CatalogMetadata     `json:"metadata"`
	Certificates []CertificateRecord `json:"certificates"`
}
