package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fjacquet/cert-archive/internal/fileutils"
	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/models"
)

// Sheet names used in the workbook.
const (
	CertificatesSheet = "Certificates"
	DomainsSheet      = "Domains"
)

var certificateHeaders = []string{
	"ID", "Title", "Domain", "Year", "Date", "Duration", "Hours", "Skills", "Provider", "Path",
}

// WriteXLSX writes a workbook with one row per certificate and a per-domain
// hours summary on a second sheet.
func (e *Exporter) WriteXLSX(records []models.CertificateRecord, xlsxFile string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", CertificatesSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	writeHeaders(f, CertificatesSheet, certificateHeaders)

	for i, r := range Rows(records) {
		row := i + 2
		hours, _ := Hours(r.Duration).Float64()
		values := []any{r.ID, r.Title, r.Domain, r.Year, r.Date, r.Duration, hours, r.Skills, r.Provider, r.Path}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(CertificatesSheet, cell, v)
		}
	}

	_ = f.SetColWidth(CertificatesSheet, "A", "A", 6)
	_ = f.SetColWidth(CertificatesSheet, "B", "B", 48)
	_ = f.SetColWidth(CertificatesSheet, "C", "G", 14)
	_ = f.SetColWidth(CertificatesSheet, "H", "H", 48)
	_ = f.SetColWidth(CertificatesSheet, "I", "I", 20)
	_ = f.SetColWidth(CertificatesSheet, "J", "J", 60)

	if _, err := f.NewSheet(DomainsSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	writeHeaders(f, DomainsSheet, []string{"Domain", "Certificates", "Hours"})
	for i, dh := range HoursByDomain(records) {
		row := i + 2
		hours, _ := dh.Hours.Float64()
		for col, v := range []any{dh.Domain.String(), dh.Count, hours} {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(DomainsSheet, cell, v)
		}
	}
	_ = f.SetColWidth(DomainsSheet, "A", "C", 16)

	activeIndex, _ := f.GetSheetIndex(CertificatesSheet)
	f.SetActiveSheet(activeIndex)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	if err := fileutils.WriteFile(xlsxFile, buf.Bytes(), 0644); err != nil {
		return err
	}

	e.logger.Info("Wrote certificates to XLSX file",
		logging.F(logging.FieldOutputFile, xlsxFile),
		logging.F(logging.FieldCount, len(records)))
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}
