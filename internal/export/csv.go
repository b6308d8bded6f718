package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"

	"fjacquet/cert-archive/internal/fileutils"
	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/models"
)

// SkillSeparator joins the skills of a record into one cell.
const SkillSeparator = "; "

// Row is the flat spreadsheet shape of a certificate record.
type Row struct {
	ID       int    `csv:"id"`
	Title    string `csv:"title"`
	Domain   string `csv:"domain"`
	Year     string `csv:"year"`
	Date     string `csv:"date"`
	Duration string `csv:"duration"`
	Hours    string `csv:"hours"`
	Skills   string `csv:"skills"`
	Provider string `csv:"provider"`
	Path     string `csv:"path"`
}

// Rows flattens records in the given order.
func Rows(records []models.CertificateRecord) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			ID:       r.ID,
			Title:    r.Title,
			Domain:   r.Domain.String(),
			Year:     r.Year,
			Date:     r.DateValue(),
			Duration: r.DurationValue(),
			Hours:    Hours(r.DurationValue()).StringFixed(2),
			Skills:   strings.Join(r.Skills, SkillSeparator),
			Provider: r.Provider,
			Path:     r.Path,
		}
	}
	return rows
}

// Exporter writes the catalog records to spreadsheet files.
type Exporter struct {
	logger    logging.Logger
	delimiter rune
}

// NewExporter creates an Exporter. A zero delimiter means a comma.
func NewExporter(logger logging.Logger, delimiter rune) *Exporter {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Exporter{logger: logger, delimiter: delimiter}
}

// WriteCSV writes records to csvFile with a header row.
func (e *Exporter) WriteCSV(records []models.CertificateRecord, csvFile string) error {
	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = e.delimiter

	if err := gocsv.MarshalCSV(Rows(records), gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	e.logger.Info("Wrote certificates to CSV file",
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(records)),
		logging.F("delimiter", string(e.delimiter)))
	return nil
}
