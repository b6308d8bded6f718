// Package index builds the JSON catalog of the certificate archive
package index

import (
	"context"

	"github.com/spf13/cobra"

	"fjacquet/cert-archive/cmd/root"
	"fjacquet/cert-archive/internal/catalog"
	"fjacquet/cert-archive/internal/container"
	"fjacquet/cert-archive/internal/export"
	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/models"
)

// Options are the index command flags.
type Options struct {
	CSVFile  string
	XLSXFile string
}

var opts Options

// Cmd represents the index command
var Cmd = &cobra.Command{
	Use:   "index",
	Short: "Extract certificate metadata and write the catalog index",
	Long: `Scan the archive for certificate PDFs, extract title, date, duration and
skills from each one, classify it into a domain and write the catalog index.

Example:
  cert-archive index -i archived -o js/learning-data.json --csv certs.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		_, err = Run(cmd.Context(), c, opts)
		return err
	},
}

func init() {
	Cmd.Flags().StringVar(&opts.CSVFile, "csv", "", "Also export the catalog as CSV to this file")
	Cmd.Flags().StringVar(&opts.XLSXFile, "xlsx", "", "Also export the catalog as XLSX to this file")
}

// Run builds, validates and writes the index, then the optional exports.
// The archive root and index path come from the container's configuration.
func Run(ctx context.Context, c *container.Container, o Options) (*models.CatalogIndex, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := c.GetConfig()
	logger := c.GetLogger()

	paths, err := c.GetScanner().Scan(cfg.Archive.Root)
	if err != nil {
		return nil, err
	}

	index, err := c.GetBuilder().Build(ctx, paths)
	if err != nil {
		return nil, err
	}

	if err := catalog.WriteIndex(index, cfg.Index.Output); err != nil {
		return nil, err
	}
	logger.Info("Catalog index written",
		logging.F(logging.FieldOutputFile, cfg.Index.Output),
		logging.F(logging.FieldTotal, index.Metadata.Total))

	for _, dh := range export.HoursByDomain(index.Certificates) {
		logger.Debug("Learning hours by domain",
			logging.F(logging.FieldDomain, dh.Domain),
			logging.F(logging.FieldCount, dh.Count),
			logging.F("hours", dh.Hours.StringFixed(2)))
	}
	logger.Info("Total learning hours",
		logging.F("hours", export.TotalHours(index.Certificates).StringFixed(2)))

	exporter := c.GetExporter()
	if o.CSVFile != "" {
		if err := exporter.WriteCSV(index.Certificates, o.CSVFile); err != nil {
			return nil, err
		}
	}
	if o.XLSXFile != "" {
		if err := exporter.WriteXLSX(index.Certificates, o.XLSXFile); err != nil {
			return nil, err
		}
	}
	return index, nil
}
