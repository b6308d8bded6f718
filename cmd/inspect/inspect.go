// Package inspect shows what the extractors find in a single certificate
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/cert-archive/cmd/root"
	"fjacquet/cert-archive/internal/certparser"
	"fjacquet/cert-archive/internal/container"
	"fjacquet/cert-archive/internal/models"
)

var showText bool

// Cmd represents the inspect command
var Cmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Show the extracted fields of one certificate",
	Long: `Extract the text of one certificate PDF and print how each field was
resolved, followed by the catalog record it would produce.

Example:
  cert-archive inspect archived/2025/CertificateOfCompletion_Learning_Go.pdf --text`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c, args[0], showText, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().BoolVar(&showText, "text", false, "Also print the extracted text")
}

// Report is what inspect prints for one file.
type Report struct {
	Text     string                   `json:"text,omitempty"`
	Title    string                   `json:"title_outcome"`
	Date     string                   `json:"date_outcome"`
	Duration string                   `json:"duration_outcome"`
	Record   models.CertificateRecord `json:"record"`
}

// Run inspects path and writes the report as indented JSON to w.
func Run(ctx context.Context, c *container.Container, path string, withText bool, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	text, extractErr := c.GetExtractor().ExtractText(ctx, path)
	if err := ctx.Err(); err != nil {
		return err
	}
	record, res := c.GetBuilder().RecordFromText(path, 1, text, extractErr)

	report := Report{
		Title:    outcome(res.Title),
		Date:     outcome(res.Date),
		Duration: outcome(res.Duration),
		Record:   record,
	}
	if withText {
		report.Text = text
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func outcome[T any](f certparser.Field[T]) string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Outcome, f.Err)
	}
	return f.Outcome.String()
}
