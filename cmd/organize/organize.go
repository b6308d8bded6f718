// Package organize sorts the certificate archive into per-year folders
package organize

import (
	"context"

	"github.com/spf13/cobra"

	"fjacquet/cert-archive/cmd/root"
	"fjacquet/cert-archive/internal/container"
	"fjacquet/cert-archive/internal/organizer"
)

var dryRun bool

// Cmd represents the organize command
var Cmd = &cobra.Command{
	Use:   "organize",
	Short: "Move certificates into year folders and remove course folders",
	Long: `Move every certificate PDF that is not yet in a four-digit year folder
into <root>/<year>/, using the completion date, then the folder name, then the
default year. Duplicate names get a _N suffix. Non-PDF files and emptied
course folders are removed afterwards.

Example:
  cert-archive organize -i archived --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		_, err = Run(cmd.Context(), c, dryRun)
		return err
	},
}

func init() {
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only report what would be moved and removed")
}

// Run organizes the configured archive root.
func Run(ctx context.Context, c *container.Container, dryRun bool) (*organizer.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.GetOrganizer().Organize(ctx, c.GetConfig().Archive.Root, dryRun)
}
