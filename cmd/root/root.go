// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/cert-archive/internal/config"
	"fjacquet/cert-archive/internal/container"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	ConfigFile string
	LogLevel   string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cert-archive",
		Short: "Catalog and organize course completion certificate PDFs.",
		Long: `cert-archive reads the text of LinkedIn Learning completion certificates,
extracts title, completion date, duration and skills, assigns a topical domain
and writes a JSON catalog of the whole archive. It can also sort the archive
into per-year folders.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	// SharedFlags holds the values of the persistent flags.
	SharedFlags = CommonFlags{}

	// ContainerOptions are applied when the container is built. Tests use it
	// to inject fakes.
	ContainerOptions []container.Option

	appContainer *container.Container
)

// Init registers the persistent flags. Call it once before Execute.
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.Input, "input", "i", "archived", "Archive root folder")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "js/learning-data.json", "Catalog index file")
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.cert-archive, .cert-archive or .)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

// setup loads the configuration, applies flag overrides and wires the
// container used by every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	config.LoadEnv(nil)

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlagOverrides(cmd, cfg)

	c, err := container.NewContainer(cfg, ContainerOptions...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	appContainer = c
	return nil
}

// ApplyFlagOverrides copies explicitly set flags over the configuration.
func ApplyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Archive.Root = SharedFlags.Input
	}
	if flags.Changed("output") {
		cfg.Index.Output = SharedFlags.Output
	}
	if flags.Changed("log-level") && SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
}

// GetContainer returns the container built for the running command.
func GetContainer() (*container.Container, error) {
	if appContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return appContainer, nil
}
