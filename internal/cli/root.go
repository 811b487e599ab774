package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chazu/slidecase/internal/config"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. Values
// are normally injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the slidecase CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Config and logger are attached to
// the command context before any subcommand runs.
func NewRootCommand() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	root := &cobra.Command{
		Use:          "slidecase",
		Short:        "Slidecase generates printable microscope slide storage",
		Long:         `Slidecase turns a small set of design parameters into validated, printable storage boxes, trays, staining racks and drawer cabinets for microscope slides.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if verbose {
				cfg.Verbose = true
			}
			level := charmlog.InfoLevel
			if cfg.Verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("slidecase %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .slidecase.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().String("out", "", "output directory")
	root.PersistentFlags().String("format", "", "mesh format: stl or json")
	root.PersistentFlags().Bool("no-cache", false, "always re-mesh")
	root.PersistentFlags().String("kernel", "", "geometry kernel: sdfx or manifold")
	_ = viper.BindPFlag("output_dir", root.PersistentFlags().Lookup("out"))
	_ = viper.BindPFlag("format", root.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("no_cache", root.PersistentFlags().Lookup("no-cache"))
	_ = viper.BindPFlag("kernel", root.PersistentFlags().Lookup("kernel"))

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newEstimateCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newStandardsCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newCacheCmd())

	return root
}
