package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/deploymenttheory/go-wetfmt/internal/config"
	"github.com/deploymenttheory/go-wetfmt/pkg/app"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
	configPath   string

	// loaded in PersistentPreRunE
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wetfmt",
	Short: "Convert configuration documents between INI and JSON",
	Long: `wetfmt decodes INI or JSON documents into a common value tree and
encodes them back out in either format.

Commands:
  convert     Convert a document between ini and json
  locate      Describe where a file lives in a partition scheme`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		applyConfig(cmd.Flags(), cfg)
		return app.ValidateOutputFormat(outputFormat)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", app.OutputTable, "summary output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default searches ./wetfmt-config.*)")
}

// applyConfig fills global flags left unset on the command line from c
func applyConfig(flags *pflag.FlagSet, c *config.Config) {
	if !flags.Changed("output") {
		outputFormat = c.Output
	}

	// an explicit --verbose or --quiet overrides both config settings
	if flags.Changed("verbose") || flags.Changed("quiet") {
		return
	}
	verbose = c.Verbose
	quiet = c.Quiet
}

// newContext builds the application context from global flags
func newContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	ctx.Context = cmd.Context()
	ctx.OutputFormat = outputFormat
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.Stdin = cmd.InOrStdin()
	ctx.Stdout = cmd.OutOrStdout()
	ctx.Stderr = cmd.ErrOrStderr()
	return ctx
}
