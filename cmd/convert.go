package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-wetfmt/pkg/app/convert"
)

var (
	convertFrom      string
	convertTo        string
	convertOut       string
	convertPretty    bool
	convertOverwrite bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [input-path]",
	Short: "Convert a document between ini and json",
	Long: `Decode a document in one format and encode it in another.

Formats are inferred from .ini and .json extensions unless given with
--from and --to. Use "-" to read standard input; without --out the
converted document is written to standard output.

Examples:
  # Convert a boot loader config to JSON on stdout
  wetfmt convert loader.ini --to json

  # Write indented JSON to a file
  wetfmt convert loader.ini --out loader.json --pretty

  # Pipe JSON in and get INI out
  cat settings.json | wetfmt convert - --from json --to ini`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFrom, "from", "f", "", "input format (ini, json)")
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "", "output format (ini, json)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output file (default stdout)")
	convertCmd.Flags().BoolVar(&convertPretty, "pretty", false, "indent JSON output")
	convertCmd.Flags().BoolVar(&convertOverwrite, "overwrite", false, "replace an existing output file")
}

func runConvert(cmd *cobra.Command, inputPath string) error {
	ctx := newContext(cmd)

	request := &convert.Request{
		InputPath:  inputPath,
		OutputPath: convertOut,
		From:       convertFrom,
		To:         convertTo,
		Pretty:     convertPretty,
		Overwrite:  convertOverwrite,
	}

	// Config supplies defaults for flags left unset
	flags := cmd.Flags()
	if cfg != nil {
		if !flags.Changed("from") && request.From == "" {
			request.From = cfg.InputFormat
		}
		if !flags.Changed("to") && request.To == "" {
			request.To = cfg.OutputFormat
		}
		if !flags.Changed("pretty") {
			request.Pretty = cfg.Pretty
		}
		if !flags.Changed("overwrite") {
			request.Overwrite = cfg.Overwrite
		}
	}

	response, err := convert.Handle(ctx, request)
	if err != nil {
		return err
	}

	return convert.FormatOutput(ctx.Stdout, response, ctx.OutputFormat)
}
