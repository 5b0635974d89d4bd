package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-wetfmt/pkg/app"
)

// FormatOutput writes a conversion result. A document bound for standard
// output is written verbatim; otherwise a summary is rendered in the
// requested output format.
func FormatOutput(w io.Writer, response *Response, outputFormat string) error {
	if response.ToStdout() {
		return writeContent(w, response.Content)
	}

	switch outputFormat {
	case app.OutputJSON:
		return formatJSON(w, response)
	case app.OutputYAML:
		return formatYAML(w, response)
	case app.OutputTable:
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// writeContent terminates the document with a newline for terminal output
func writeContent(w io.Writer, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(w, content)
	return err
}

// formatTable formats the summary as a table
func formatTable(w io.Writer, response *Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "INPUT\tOUTPUT\tFROM\tTO\tROOT\tBYTES\n")
	fmt.Fprintf(tw, "-----\t------\t----\t--\t----\t-----\n")
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s (%d)\t%d\n",
		response.InputPath, response.OutputPath, response.From, response.To,
		response.RootKind, response.Entries, response.Bytes)

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nConverted in %v (request %s)\n", response.Duration, response.RequestID)
	return err
}

// formatJSON formats the summary as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats the summary as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}
