package locate

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-wetfmt/pkg/app"
)

// FormatOutput formats a location according to output format
func FormatOutput(w io.Writer, response *Response, outputFormat string) error {
	switch outputFormat {
	case app.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	case app.OutputYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(response)
	case app.OutputTable:
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func formatTable(w io.Writer, response *Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	logical := "-"
	if response.Logical != nil {
		logical = fmt.Sprintf("%d", *response.Logical)
	}

	fmt.Fprintf(tw, "LOCATION\tKIND\tPRIMARY\tLOGICAL\tNAME\tDEPTH\n")
	fmt.Fprintf(tw, "--------\t----\t-------\t-------\t----\t-----\n")
	fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%d\n",
		response.Location, response.PartitionKind, response.Primary, logical,
		response.Name, response.Depth)

	return tw.Flush()
}
