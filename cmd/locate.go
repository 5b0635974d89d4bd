package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-wetfmt/pkg/app/locate"
)

var locateCmd = &cobra.Command{
	Use:   "locate <partition> <path>",
	Short: "Describe where a file lives in a partition scheme",
	Long: `Resolve a partition reference and path into a file location.

Partitions are written p<primary> for a primary slot or
p<primary>l<logical> for a logical partition inside that slot.

Examples:
  wetfmt locate p1 /EFI/BOOT/bootx64.efi
  wetfmt locate p4l2 /etc/fstab -o yaml`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(cmd)

		response, err := locate.Handle(ctx, &locate.Request{
			Partition: args[0],
			Path:      args[1],
		})
		if err != nil {
			return err
		}
		return locate.FormatOutput(ctx.Stdout, response, ctx.OutputFormat)
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
