package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/licheck/internal/app"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [package]",
		Short: "List the transitive dependency closure of a package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, _ := cmd.Flags().GetBool("versions")
			licenses, _ := cmd.Flags().GetBool("licenses")
			writeReport, _ := cmd.Flags().GetBool("write-report")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			pkgName := ""
			if len(args) > 0 {
				pkgName = args[0]
			}
			return c.app.Deps(cmd.Context(), pkgName, app.DepsOptions{
				Versions:    versions,
				Licenses:    licenses,
				WriteReport: writeReport,
				Timeout:     timeout,
			})
		},
	}
	cmd.Flags().BoolP("versions", "v", false, "Show installed versions")
	cmd.Flags().BoolP("licenses", "l", false, "Show effective licenses")
	cmd.Flags().Bool("write-report", false, "Persist the resolved closure as a report")
	cmd.Flags().Duration("timeout", 0, "Per-lookup timeout for package metadata queries")
	return cmd
}
