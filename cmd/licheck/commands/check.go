package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/licheck/internal/app"
	"go.trai.ch/zerr"
)

// allowFlags maps flag names to the policy toggle they set. The pointers are
// only populated for flags the user actually passed, so an unset flag never
// clobbers the policy file.
var allowFlags = []string{
	"allow-nonfree",
	"allow-viral",
	"allow-unknown",
	"allow-unlicense",
	"allow-lgpl",
	"allow-ambiguous",
	"allow-public-domain",
}

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [package]",
		Short: "Validate the licenses of a package and its dependency closure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := checkOptionsFromFlags(cmd)
			if err != nil {
				return err
			}

			pkgName := ""
			if len(args) > 0 {
				pkgName = args[0]
			}
			return c.app.Check(cmd.Context(), pkgName, opts)
		},
	}

	for _, name := range allowFlags {
		cmd.Flags().Bool(name, false, "Tolerate "+strings.TrimPrefix(name, "allow-")+" licenses")
	}
	cmd.Flags().StringArray("override", nil, "Force a license for a package (name=license, repeatable)")
	cmd.Flags().StringArray("whitelist", nil, "Exempt a package from license checks (repeatable)")
	cmd.Flags().Duration("timeout", 0, "Per-lookup timeout for package metadata queries")
	return cmd
}

func checkOptionsFromFlags(cmd *cobra.Command) (app.CheckOptions, error) {
	var opts app.CheckOptions

	overrides, _ := cmd.Flags().GetStringArray("override")
	if len(overrides) > 0 {
		opts.Overrides = make(map[string]string, len(overrides))
		for _, entry := range overrides {
			name, license, ok := strings.Cut(entry, "=")
			if !ok || name == "" || license == "" {
				return opts, zerr.New(fmt.Sprintf("invalid override %q, expected name=license", entry))
			}
			opts.Overrides[name] = license
		}
	}

	opts.Whitelist, _ = cmd.Flags().GetStringArray("whitelist")
	opts.Timeout, _ = cmd.Flags().GetDuration("timeout")

	for _, name := range allowFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, _ := cmd.Flags().GetBool(name)
		switch name {
		case "allow-nonfree":
			opts.AllowNonfree = &value
		case "allow-viral":
			opts.AllowViral = &value
		case "allow-unknown":
			opts.AllowUnknown = &value
		case "allow-unlicense":
			opts.AllowUnlicense = &value
		case "allow-lgpl":
			opts.AllowLGPL = &value
		case "allow-ambiguous":
			opts.AllowAmbiguous = &value
		case "allow-public-domain":
			opts.AllowPublicDomain = &value
		}
	}
	return opts, nil
}
