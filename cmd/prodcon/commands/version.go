package commands

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/prodcon/version"
)

// versionInfo adapts version.Info to the text output format.
type versionInfo struct {
	version.Info `yaml:",inline"`
}

func (v versionInfo) Text() string {
	return appName + " " + v.Info.String()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			return writeOutput(cmd.OutOrStdout(), format, versionInfo{Info: version.Get()})
		},
	}
}
