package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/polymesh"
)

func configCmd(flags *meshFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: "Prints the defaults merged with --config and the mesh flags, ready to\n" +
			"save as a starting point: polymesh config --format yaml > mesh.yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "toml" && format != "yaml" {
				return fmt.Errorf("config: %w: %q", polymesh.ErrUnknownConfigFormat, format)
			}
			cfg, err := flags.config(cmd)
			if err != nil {
				return err
			}
			return polymesh.EncodeConfig(cmd.OutOrStdout(), cfg, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml or yaml")
	return cmd
}
