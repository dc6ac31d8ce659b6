package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/shgcavity/app"
)

var boundsCmd = &cobra.Command{
	Use:   "bounds",
	Short: "Print the range of s for which the cavity is stable",
	Long: `Bounds prints the stability range of s in the tangential and sagittal
planes, their intersection and the window swept by default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := cavityParameters(cmd)
		if err != nil {
			return err
		}
		report, err := app.Bounds(p)
		if err != nil {
			return err
		}
		if encoded, err := encode(cmd.Flags(), cmd.OutOrStdout(), report); encoded || err != nil {
			return err
		}
		return app.WriteBounds(cmd.OutOrStdout(), report)
	},
}

func init() {
	addOutputFlags(boundsCmd.Flags())

	rootCmd.AddCommand(boundsCmd)
}
