package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/shgcavity/app"
	"github.com/AnkushinDaniil/shgcavity/config"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep s across the stability range and plot the eigenmode",
	Long: `Sweep solves the cavity for evenly spaced values of s between 100 µm
inside either edge of the stability range and writes the crystal waists,
ellipticities and confocal parameters as an HTML chart page, a PNG image, a
CSV table or a JSON/YAML document.

The format follows --format, or the extension of --output when unset. If the
configured s lies outside the stability range it is moved to the center of
the range and marked there on the plots.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := cavityParameters(cmd)
		if err != nil {
			return err
		}
		f, err := settings.OutputFormat()
		if err != nil {
			return err
		}
		return app.New(settings.Output, f, settings.Samples, p).Run(cmd.Context())
	},
}

func init() {
	d := config.Default()
	sweepCmd.Flags().StringP("output", "o", d.Output, "output file")
	sweepCmd.Flags().String("format", d.Format, "output format (html, png, csv, json, yaml)")
	sweepCmd.Flags().Int("samples", d.Samples, "number of s values")

	bind(sweepCmd.Flags().Lookup, map[string]string{
		config.KeyOutput:  "output",
		config.KeyFormat:  "format",
		config.KeySamples: "samples",
	})

	rootCmd.AddCommand(sweepCmd)
}
