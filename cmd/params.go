package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Save and print parameter records",
	Long: `Params handles parameter records: flat key/value documents (f, l, v, s,
eta, alpha, wavelength, Brewster) in SI units, stored as JSON or YAML by file
extension. A record is loaded back with --params FILE.`,
}

var paramsSaveCmd = &cobra.Command{
	Use:   "save FILE",
	Short: "Write the configured cavity to a parameter record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := cavityParameters(cmd)
		if err != nil {
			return err
		}
		if err := parameters.Save(args[0], p); err != nil {
			return err
		}
		log.WithField("file", args[0]).Info("Parameters saved")
		return nil
	},
}

var paramsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configured cavity as a parameter record",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := cavityParameters(cmd)
		if err != nil {
			return err
		}
		if encoded, err := encode(cmd.Flags(), cmd.OutOrStdout(), p); encoded || err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(p)
	},
}

var paramsDefaultCmd = &cobra.Command{
	Use:   "default FILE",
	Short: "Write the bundled default cavity to a parameter record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return parameters.Save(args[0], parameters.Default())
	},
}

func init() {
	addOutputFlags(paramsShowCmd.Flags())

	paramsCmd.AddCommand(paramsSaveCmd, paramsShowCmd, paramsDefaultCmd)
	rootCmd.AddCommand(paramsCmd)
}
