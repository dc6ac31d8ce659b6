package cmd

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/shgcavity/cavity"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage named cavity presets (save, show, list, delete)",
	Long: `Preset stores named parameter records in the SQLite database given by
--db. Any command accepts --preset NAME to work on a stored cavity.`,
}

var presetSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save the configured cavity under NAME",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := cavityParameters(cmd)
		if err != nil {
			return err
		}
		if _, err := cavity.SBounds(p); err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SavePreset(cmd.Context(), args[0], p); err != nil {
			return err
		}
		log.WithField("name", args[0]).Info("Preset saved")
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a stored preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		preset, err := st.Preset(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if encoded, err := encode(cmd.Flags(), cmd.OutOrStdout(), preset); encoded || err != nil {
			return err
		}
		p := preset.Params
		_, err = fmt.Fprintf(cmd.OutOrStdout(),
			"%s (%s cut, updated %s)\n"+
				"f = %g mm\tl = %g mm\tv = %g mm\ts = %g mm\n"+
				"eta = %g\talpha = %g rad\twavelength = %g nm\n",
			preset.Name, p.Cut(), preset.UpdatedAt.Format(time.RFC3339),
			p.F*1e3, p.L*1e3, p.V*1e3, p.S*1e3,
			p.Eta, p.Alpha, p.Wavelength*1e9)
		return err
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		presets, err := st.ListPresets(cmd.Context())
		if err != nil {
			return err
		}
		if encoded, err := encode(cmd.Flags(), cmd.OutOrStdout(), presets); encoded || err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(presets) == 0 {
			fmt.Fprintln(out, "No presets found.")
			return nil
		}
		fmt.Fprintf(out, "%-20s  %-8s  %-8s  %s\n", "Name", "Cut", "s (mm)", "Updated")
		fmt.Fprintln(out, strings.Repeat("-", 64))
		for _, p := range presets {
			fmt.Fprintf(out, "%-20s  %-8s  %-8.3f  %s\n",
				p.Name, p.Params.Cut(), p.Params.S*1e3, p.UpdatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a stored preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.DeletePreset(cmd.Context(), args[0]); err != nil {
			return err
		}
		log.WithField("name", args[0]).Info("Preset deleted")
		return nil
	},
}

var solutionsCmd = &cobra.Command{
	Use:   "solutions",
	Short: "List recorded solutions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		name, _ := cmd.Flags().GetString("preset")
		limit, _ := cmd.Flags().GetInt("limit")
		solutions, err := st.Solutions(cmd.Context(), name, limit)
		if err != nil {
			return err
		}
		if encoded, err := encode(cmd.Flags(), cmd.OutOrStdout(), solutions); encoded || err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(solutions) == 0 {
			fmt.Fprintln(out, "No solutions recorded.")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-12s  %-8s  %-8s  %-8s  %s\n", "ID", "Preset", "s (mm)", "wt (µm)", "ws (µm)", "Recorded")
		fmt.Fprintln(out, strings.Repeat("-", 100))
		for _, s := range solutions {
			fmt.Fprintf(out, "%-36s  %-12s  %-8.3f  %-8.2f  %-8.2f  %s\n",
				s.ID, s.Preset, s.Params.S*1e3,
				s.Result.TangentialWaistCrystal*1e6, s.Result.SagittalWaistCrystal*1e6,
				s.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{presetShowCmd, presetListCmd, solutionsCmd} {
		addOutputFlags(c.Flags())
	}
	solutionsCmd.Flags().Int("limit", 20, "maximum number of solutions")

	presetCmd.AddCommand(presetSaveCmd, presetShowCmd, presetListCmd, presetDeleteCmd)
	rootCmd.AddCommand(presetCmd, solutionsCmd)
}
