package cmd

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/shgcavity/app"
	"github.com/AnkushinDaniil/shgcavity/cavity"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the cavity eigenmode at the configured s",
	Long: `Solve computes the eigenmode at the crystal center and at the secondary
focus of the collimated arm. Waists are printed in µm and confocal parameters
in mm; --json and --yaml print the full result in SI units instead.

When s lies outside the stability range the cavity is reported as unstable
and the command fails.`,
	RunE: runSolve,
}

func runSolve(cmd *cobra.Command, args []string) error {
	p, preset, err := cavityParameters(cmd)
	if err != nil {
		return err
	}

	result, err := cavity.Solve(p)
	if errors.Is(err, cavity.ErrUnstable) {
		if werr := app.WriteSummary(cmd.OutOrStdout(), nil); werr != nil {
			return werr
		}
		return err
	}
	if err != nil {
		return err
	}

	if record, _ := cmd.Flags().GetBool("record"); record {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		sol, err := st.RecordSolution(cmd.Context(), preset, p, result)
		if err != nil {
			return err
		}
		log.WithField("id", sol.ID).Info("Solution recorded")
	}

	if encoded, err := encode(cmd.Flags(), cmd.OutOrStdout(), result); encoded || err != nil {
		return err
	}
	return app.WriteSummary(cmd.OutOrStdout(), &result)
}

func init() {
	addOutputFlags(solveCmd.Flags())
	solveCmd.Flags().Bool("record", false, "record the solution in the database")

	rootCmd.AddCommand(solveCmd)
}
