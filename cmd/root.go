// Package cmd is the shgcavity command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AnkushinDaniil/shgcavity/config"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
	"github.com/AnkushinDaniil/shgcavity/store"
)

// version is set at build time via ldflags.
var version = "dev"

// settings holds the configuration decoded before every command runs.
var settings config.Settings

var rootCmd = &cobra.Command{
	Use:   "shgcavity",
	Short: "Eigenmode calculator for bow-tie SHG enhancement cavities",
	Long: `shgcavity computes the fundamental Gaussian eigenmode of a four-mirror
bow-tie cavity with a nonlinear crystal between its two curved mirrors.

It reports the beam waists, confocal and focusing parameters and ellipticity
at the crystal and in the collimated arm, the range of mirror-to-crystal
distances s for which the cavity is stable, and sweeps of all of these
across that range.

Cavity parameters come from flags, SHGCAVITY_* environment variables, the
config file (shgcavity.yaml), a saved parameter record (--params) or a
named preset (--preset), in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		if err := config.Init(viper.GetViper(), cfgFile); err != nil {
			return err
		}
		s, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		if err := config.ConfigureLogging(s.LogLevel, s.LogFormat); err != nil {
			return err
		}
		if used := viper.ConfigFileUsed(); used != "" {
			log.WithField("file", used).Debug("Using config file")
		}
		settings = s
		return nil
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	d := config.Default()
	flags := rootCmd.PersistentFlags()

	flags.String("config", "", "config file (default: ./shgcavity.yaml or ~/.config/shgcavity/shgcavity.yaml)")
	flags.String("log-level", d.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.String("log-format", d.LogFormat, "log format (text, json)")

	flags.Float64("focal-length", d.FocalLengthMM, "focal length of the focusing mirrors (mm)")
	flags.Float64("crystal-length", d.CrystalLengthMM, "beam length inside the crystal (mm)")
	flags.Float64("secondary-focus", d.SecondaryFocusMM, "distance focusing mirror to secondary focus (mm)")
	flags.Float64("s", d.SMM, "distance focusing mirror to crystal surface (mm)")
	flags.Float64("refractive-index", d.RefractiveIndex, "fundamental refractive index of the crystal")
	flags.Float64("angle", d.AngleDeg, "mirror angle of incidence (deg)")
	flags.Float64("wavelength", d.WavelengthNM, "fundamental wavelength (nm)")
	flags.String("cut", d.Cut, "crystal cut (plane, brewster)")
	flags.String("db", d.DB, "SQLite database of presets and solutions")

	flags.String("params", "", "parameter record file (.json, .yaml) overriding the cavity flags")
	flags.String("preset", "", "stored preset overriding the cavity flags")

	bind(flags.Lookup, map[string]string{
		config.KeyLogLevel:        "log-level",
		config.KeyLogFormat:       "log-format",
		config.KeyFocalLength:     "focal-length",
		config.KeyCrystalLength:   "crystal-length",
		config.KeySecondaryFocus:  "secondary-focus",
		config.KeyS:               "s",
		config.KeyRefractiveIndex: "refractive-index",
		config.KeyAngle:           "angle",
		config.KeyWavelength:      "wavelength",
		config.KeyCut:             "cut",
		config.KeyDB:              "db",
	})
}

// cavityParameters resolves the cavity to work on: the --preset, else the
// --params record, else the configured values.
func cavityParameters(cmd *cobra.Command) (parameters.Parameters, string, error) {
	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		st, err := openStore()
		if err != nil {
			return parameters.Parameters{}, "", err
		}
		defer st.Close()
		preset, err := st.Preset(cmd.Context(), name)
		if err != nil {
			return parameters.Parameters{}, "", err
		}
		return preset.Params, name, nil
	}
	if path, _ := cmd.Flags().GetString("params"); path != "" {
		p, err := parameters.Load(path)
		return p, "", err
	}
	p, err := settings.Parameters()
	return p, "", err
}

func openStore() (*store.Store, error) {
	if settings.DB == "" {
		return nil, fmt.Errorf("no database configured, set --db")
	}
	return store.Open(settings.DB)
}
