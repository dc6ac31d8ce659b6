// Package config maps the viper configuration onto cavity parameters and
// application settings. The file, environment and flags carry the units shown
// to the user (mm, nm, degrees); Parameters converts them to SI.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/AnkushinDaniil/shgcavity/cavity"
	"github.com/AnkushinDaniil/shgcavity/entity/cut"
	"github.com/AnkushinDaniil/shgcavity/entity/format"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
)

const (
	Name      = "shgcavity"
	EnvPrefix = "SHGCAVITY"
)

// Configuration keys.
const (
	KeyFocalLength     = "focal_length_mm"
	KeyCrystalLength   = "crystal_length_mm"
	KeySecondaryFocus  = "secondary_focus_mm"
	KeyS               = "s_mm"
	KeyRefractiveIndex = "refractive_index"
	KeyAngle           = "angle_deg"
	KeyWavelength      = "wavelength_nm"
	KeyCut             = "cut"
	KeySamples         = "samples"
	KeyOutput          = "output"
	KeyFormat          = "format"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyDB              = "db"
	KeyListen          = "listen"
)

const (
	mm  = 1e-3
	nm  = 1e-9
	deg = math.Pi / 180
)

// Settings is the decoded configuration.
type Settings struct {
	FocalLengthMM    float64 `mapstructure:"focal_length_mm"`
	CrystalLengthMM  float64 `mapstructure:"crystal_length_mm"`
	SecondaryFocusMM float64 `mapstructure:"secondary_focus_mm"`
	SMM              float64 `mapstructure:"s_mm"`
	RefractiveIndex  float64 `mapstructure:"refractive_index"`
	AngleDeg         float64 `mapstructure:"angle_deg"`
	WavelengthNM     float64 `mapstructure:"wavelength_nm"`
	Cut              string  `mapstructure:"cut"`
	Samples          int     `mapstructure:"samples"`
	Output           string  `mapstructure:"output"`
	Format           string  `mapstructure:"format"`
	LogLevel         string  `mapstructure:"log_level"`
	LogFormat        string  `mapstructure:"log_format"`
	DB               string  `mapstructure:"db"`
	Listen           string  `mapstructure:"listen"`
}

// Default returns the bundled cavity in user units.
func Default() Settings {
	return Settings{
		FocalLengthMM:    50,
		CrystalLengthMM:  10,
		SecondaryFocusMM: 100,
		SMM:              70,
		RefractiveIndex:  1.5,
		AngleDeg:         10,
		WavelengthNM:     532,
		Cut:              cut.Plane.String(),
		Samples:          cavity.DefaultSamples,
		Output:           "cavity.html",
		Format:           "",
		LogLevel:         "info",
		LogFormat:        "text",
		DB:               Name + ".db",
		Listen:           ":8080",
	}
}

// SetDefaults registers Default under every key of v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyFocalLength, d.FocalLengthMM)
	v.SetDefault(KeyCrystalLength, d.CrystalLengthMM)
	v.SetDefault(KeySecondaryFocus, d.SecondaryFocusMM)
	v.SetDefault(KeyS, d.SMM)
	v.SetDefault(KeyRefractiveIndex, d.RefractiveIndex)
	v.SetDefault(KeyAngle, d.AngleDeg)
	v.SetDefault(KeyWavelength, d.WavelengthNM)
	v.SetDefault(KeyCut, d.Cut)
	v.SetDefault(KeySamples, d.Samples)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyDB, d.DB)
	v.SetDefault(KeyListen, d.Listen)
}

// Init points v at the config file, or at shgcavity.yaml in the working
// directory or ~/.config/shgcavity when cfgFile is empty, and enables
// SHGCAVITY_ environment overrides. A missing default file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load decodes v into Settings.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return s, nil
}

// Parameters converts the cavity settings to SI units.
func (s Settings) Parameters() (parameters.Parameters, error) {
	c, err := cut.UnmarshalText(s.Cut)
	if err != nil {
		return parameters.Parameters{}, err
	}
	return parameters.Parameters{
		F:          s.FocalLengthMM * mm,
		L:          s.CrystalLengthMM * mm,
		V:          s.SecondaryFocusMM * mm,
		S:          s.SMM * mm,
		Eta:        s.RefractiveIndex,
		Alpha:      s.AngleDeg * deg,
		Wavelength: s.WavelengthNM * nm,
		Brewster:   c == cut.Brewster,
	}, nil
}

// OutputFormat returns the configured format, or the one implied by the
// output file extension when none is set.
func (s Settings) OutputFormat() (format.Format, error) {
	if s.Format != "" {
		return format.UnmarshalText(s.Format)
	}
	return format.FromPath(s.Output)
}
