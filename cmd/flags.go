package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// bind ties each config key to the flag of the given name.
func bind(lookup func(name string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, lookup(name)); err != nil {
			panic(err)
		}
	}
}

// addOutputFlags registers --json and --yaml on fs.
func addOutputFlags(fs *pflag.FlagSet) {
	fs.Bool("json", false, "output as JSON")
	fs.Bool("yaml", false, "output as YAML")
}

// encode writes v as JSON or YAML when the matching flag is set and reports
// whether it did.
func encode(fs *pflag.FlagSet, w io.Writer, v any) (bool, error) {
	if asJSON, _ := fs.GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	}
	if asYAML, _ := fs.GetBool("yaml"); asYAML {
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return true, enc.Encode(v)
	}
	return false, nil
}
