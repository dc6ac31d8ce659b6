package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/shgcavity/config"
	"github.com/AnkushinDaniil/shgcavity/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP",
	Long: `Serve exposes the solver as a JSON API and serves sweep charts:

  POST   /api/solve                 solve a parameter record
  POST   /api/sweep?samples=N       sweep s across the stability range
  POST   /api/bounds                stability ranges
  GET    /api/presets               list presets
  GET    /api/presets/{name}        show a preset
  PUT    /api/presets/{name}        save a preset
  DELETE /api/presets/{name}        delete a preset
  POST   /api/presets/{name}/solve  solve a preset
  GET    /api/solutions             recorded solutions (?preset=, ?limit=)
  GET    /chart                     sweep chart (?preset=, ?format=, ?samples=)

Request bodies are parameter records in SI units; missing keys take the
bundled default values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		return server.New(st, settings.Samples).ListenAndServe(cmd.Context(), settings.Listen)
	},
}

func init() {
	serveCmd.Flags().String("listen", config.Default().Listen, "address to listen on")

	bind(serveCmd.Flags().Lookup, map[string]string{
		config.KeyListen: "listen",
	})

	rootCmd.AddCommand(serveCmd)
}
