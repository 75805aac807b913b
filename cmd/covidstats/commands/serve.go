package commands

import (
	"fmt"

	"github.com/ougirez/covidstats/internal/api"
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := setupStore(ctx)
		if err != nil {
			return err
		}

		svc, err := api.NewAPIService(s, setupService(s))
		if err != nil {
			return fmt.Errorf("api.NewAPIService: %w", err)
		}

		svc.Serve(viper.GetString(constants.ViperListenAddr))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
