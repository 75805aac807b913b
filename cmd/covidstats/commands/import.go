package commands

import (
	"github.com/ougirez/covidstats/internal/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var importLatest *bool

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Loads raw source data into the database.",
}

var importStopCoronaCmd = &cobra.Command{
	Use:   "stopcorona [--latest]",
	Short: "Scrapes the weekly bulletin articles.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setupStore(cmd.Context())
		if err != nil {
			return err
		}
		return setupService(s).ImportStopCorona(cmd.Context(), *importLatest)
	},
}

var importGogovCmd = &cobra.Command{
	Use:   "gogov",
	Short: "Reads the vaccination counter page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setupStore(cmd.Context())
		if err != nil {
			return err
		}
		return setupService(s).ImportGogov(cmd.Context())
	},
}

var importCsvCmd = &cobra.Command{
	Use:   "csv [path]",
	Short: "Loads the historical daily archive from a csv file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString(constants.ViperCsvPath)
		if len(args) == 1 {
			path = args[0]
		}

		s, err := setupStore(cmd.Context())
		if err != nil {
			return err
		}
		return setupService(s).ImportCsv(cmd.Context(), path)
	},
}

var importPopulationCmd = &cobra.Command{
	Use:   "population [path]",
	Short: "Loads the census export.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString(constants.ViperPopulationPath)
		if len(args) == 1 {
			path = args[0]
		}

		s, err := setupStore(cmd.Context())
		if err != nil {
			return err
		}
		return setupService(s).ImportPopulation(cmd.Context(), path)
	},
}

func init() {
	importLatest = importStopCoronaCmd.Flags().Bool("latest", false, "only the newest bulletin")

	importCmd.AddCommand(importStopCoronaCmd, importGogovCmd, importCsvCmd, importPopulationCmd)
	rootCmd.AddCommand(importCmd)
}
