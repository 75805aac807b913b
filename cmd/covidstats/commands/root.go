package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/ougirez/covidstats/internal/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "covidstats",
	Short: "covidstats scrapes, reconciles and serves weekly COVID-19 statistics.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		viper.SetConfigFile(configPath)
		viper.AutomaticEnv()
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("viper.ReadInConfig: %w", err)
		}

		zapLogger, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			return fmt.Errorf("zap.NewProduction: %w", err)
		}
		logger.SetLogger(zapLogger)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the config file")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
