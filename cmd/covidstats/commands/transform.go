package commands

import (
	"github.com/spf13/cobra"
)

var (
	transformLatest bool
	transformDebug  bool
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Computes weekly records from the raw data.",
}

var transformGlobalCmd = &cobra.Command{
	Use:   "global [--latest] [--debug]",
	Short: "Extends the nation-wide history from the bulletin and the component feed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setupStore(cmd.Context())
		if err != nil {
			return err
		}
		return setupService(s).TransformGlobal(cmd.Context(), transformLatest, transformDebug)
	},
}

var transformRegionsCmd = &cobra.Command{
	Use:   "regions [--latest] [--debug]",
	Short: "Extends the per-region history from the bulletin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setupStore(cmd.Context())
		if err != nil {
			return err
		}
		return setupService(s).TransformRegions(cmd.Context(), transformLatest, transformDebug)
	},
}

var transformLegacyGlobalCmd = &cobra.Command{
	Use:   "legacy-global [--debug]",
	Short: "Rebuilds the nation-wide history from the archive sources.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setupStore(cmd.Context())
		if err != nil {
			return err
		}
		return setupService(s).TransformLegacyGlobal(cmd.Context(), transformDebug)
	},
}

var transformLegacyRegionsCmd = &cobra.Command{
	Use:   "legacy-regions [--debug]",
	Short: "Rebuilds the per-region history from the external mirror.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setupStore(cmd.Context())
		if err != nil {
			return err
		}
		return setupService(s).TransformLegacyRegions(cmd.Context(), transformDebug)
	},
}

func init() {
	transformCmd.PersistentFlags().BoolVar(&transformLatest, "latest", false, "only the newest bulletin week")
	transformCmd.PersistentFlags().BoolVar(&transformDebug, "debug", false, "compute and log without writing")

	transformCmd.AddCommand(
		transformGlobalCmd,
		transformRegionsCmd,
		transformLegacyGlobalCmd,
		transformLegacyRegionsCmd,
	)
	rootCmd.AddCommand(transformCmd)
}
