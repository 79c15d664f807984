package powsim

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/powsim/powsim/internal/config"
	"github.com/powsim/powsim/internal/output"
)

var mineJSONCmd = &cobra.Command{
	Use:   "json [flags]",
	Short: "Mine blocks and archive them to JSON files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonConfig := config.LoadJSONConfigFromCLI()
		if err := jsonConfig.Validate(); err != nil {
			return fmt.Errorf("invalid JSON configuration: %w", err)
		}
		slog.Debug("Command-line argument", "json-out", jsonConfig.Output)

		archive, err := output.NewJSONHandler(jsonConfig.Output)
		if err != nil {
			return fmt.Errorf("failed to create JSON output handler: %w", err)
		}
		defer archive.Close()

		return runMine(cmd.Context(), archive)
	},
}

func init() {
	mineJSONCmd.Flags().StringP("json-out", "o", "out", "JSON output directory")
	if err := viper.BindPFlags(mineJSONCmd.Flags()); err != nil {
		slog.Error("Failed to bind mineJSONCmd flags", "error", err)
	}
}
