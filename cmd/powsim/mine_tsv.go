package powsim

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/powsim/powsim/internal/config"
	"github.com/powsim/powsim/internal/output"
)

var mineTSVCmd = &cobra.Command{
	Use:   "tsv [flags]",
	Short: "Mine blocks and archive them to TSV files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tsvConfig := config.LoadTSVConfigFromCLI()
		if err := tsvConfig.Validate(); err != nil {
			return errors.WithMessage(err, "invalid TSV configuration")
		}
		slog.Debug("Command-line argument", "tsv-out", tsvConfig.Output)

		archive, err := output.NewTSVHandler(tsvConfig.Output)
		if err != nil {
			return errors.WithMessage(err, "failed to create TSV output handler")
		}
		defer archive.Close()

		return runMine(cmd.Context(), archive)
	},
}

func init() {
	mineTSVCmd.Flags().StringP("tsv-out", "o", "tsv", "TSV output directory")
	if err := viper.BindPFlags(mineTSVCmd.Flags()); err != nil {
		slog.Error("Failed to bind mineTSVCmd flags", "error", err)
	}
}
