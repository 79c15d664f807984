package powsim

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/powsim/powsim/internal/config"
	sqlcollectors "github.com/powsim/powsim/internal/metrics/collectors/sql"
	"github.com/powsim/powsim/internal/output"
)

var minePostgresCmd = &cobra.Command{
	Use:   "postgres [psql-connection-string]",
	Short: "Mine blocks and archive them to a PostgreSQL database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postgresConfig := config.PostgresConfig{ConnString: args[0]}
		if err := postgresConfig.Validate(); err != nil {
			return fmt.Errorf("invalid PostgreSQL configuration: %w", err)
		}

		archive, err := output.NewPostgresHandler(cmd.Context(), postgresConfig.ConnString)
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL output handler: %w", err)
		}
		defer archive.Close()

		if height, ok, err := archive.LatestHeight(cmd.Context()); err != nil {
			return err
		} else if ok {
			slog.Info("Archive already contains blocks", "height", height)
		}

		collectors, err := sqlcollectors.DefaultSqlRegistry.CreateSqlCollectors(archive.DB())
		if err != nil {
			return fmt.Errorf("failed to create SQL collectors: %w", err)
		}

		return runMine(cmd.Context(), archive, collectors...)
	},
}
