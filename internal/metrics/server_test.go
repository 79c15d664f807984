package metrics_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"

	"github.com/powsim/powsim/internal/chain"
	"github.com/powsim/powsim/internal/metrics"
	sqlcollectors "github.com/powsim/powsim/internal/metrics/collectors/sql"
)

func TestCreateMetricsServer(t *testing.T) {
	t.Run("StartServer", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(sqlcollectors.ArchivedTransactionCountQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(28))

		minerMetrics := metrics.NewMinerMetrics()
		minerMetrics.ObserveBlock(&chain.Block{
			Header:       chain.Header{Height: 1, Nonce: 41},
			Transactions: []chain.Transaction{{Amount: 1}},
		})

		collectors := append(minerMetrics.Collectors(),
			sqlcollectors.NewArchivedTransactionCountCollector(db))
		server, err := metrics.CreateMetricsServer("127.0.0.1:12112", collectors...)
		require.NoError(t, err)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, server.Shutdown(ctx))
		}()

		time.Sleep(100 * time.Millisecond)

		client := resty.New()
		resp, err := client.R().Get("http://127.0.0.1:12112/metrics")
		require.NoError(t, err, "Failed to connect to metrics server")
		require.Equal(t, 200, resp.StatusCode())

		body := resp.String()
		require.Contains(t, body, "powsim_archive_transactions_total")
		require.Contains(t, body, "powsim_miner_blocks_mined_total 1")
		require.Contains(t, body, "powsim_miner_transactions_included_total 1")
		require.Contains(t, body, "powsim_miner_nonce_attempts_total 42")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WhenInvalidAddress", func(t *testing.T) {
		_, err := metrics.CreateMetricsServer("invalid-address😆")
		require.Error(t, err)
	})

	t.Run("WhenInvalidPort", func(t *testing.T) {
		_, err := metrics.CreateMetricsServer("localhost:99999")
		require.Error(t, err)
	})

	t.Run("WhenDuplicateCollector", func(t *testing.T) {
		minerMetrics := metrics.NewMinerMetrics()
		collectors := append(minerMetrics.Collectors(), minerMetrics.Collectors()...)
		_, err := metrics.CreateMetricsServer("localhost:12113", collectors...)
		require.Error(t, err)
	})
}
