package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

const ArchivedTransactionCountQuery = `SELECT COUNT(*) FROM powsim.transactions`

// ArchivedTransactionCountCollector collects the total number of transactions
// written to the PostgreSQL archive.
type ArchivedTransactionCountCollector struct {
	db           *sql.DB
	totalTxCount *prometheus.Desc
}

func NewArchivedTransactionCountCollector(db *sql.DB) *ArchivedTransactionCountCollector {
	return &ArchivedTransactionCountCollector{
		db: db,
		totalTxCount: prometheus.NewDesc(
			prometheus.BuildFQName("powsim", "archive", "transactions_total"),
			"Total archived transaction count",
			nil,
			prometheus.Labels{"source": "postgres"},
		),
	}
}

func (c *ArchivedTransactionCountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalTxCount
}

func (c *ArchivedTransactionCountCollector) Collect(ch chan<- prometheus.Metric) {
	var count int64
	err := c.db.QueryRow(ArchivedTransactionCountQuery).Scan(&count)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.totalTxCount, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.totalTxCount, prometheus.CounterValue, float64(count))
}

func init() {
	RegisterCollectorFactory(func(db *sql.DB, extraParams ...interface{}) (prometheus.Collector, error) {
		return NewArchivedTransactionCountCollector(db), nil
	})
}
