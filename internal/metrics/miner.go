package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/powsim/powsim/internal/chain"
)

// MinerMetrics counts mining work done by this process.
type MinerMetrics struct {
	blocksMined          prometheus.Counter
	transactionsIncluded prometheus.Counter
	nonceAttempts        prometheus.Counter
}

func NewMinerMetrics() *MinerMetrics {
	return &MinerMetrics{
		blocksMined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName("powsim", "miner", "blocks_mined_total"),
			Help: "Total number of blocks mined",
		}),
		transactionsIncluded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName("powsim", "miner", "transactions_included_total"),
			Help: "Total number of transactions included in mined blocks",
		}),
		nonceAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName("powsim", "miner", "nonce_attempts_total"),
			Help: "Total number of nonces tested while mining",
		}),
	}
}

// Collectors returns the counters for registration.
func (m *MinerMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.blocksMined, m.transactionsIncluded, m.nonceAttempts}
}

// ObserveBlock records a freshly mined block. The winning nonce bounds the
// attempt count for a sequential search.
func (m *MinerMetrics) ObserveBlock(block *chain.Block) {
	m.blocksMined.Inc()
	m.transactionsIncluded.Add(float64(len(block.Transactions)))
	m.nonceAttempts.Add(float64(block.Header.Nonce) + 1)
}
