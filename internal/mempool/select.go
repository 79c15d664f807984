// Package mempool decides which pending transactions are eligible for the
// next block and in what priority order.
package mempool

import (
	"sort"

	"github.com/powsim/powsim/internal/chain"
)

// MaxBlockTransactions caps how many transactions a single block may carry.
const MaxBlockTransactions = 100

// SortByFee returns the transactions ordered by transaction fee, highest
// first. The sort is stable, so equally priced transactions keep their
// relative order. The input slice is not modified.
func SortByFee(pending []chain.Transaction) []chain.Transaction {
	ordered := make([]chain.Transaction, len(pending))
	copy(ordered, pending)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TransactionFee > ordered[j].TransactionFee
	})
	return ordered
}

// Executable reports whether a transaction's lock time has already passed
// relative to the cutoff timestamp, i.e. whether it may be included in a
// block carrying that timestamp.
func Executable(tx chain.Transaction, cutoff uint32) bool {
	return tx.LockTime <= cutoff
}

// Select orders the pending transactions by fee, filters to those executable
// at the cutoff timestamp, and returns a batch of at most
// MaxBlockTransactions together with everything left in the pool. The
// remainder keeps the fee ordering and stays pending for the next round.
func Select(pending []chain.Transaction, cutoff uint32) (batch, remaining []chain.Transaction) {
	ordered := SortByFee(pending)

	batch = make([]chain.Transaction, 0, MaxBlockTransactions)
	remaining = make([]chain.Transaction, 0, len(ordered))
	for _, tx := range ordered {
		if len(batch) < MaxBlockTransactions && Executable(tx, cutoff) {
			batch = append(batch, tx)
			continue
		}
		remaining = append(remaining, tx)
	}
	return batch, remaining
}
