// Package miner assembles candidate blocks and runs the proof-of-work nonce
// search that ties a header to its transaction set.
package miner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/powsim/powsim/internal/chain"
	"github.com/powsim/powsim/internal/merkle"
)

// TimestampIncrement is the fixed simulated time step between a block and its
// parent, independent of wall-clock mining duration.
const TimestampIncrement = 10

const (
	// logEveryNonces is how often nonce search progress is logged.
	logEveryNonces = 100_000
	// cancelCheckInterval is how often a worker polls for cancellation.
	cancelCheckInterval = 4096
)

// ErrNonceExhausted is returned when no nonce in the representable range
// satisfies the difficulty target.
var ErrNonceExhausted = errors.New("nonce space exhausted without meeting difficulty target")

// Mine produces a fully mined block from a parent block and an ordered batch
// of transactions. Difficulty and miner address are copied from the parent,
// height and timestamp advance, and the nonce search runs until the header
// digest carries enough leading zero digits. The search is CPU-bound; ctx
// cancellation is honored between batches of attempts. workers > 1 partitions
// the nonce space across that many goroutines.
func Mine(ctx context.Context, parent *chain.Block, batch []chain.Transaction, workers uint) (*chain.Block, error) {
	slog.Info("Producing a new block", "transactions", len(batch))

	hashes := make([]string, 0, len(batch))
	for _, tx := range batch {
		hashes = append(hashes, chain.HashTransaction(tx))
	}

	root, err := merkle.Build(hashes)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction merkle tree: %w", err)
	}
	slog.Debug("Assembled the merkle tree", "root", root.Hash)

	header := chain.Header{
		Difficulty:              parent.Header.Difficulty,
		Height:                  parent.Header.Height + 1,
		Miner:                   parent.Header.Miner,
		Nonce:                   0,
		Hash:                    "",
		PreviousBlockHeaderHash: parent.Header.Hash,
		Timestamp:               parent.Header.Timestamp + TimestampIncrement,
		TransactionsCount:       uint32(len(batch)),
		TransactionsMerkleRoot:  chain.HashPrefix + root.Hash,
	}

	slog.Info("Mining the new block", "height", header.Height, "difficulty", header.Difficulty)

	var nonce uint32
	var digest string
	if workers > 1 {
		nonce, digest, err = searchNonceParallel(ctx, header, workers)
	} else {
		nonce, digest, err = searchNonce(ctx, header, 0, 1, math.MaxUint32)
	}
	if err != nil {
		return nil, err
	}

	header.Nonce = nonce
	header.Hash = digest
	slog.Info("Mined a new block", "height", header.Height, "nonce", nonce, "hash", digest)

	return &chain.Block{Header: header, Transactions: batch}, nil
}

// searchNonce tries nonces start, start+stride, ... up to and including max,
// returning the first nonce whose header digest meets the difficulty target.
func searchNonce(ctx context.Context, header chain.Header, start, stride uint64, max uint64) (uint32, string, error) {
	for nonce := start; nonce <= max; nonce += stride {
		if nonce%cancelCheckInterval < stride {
			select {
			case <-ctx.Done():
				return 0, "", ctx.Err()
			default:
			}
		}
		if nonce > start && nonce%logEveryNonces < stride {
			slog.Debug("Nonce search progress", "tested", nonce)
		}

		header.Nonce = uint32(nonce)
		digest := chain.HashHeader(header)
		if chain.MeetsDifficulty(digest, header.Difficulty) {
			return uint32(nonce), digest, nil
		}
	}
	return 0, "", ErrNonceExhausted
}
