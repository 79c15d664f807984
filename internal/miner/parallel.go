package miner

import (
	"context"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/powsim/powsim/internal/chain"
)

// winner holds the first valid nonce found by any worker. The found flag is
// claimed with a compare-and-swap, so exactly one worker ever writes it.
type winner struct {
	found  atomic.Bool
	nonce  uint32
	digest string
}

// searchNonceParallel partitions the nonce space across workers goroutines by
// stride: worker w tests w, w+workers, w+2*workers, ... First writer wins;
// the remaining workers observe the found flag and stop.
func searchNonceParallel(ctx context.Context, header chain.Header, workers uint) (uint32, string, error) {
	g, ctx := errgroup.WithContext(ctx)
	win := &winner{}

	for w := uint(0); w < workers; w++ {
		start := uint64(w)
		g.Go(func() error {
			h := header
			for nonce := start; nonce <= math.MaxUint32; nonce += uint64(workers) {
				if nonce%cancelCheckInterval < uint64(workers) {
					if win.found.Load() {
						return nil
					}
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}

				h.Nonce = uint32(nonce)
				digest := chain.HashHeader(h)
				if chain.MeetsDifficulty(digest, h.Difficulty) {
					if win.found.CompareAndSwap(false, true) {
						win.nonce = uint32(nonce)
						win.digest = digest
					}
					return nil
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, "", err
	}
	if !win.found.Load() {
		return 0, "", ErrNonceExhausted
	}
	return win.nonce, win.digest, nil
}
