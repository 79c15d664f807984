// Package output archives mined blocks to secondary sinks (JSON files, TSV
// files, PostgreSQL) as they are produced. Archives are write-only copies of
// the canonical JSON state files; the simulator never reads them back.
package output

import (
	"context"

	"github.com/powsim/powsim/internal/chain"
)

// Handler receives every mined block, transactions included.
type Handler interface {
	WriteBlock(ctx context.Context, block *chain.Block) error
	Close() error
}
