package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/powsim/powsim/internal/chain"
)

type JSONHandler struct {
	blockDir string
	txDir    string
}

func NewJSONHandler(outDir string) (*JSONHandler, error) {
	blockDir := filepath.Join(outDir, "blocks")
	txDir := filepath.Join(outDir, "txs")

	if err := os.MkdirAll(blockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blocks directory: %w", err)
	}
	if err := os.MkdirAll(txDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transactions directory: %w", err)
	}

	return &JSONHandler{
		blockDir: blockDir,
		txDir:    txDir,
	}, nil
}

func (h *JSONHandler) WriteBlock(ctx context.Context, block *chain.Block) error {
	data, err := json.MarshalIndent(block, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal block %d: %w", block.Header.Height, err)
	}

	fileName := fmt.Sprintf("block_%010d.json", block.Header.Height)
	if err := os.WriteFile(filepath.Join(h.blockDir, fileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write block %d: %w", block.Header.Height, err)
	}

	for i := range block.Transactions {
		tx := block.Transactions[i]
		txData, err := json.MarshalIndent(tx, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal transaction: %w", err)
		}
		txName := fmt.Sprintf("tx_%s.json", chain.HashTransaction(tx))
		if err := os.WriteFile(filepath.Join(h.txDir, txName), txData, 0644); err != nil {
			return fmt.Errorf("failed to write transaction: %w", err)
		}
	}

	return nil
}

func (h *JSONHandler) Close() error {
	// No resources to close for file output
	return nil
}
