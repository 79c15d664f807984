package output

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/powsim/powsim/internal/chain"
)

type TSVHandler struct {
	blockFile   *os.File
	txFile      *os.File
	blockWriter *bufio.Writer
	txWriter    *bufio.Writer
}

func NewTSVHandler(outDir string) (*TSVHandler, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	blockFile, err := os.Create(filepath.Join(outDir, "blocks.tsv"))
	if err != nil {
		return nil, fmt.Errorf("failed to create blocks TSV file: %w", err)
	}

	txFile, err := os.Create(filepath.Join(outDir, "transactions.tsv"))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactions TSV file: %w", err)
	}

	return &TSVHandler{
		blockFile:   blockFile,
		txFile:      txFile,
		blockWriter: bufio.NewWriter(blockFile),
		txWriter:    bufio.NewWriter(txFile),
	}, nil
}

func (h *TSVHandler) WriteBlock(ctx context.Context, block *chain.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("failed to marshal block %d: %w", block.Header.Height, err)
	}

	line := fmt.Sprintf("%d\t%s\t%s\n", block.Header.Height, block.Header.Hash, string(data))
	if _, err := h.blockWriter.WriteString(line); err != nil {
		return err
	}

	for i := range block.Transactions {
		tx := block.Transactions[i]
		txData, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction: %w", err)
		}
		txLine := fmt.Sprintf("%s\t%d\t%s\n", chain.HashTransaction(tx), block.Header.Height, string(txData))
		if _, err := h.txWriter.WriteString(txLine); err != nil {
			return err
		}
	}

	return nil
}

func (h *TSVHandler) Close() error {
	if err := h.blockWriter.Flush(); err != nil {
		return err
	}
	if err := h.txWriter.Flush(); err != nil {
		return err
	}
	if err := h.blockFile.Close(); err != nil {
		return err
	}
	if err := h.txFile.Close(); err != nil {
		return err
	}
	return nil
}
