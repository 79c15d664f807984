// Package store reads and writes the simulator's persisted state: the
// blockchain, the mempool, and inclusion proofs, each as a whole JSON file.
// The core receives already-decoded records; unreadable or unparseable files
// surface here as errors the CLI treats as fatal.
package store

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/powsim/powsim/internal/chain"
)

// LoadChain reads an ordered sequence of blocks from a JSON file. Chain
// linkage is not re-verified on load; see chain.VerifyLinkage for the
// explicit integrity pass.
func LoadChain(path string) (chain.Blockchain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read blockchain state")
	}
	var bc chain.Blockchain
	if err := json.Unmarshal(data, &bc); err != nil {
		return nil, errors.WithMessage(err, "failed to parse blockchain state")
	}
	return bc, nil
}

// SaveChain writes the whole chain to a JSON file.
func SaveChain(path string, bc chain.Blockchain) error {
	if bc == nil {
		bc = chain.Blockchain{}
	}
	data, err := json.MarshalIndent(bc, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "failed to marshal blockchain state")
	}
	return errors.WithMessage(os.WriteFile(path, data, 0644), "failed to write blockchain state")
}

// LoadMempool reads pending transactions from a JSON file.
func LoadMempool(path string) ([]chain.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read mempool")
	}
	var pending []chain.Transaction
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, errors.WithMessage(err, "failed to parse mempool")
	}
	return pending, nil
}

// SaveMempool writes the remaining pending transactions to a JSON file.
func SaveMempool(path string, pending []chain.Transaction) error {
	if pending == nil {
		pending = []chain.Transaction{}
	}
	data, err := json.MarshalIndent(pending, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "failed to marshal mempool")
	}
	return errors.WithMessage(os.WriteFile(path, data, 0644), "failed to write mempool")
}

// LoadProof reads a single inclusion proof from a JSON file.
func LoadProof(path string) (*chain.InclusionProof, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read inclusion proof")
	}
	var proof chain.InclusionProof
	if err := json.Unmarshal(data, &proof); err != nil {
		return nil, errors.WithMessage(err, "failed to parse inclusion proof")
	}
	return &proof, nil
}

// SaveProof writes an inclusion proof to a JSON file.
func SaveProof(path string, proof *chain.InclusionProof) error {
	data, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "failed to marshal inclusion proof")
	}
	return errors.WithMessage(os.WriteFile(path, data, 0644), "failed to write inclusion proof")
}
