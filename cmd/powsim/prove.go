package powsim

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/powsim/powsim/internal/chain"
	"github.com/powsim/powsim/internal/config"
	"github.com/powsim/powsim/internal/merkle"
	"github.com/powsim/powsim/internal/store"
)

var proveCmd = &cobra.Command{
	Use:   "prove [flags]",
	Short: "Generate a Merkle inclusion proof for a transaction",
	Long:  `Prove rebuilds the Merkle tree of a block's transactions and extracts the sibling hashes proving that the given transaction hash reduces to the block's merkle root.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := config.LoadProveConfigFromCLI()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid prove configuration: %w", err)
		}

		slog.Info("Loading the blockchain", "file", cfg.ChainState)
		bc, err := store.LoadChain(cfg.ChainState)
		if err != nil {
			return err
		}

		block, err := bc.Block(cfg.BlockNumber)
		if err != nil {
			return fmt.Errorf("block %d: %w", cfg.BlockNumber, err)
		}

		leaves := make([]string, 0, len(block.Transactions))
		for _, tx := range block.Transactions {
			leaves = append(leaves, chain.HashTransaction(tx))
		}

		root, err := merkle.Build(leaves)
		if err != nil {
			return fmt.Errorf("failed to build merkle tree for block %d: %w", cfg.BlockNumber, err)
		}

		proof, err := merkle.GenerateProof(root, cfg.TxHash)
		if err != nil {
			return fmt.Errorf("failed to generate inclusion proof: %w", err)
		}

		if err := store.SaveProof(cfg.ProofOutput, proof); err != nil {
			return err
		}

		slog.Info("Inclusion proof written", "file", cfg.ProofOutput, "siblings", len(proof.Hashes), "root", proof.MerkleRoot)
		return nil
	},
}

func init() {
	proveCmd.Flags().String("chain-state", "", "File storing the state of the blockchain")
	proveCmd.Flags().Int("block", 0, "Number of the block containing the transaction (1-based)")
	proveCmd.Flags().String("tx-hash", "", "Canonical hash of the transaction to prove")
	proveCmd.Flags().StringP("proof-out", "o", "proof.json", "Inclusion proof output file")
	if err := viper.BindPFlags(proveCmd.Flags()); err != nil {
		slog.Error("Failed to bind proveCmd flags", "error", err)
	}
}
