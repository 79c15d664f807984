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

var verifyCmd = &cobra.Command{
	Use:   "verify [flags]",
	Short: "Verify a stored Merkle inclusion proof",
	Long:  `Verify replays an inclusion proof's sibling hashes and checks that they reduce to the claimed merkle root. When a blockchain state and block number are given, the claimed root is additionally checked against the block's recorded merkle root.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := config.LoadVerifyConfigFromCLI()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid verify configuration: %w", err)
		}

		proof, err := store.LoadProof(cfg.ProofFile)
		if err != nil {
			return err
		}

		if cfg.ChainState != "" {
			bc, err := store.LoadChain(cfg.ChainState)
			if err != nil {
				return err
			}
			block, err := bc.Block(cfg.BlockNumber)
			if err != nil {
				return fmt.Errorf("block %d: %w", cfg.BlockNumber, err)
			}
			recorded := block.Header.TransactionsMerkleRoot
			if chain.StripPrefix(recorded) != chain.StripPrefix(proof.MerkleRoot) {
				return fmt.Errorf("proof root %s does not match merkle root %s recorded in block %d: %w",
					proof.MerkleRoot, recorded, cfg.BlockNumber, merkle.ErrVerificationFailed)
			}
		}

		if err := merkle.VerifyProof(proof); err != nil {
			return err
		}

		slog.Info("Inclusion proof verified", "tx", proof.TransactionHash, "root", proof.MerkleRoot)
		cmd.Println("inclusion proof verified")
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringP("proof", "p", "", "Inclusion proof file to verify")
	verifyCmd.Flags().String("chain-state", "", "File storing the state of the blockchain (optional)")
	verifyCmd.Flags().Int("block", 0, "Number of the block to check the proof against (1-based)")
	if err := viper.BindPFlags(verifyCmd.Flags()); err != nil {
		slog.Error("Failed to bind verifyCmd flags", "error", err)
	}
}
