package powsim

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/powsim/powsim/internal/config"
	"github.com/powsim/powsim/internal/store"
)

var txHashCmd = &cobra.Command{
	Use:   "txhash [flags]",
	Short: "Print the canonical hash of a transaction in the blockchain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := config.LoadTxHashConfigFromCLI()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid txhash configuration: %w", err)
		}

		slog.Info("Loading the blockchain", "file", cfg.ChainState)
		bc, err := store.LoadChain(cfg.ChainState)
		if err != nil {
			return err
		}

		hash, err := bc.TransactionHash(cfg.BlockNumber, cfg.TxNumber)
		if err != nil {
			return fmt.Errorf("transaction %d in block %d: %w", cfg.TxNumber, cfg.BlockNumber, err)
		}

		slog.Info("Transaction hash", "block", cfg.BlockNumber, "tx", cfg.TxNumber)
		cmd.Println(hash)
		return nil
	},
}

func init() {
	txHashCmd.Flags().String("chain-state", "", "File storing the state of the blockchain")
	txHashCmd.Flags().Int("block", 0, "Number of the block to index (1-based)")
	txHashCmd.Flags().Int("tx", 0, "Number of the transaction in that block (1-based)")
	if err := viper.BindPFlags(txHashCmd.Flags()); err != nil {
		slog.Error("Failed to bind txHashCmd flags", "error", err)
	}
}
