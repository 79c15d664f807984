package powsim

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/powsim/powsim/internal/chain"
	"github.com/powsim/powsim/internal/config"
	"github.com/powsim/powsim/internal/store"
)

var genTxCmd = &cobra.Command{
	Use:   "gentx [flags]",
	Short: "Generate pseudo-random pending transactions",
	Long:  `Gentx fills a mempool file with pseudo-random transactions. A fixed seed reproduces the same pool.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := config.LoadGenTxConfigFromCLI()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid gentx configuration: %w", err)
		}

		rng := rand.New(rand.NewSource(cfg.Seed))
		pending := make([]chain.Transaction, 0, cfg.Count)
		for i := uint(0); i < cfg.Count; i++ {
			pending = append(pending, randomTransaction(rng))
		}

		if err := store.SaveMempool(cfg.MempoolOutput, pending); err != nil {
			return err
		}

		slog.Info("Generated transactions", "count", cfg.Count, "file", cfg.MempoolOutput)
		return nil
	},
}

func randomTransaction(rng *rand.Rand) chain.Transaction {
	return chain.Transaction{
		Amount:         uint64(rng.Intn(1_000_000)) + 1,
		LockTime:       uint32(rng.Intn(1000)),
		Receiver:       randomAddress(rng),
		Sender:         randomAddress(rng),
		Signature:      randomHex(rng, 64),
		TransactionFee: uint64(rng.Intn(100)) + 1,
	}
}

func randomAddress(rng *rand.Rand) string {
	return chain.HashPrefix + randomHex(rng, 20)
}

func randomHex(rng *rand.Rand, n int) string {
	buf := make([]byte, n)
	rng.Read(buf)
	return hex.EncodeToString(buf)
}

func init() {
	genTxCmd.Flags().String("mempool-output", "", "File to write the generated mempool to")
	genTxCmd.Flags().UintP("count", "n", 10, "Number of transactions to generate")
	genTxCmd.Flags().Int64("seed", 42, "Seed for the pseudo-random generator")
	if err := viper.BindPFlags(genTxCmd.Flags()); err != nil {
		slog.Error("Failed to bind genTxCmd flags", "error", err)
	}
}
