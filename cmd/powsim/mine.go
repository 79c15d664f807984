package powsim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/powsim/powsim/internal/config"
	"github.com/powsim/powsim/internal/mempool"
	"github.com/powsim/powsim/internal/metrics"
	"github.com/powsim/powsim/internal/miner"
	"github.com/powsim/powsim/internal/output"
	"github.com/powsim/powsim/internal/store"
)

var mineConfig config.MineConfig

var MineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine blocks from the pending transaction pool",
	Long:  `Mine extends the persisted blockchain by draining executable transactions from the mempool into proof-of-work mined blocks. Archive subcommands additionally copy every mined block to a secondary sink.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMine(cmd.Context(), nil)
	},
}

func init() {
	// Assigned here rather than in the composite literal because the
	// function body refers to MineCmd, which the compiler rejects as an
	// initialization cycle.
	MineCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Runs for the archive subcommands too, with cmd set to the
		// subcommand; chain to the root explicitly to avoid re-entering.
		if err := RootCmd.PersistentPreRunE(RootCmd, args); err != nil {
			return err
		}

		// Several commands share flag names (chain-state, mempool-output);
		// rebinding here makes this command's flags the ones viper reads.
		if err := viper.BindPFlags(MineCmd.PersistentFlags()); err != nil {
			return err
		}

		mineConfig = config.LoadMineConfigFromCLI()
		if err := mineConfig.Validate(); err != nil {
			return fmt.Errorf("invalid mine configuration: %w", err)
		}

		slog.Debug("Command-line arguments", "mineConfig", mineConfig)
		return nil
	}

	MineCmd.PersistentFlags().String("chain-state", "", "File storing the initial state of the blockchain")
	MineCmd.PersistentFlags().String("chain-state-output", "", "File storing the intermediate and final state of the blockchain")
	MineCmd.PersistentFlags().String("mempool", "", "File storing the initial mempool")
	MineCmd.PersistentFlags().String("mempool-output", "", "File storing the intermediate and final mempool")
	MineCmd.PersistentFlags().UintP("blocks-to-mine", "b", 1, "Number of blocks to mine")
	MineCmd.PersistentFlags().UintP("workers", "w", 1, "Number of goroutines searching the nonce space (advanced)")
	MineCmd.PersistentFlags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	MineCmd.PersistentFlags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")

	if err := viper.BindPFlags(MineCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind MineCmd flags", "error", err)
	}

	MineCmd.AddCommand(mineJSONCmd)
	MineCmd.AddCommand(mineTSVCmd)
	MineCmd.AddCommand(minePostgresCmd)
}

// runMine loads the chain and mempool, mines the requested number of blocks,
// and persists both after every block so an interrupted run leaves usable
// intermediate state. A non-nil archive receives each mined block as well.
func runMine(ctx context.Context, archive output.Handler, extraCollectors ...prometheus.Collector) error {
	bc, err := store.LoadChain(mineConfig.ChainState)
	if err != nil {
		return err
	}
	pending, err := store.LoadMempool(mineConfig.Mempool)
	if err != nil {
		return err
	}

	parent, err := bc.Latest()
	if err != nil {
		return fmt.Errorf("cannot mine on an empty blockchain, a genesis block is required: %w", err)
	}

	minerMetrics := metrics.NewMinerMetrics()
	if mineConfig.EnablePrometheus {
		server, err := metrics.CreateMetricsServer(mineConfig.PrometheusAddr,
			append(minerMetrics.Collectors(), extraCollectors...)...)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("Failed to shut down metrics server", "error", err)
			}
		}()
	}

	slog.Info("Starting mining", "blocks", mineConfig.BlocksToMine, "pending", len(pending), "height", parent.Header.Height)

	displayProgress := mineConfig.BlocksToMine > 1
	var bar *progressbar.ProgressBar
	if displayProgress {
		bar = progressbar.NewOptions64(
			int64(mineConfig.BlocksToMine),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("Mining blocks..."),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.RenderBlank(); err != nil {
			return fmt.Errorf("failed to render progress bar: %w", err)
		}
	}

	for i := uint(0); i < mineConfig.BlocksToMine; i++ {
		cutoff := parent.Header.Timestamp + miner.TimestampIncrement
		batch, remaining := mempool.Select(pending, cutoff)

		block, err := miner.Mine(ctx, parent, batch, mineConfig.Workers)
		if err != nil {
			return fmt.Errorf("failed to mine block at height %d: %w", parent.Header.Height+1, err)
		}

		bc = append(bc, *block)
		pending = remaining

		if err := store.SaveChain(mineConfig.ChainStateOutput, bc); err != nil {
			return err
		}
		if err := store.SaveMempool(mineConfig.MempoolOutput, pending); err != nil {
			return err
		}

		if archive != nil {
			if err := archive.WriteBlock(ctx, block); err != nil {
				return fmt.Errorf("failed to archive block %d: %w", block.Header.Height, err)
			}
		}

		minerMetrics.ObserveBlock(block)
		parent = &bc[len(bc)-1]

		if displayProgress {
			if err := bar.Add(1); err != nil {
				return fmt.Errorf("failed to update progress bar: %w", err)
			}
		}
	}

	slog.Info("Mining complete", "height", parent.Header.Height, "remaining", len(pending))
	return nil
}
