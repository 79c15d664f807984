package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// TxHashConfig drives the transaction hash lookup. Block and transaction
// numbers are 1-based.
type TxHashConfig struct {
	ChainState  string
	BlockNumber int
	TxNumber    int
}

func (c TxHashConfig) Validate() error {
	if c.ChainState == "" {
		return fmt.Errorf("missing blockchain state file")
	}
	if c.BlockNumber < 1 {
		return fmt.Errorf("block number must be at least 1")
	}
	if c.TxNumber < 1 {
		return fmt.Errorf("transaction number must be at least 1")
	}
	return nil
}

func LoadTxHashConfigFromCLI() TxHashConfig {
	return TxHashConfig{
		ChainState:  viper.GetString("chain-state"),
		BlockNumber: viper.GetInt("block"),
		TxNumber:    viper.GetInt("tx"),
	}
}

type ProveConfig struct {
	ChainState  string
	ProofOutput string
	BlockNumber int
	TxHash      string
}

func (c ProveConfig) Validate() error {
	if c.ChainState == "" {
		return fmt.Errorf("missing blockchain state file")
	}
	if c.ProofOutput == "" {
		return fmt.Errorf("missing proof output file")
	}
	if c.BlockNumber < 1 {
		return fmt.Errorf("block number must be at least 1")
	}
	if c.TxHash == "" {
		return fmt.Errorf("missing transaction hash")
	}
	return nil
}

func LoadProveConfigFromCLI() ProveConfig {
	return ProveConfig{
		ChainState:  viper.GetString("chain-state"),
		ProofOutput: viper.GetString("proof-out"),
		BlockNumber: viper.GetInt("block"),
		TxHash:      viper.GetString("tx-hash"),
	}
}

// VerifyConfig drives proof verification. ChainState and BlockNumber are
// optional; when given, the proof's claimed root is additionally checked
// against the block's recorded merkle root.
type VerifyConfig struct {
	ProofFile   string
	ChainState  string
	BlockNumber int
}

func (c VerifyConfig) Validate() error {
	if c.ProofFile == "" {
		return fmt.Errorf("missing inclusion proof file")
	}
	if c.ChainState != "" && c.BlockNumber < 1 {
		return fmt.Errorf("block number must be at least 1")
	}
	return nil
}

func LoadVerifyConfigFromCLI() VerifyConfig {
	return VerifyConfig{
		ProofFile:   viper.GetString("proof"),
		ChainState:  viper.GetString("chain-state"),
		BlockNumber: viper.GetInt("block"),
	}
}

type GenTxConfig struct {
	MempoolOutput string
	Count         uint
	Seed          int64
}

func (c GenTxConfig) Validate() error {
	if c.MempoolOutput == "" {
		return fmt.Errorf("missing mempool output file")
	}
	if c.Count == 0 {
		return fmt.Errorf("count must be at least 1")
	}
	return nil
}

func LoadGenTxConfigFromCLI() GenTxConfig {
	return GenTxConfig{
		MempoolOutput: viper.GetString("mempool-output"),
		Count:         viper.GetUint("count"),
		Seed:          viper.GetInt64("seed"),
	}
}
