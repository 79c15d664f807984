package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type MineConfig struct {
	ChainState       string
	ChainStateOutput string
	Mempool          string
	MempoolOutput    string
	BlocksToMine     uint
	Workers          uint
	EnablePrometheus bool
	PrometheusAddr   string
}

func (c MineConfig) Validate() error {
	if c.ChainState == "" {
		return fmt.Errorf("missing blockchain state file")
	}
	if c.ChainStateOutput == "" {
		return fmt.Errorf("missing blockchain state output file")
	}
	if c.Mempool == "" {
		return fmt.Errorf("missing mempool file")
	}
	if c.MempoolOutput == "" {
		return fmt.Errorf("missing mempool output file")
	}
	if c.BlocksToMine == 0 {
		return fmt.Errorf("blocks-to-mine must be at least 1")
	}
	if c.Workers == 0 {
		return fmt.Errorf("workers must be at least 1")
	}
	return nil
}

func LoadMineConfigFromCLI() MineConfig {
	return MineConfig{
		ChainState:       viper.GetString("chain-state"),
		ChainStateOutput: viper.GetString("chain-state-output"),
		Mempool:          viper.GetString("mempool"),
		MempoolOutput:    viper.GetString("mempool-output"),
		BlocksToMine:     viper.GetUint("blocks-to-mine"),
		Workers:          viper.GetUint("workers"),
		EnablePrometheus: viper.GetBool("enable-prometheus"),
		PrometheusAddr:   viper.GetString("prometheus-addr"),
	}
}
