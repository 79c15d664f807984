package config

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
)

type JSONConfig struct {
	Output string
}

func (c JSONConfig) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("missing output directory")
	}
	return nil
}

func LoadJSONConfigFromCLI() JSONConfig {
	return JSONConfig{
		Output: viper.GetString("json-out"),
	}
}

type TSVConfig struct {
	Output string
}

func (c TSVConfig) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("missing output directory")
	}
	return nil
}

func LoadTSVConfigFromCLI() TSVConfig {
	return TSVConfig{
		Output: viper.GetString("tsv-out"),
	}
}

type PostgresConfig struct {
	ConnString string
}

func (c PostgresConfig) Validate() error {
	if c.ConnString == "" {
		return fmt.Errorf("missing PostgreSQL connection string")
	}

	_, err := pgxpool.ParseConfig(c.ConnString)
	if err != nil {
		return fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	return nil
}
