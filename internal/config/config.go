// Package config holds the CLI configuration. The signing core takes no
// configuration; everything here concerns the surrounding tooling: where
// records are stored, how much to log, and per-chain fee defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/klingon-exchange/klingsign/internal/chain"
)

// Config holds all configuration for the klingsign CLI.
type Config struct {
	// Network selects mainnet or testnet parameters for every chain.
	Network string `yaml:"network"`

	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`

	// Fees holds per-chain fee overrides keyed by chain symbol.
	Fees map[string]FeeConfig `yaml:"fees,omitempty"`
}

// StorageConfig holds signing record storage settings.
type StorageConfig struct {
	// DataDir is where the record database and config live.
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FeeConfig overrides a chain's default fee parameters.
type FeeConfig struct {
	// FeeRate in base units per vbyte, Bitcoin-family chains.
	FeeRate uint64 `yaml:"fee_rate,omitempty"`
	// GasPrice in wei as decimal text, EVM chains.
	GasPrice string `yaml:"gas_price,omitempty"`
	// FeeDrops is a fixed fee in drops, XRP.
	FeeDrops uint64 `yaml:"fee_drops,omitempty"`
}

// NetworkType maps the configured network string to chain.Network.
func (c *Config) NetworkType() chain.Network {
	if c.Network == string(chain.Testnet) {
		return chain.Testnet
	}
	return chain.Mainnet
}

// FeeFor returns the fee override for a chain symbol, if any.
func (c *Config) FeeFor(symbol string) (FeeConfig, bool) {
	fee, ok := c.Fees[symbol]
	return fee, ok
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Network: string(chain.Mainnet),
		Storage: StorageConfig{
			DataDir: "~/.klingsign",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ConfigFileName is the default config file name.
const ConfigFileName = "config.yaml"

// Load loads configuration from dataDir, creating a default file on
// first run.
func Load(dataDir string) (*Config, error) {
	expandedDir := expandPath(dataDir)
	configPath := filepath.Join(expandedDir, ConfigFileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.Storage.DataDir = dataDir
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# klingsign configuration\n# Generated automatically on first run\n\n")
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
