package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Mohsinsiddi/tmbcli/internal/rpc"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	defaultProvider  = ProviderKeystore
	defaultWalletURL = "ws://127.0.0.1:1248"
	defaultAlgorithm = "fastest"
	defaultLogLevel  = "info"
	defaultTxTimeout = int(TxConfirmTimeout / time.Second)

	configName = "config"
	configType = "json"
	configFile = configName + "." + configType
	dirName    = ".tmbcli"
)

// ErrUnknownKey is returned by Get and Set for keys that are not settable.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists the keys accepted by Get and Set, in display order.
var Keys = []string{
	"provider",
	"wallet_url",
	"default_wallet",
	"contract_address",
	"rpc_algorithm",
	"log_level",
	"log_path",
	"tx_timeout",
	"metrics_addr",
}

// Load reads config from dir (or creates defaults). dir defaults to
// $TMB_CONFIG_DIR, then ~/.tmbcli. TMB_* environment variables override
// file values.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = os.Getenv(EnvDir)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Get returns the value of key rendered as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "provider":
		return c.Provider, nil
	case "wallet_url":
		return c.WalletURL, nil
	case "default_wallet":
		return c.DefaultWallet, nil
	case "contract_address":
		return c.ContractAddress, nil
	case "rpc_algorithm":
		return c.RPCAlgorithm, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_path":
		return c.LogPath, nil
	case "tx_timeout":
		return strconv.Itoa(c.TxTimeout), nil
	case "metrics_addr":
		return c.MetricsAddr, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set validates value and assigns it to key. It does not save.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "provider":
		if value != ProviderKeystore && value != ProviderRemote {
			return fmt.Errorf("provider must be %q or %q", ProviderKeystore, ProviderRemote)
		}
		c.Provider = value
	case "wallet_url":
		c.WalletURL = value
	case "default_wallet":
		c.DefaultWallet = value
	case "contract_address":
		if value != "" && !common.IsHexAddress(value) {
			return fmt.Errorf("invalid contract address %q", value)
		}
		if value != "" {
			value = common.HexToAddress(value).Hex()
		}
		c.ContractAddress = value
	case "rpc_algorithm":
		if _, err := rpc.ParseAlgorithm(value); err != nil {
			return err
		}
		c.RPCAlgorithm = value
	case "log_level":
		if _, err := zapcore.ParseLevel(value); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
		c.LogLevel = value
	case "log_path":
		c.LogPath = value
	case "tx_timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("tx_timeout must be a positive number of seconds, got %q", value)
		}
		c.TxTimeout = n
	case "metrics_addr":
		c.MetricsAddr = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// AddRPC adds a custom RPC URL for a chain.
func (c *Config) AddRPC(chain, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[chain], url) {
		return fmt.Errorf("RPC %s already exists for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = append(c.CustomRPCs[chain], url)
	return nil
}

// RemoveRPC removes a custom RPC URL for a chain.
func (c *Config) RemoveRPC(chain, url string) error {
	rpcs := c.CustomRPCs[chain]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = slices.Delete(rpcs, idx, idx+1)
	if len(c.CustomRPCs[chain]) == 0 {
		delete(c.CustomRPCs, chain)
	}
	return nil
}

// GetRPCs returns custom RPCs for a chain.
func (c *Config) GetRPCs(chain string) []string {
	return c.CustomRPCs[chain]
}

// Algorithm returns the parsed RPC selection algorithm.
func (c *Config) Algorithm() (rpc.Algorithm, error) {
	return rpc.ParseAlgorithm(c.RPCAlgorithm)
}

// Contract returns the configured token address, or fallback when unset.
func (c *Config) Contract(fallback common.Address) (common.Address, error) {
	if c.ContractAddress == "" {
		return fallback, nil
	}
	if !common.IsHexAddress(c.ContractAddress) {
		return common.Address{}, fmt.Errorf("invalid contract_address %q", c.ContractAddress)
	}
	return common.HexToAddress(c.ContractAddress), nil
}

// TxWait is how long write commands wait for a receipt.
func (c *Config) TxWait() time.Duration {
	if c.TxTimeout <= 0 {
		return TxConfirmTimeout
	}
	return time.Duration(c.TxTimeout) * time.Second
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// --- helpers ---

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", defaultProvider)
	v.SetDefault("wallet_url", defaultWalletURL)
	v.SetDefault("default_wallet", "")
	v.SetDefault("contract_address", "")
	v.SetDefault("rpc_algorithm", defaultAlgorithm)
	v.SetDefault("custom_rpcs", map[string][]string{})
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_path", "")
	v.SetDefault("tx_timeout", defaultTxTimeout)
	v.SetDefault("metrics_addr", "")
}
