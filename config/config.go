// Package config loads the networks, addresses and token lists used by the operator
// commands. Defaults are embedded and may be overridden by a YAML file and by
// environment variables prefixed with STRATOPS_.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/stratops/stratops/types"
)

//go:embed default.yaml
var defaultConfig []byte

// EnvPrefix prefixes environment overrides, e.g. STRATOPS_TIMELOCK.
const EnvPrefix = "STRATOPS"

var (
	ErrUnknownNetwork    = errors.New("unknown network")
	ErrUnknownMasterChef = errors.New("unknown masterchef profile")
	ErrMissingEnv        = errors.New("environment variable not set")
)

type Config struct {
	DefaultNetwork string                `mapstructure:"default_network" validate:"required"`
	Networks       map[string]Network    `mapstructure:"networks" validate:"required,min=1,dive"`
	Timelock       string                `mapstructure:"timelock" validate:"omitempty,eth_addr"`
	Tokens         []Token               `mapstructure:"tokens" validate:"dive"`
	MasterChefs    map[string]MasterChef `mapstructure:"masterchefs" validate:"dive"`
}

type Network struct {
	ChainID   uint64 `mapstructure:"chain_id" validate:"required"`
	RPCURL    string `mapstructure:"rpc_url" validate:"omitempty,url"`
	RPCURLEnv string `mapstructure:"rpc_url_env" validate:"required_without=RPCURL"`
	// Accounts lists the environment variables holding hex private keys. The first
	// entry is the default sender.
	Accounts []string `mapstructure:"accounts"`
	GasPrice string   `mapstructure:"gas_price" validate:"omitempty,numeric"`
	// Fork marks a local hardhat or anvil node exposing test controls.
	Fork     bool     `mapstructure:"fork"`
	Explorer Explorer `mapstructure:"explorer"`
}

type Explorer struct {
	APIURL     string `mapstructure:"api_url" validate:"omitempty,url"`
	BrowserURL string `mapstructure:"browser_url" validate:"omitempty,url"`
	APIKeyEnv  string `mapstructure:"api_key_env"`
}

// Token is an entry of the ordered token list. Its position is the index used by
// sweep-tokens.
type Token struct {
	Symbol  string `mapstructure:"symbol" validate:"required"`
	Address string `mapstructure:"address" validate:"required,eth_addr"`
}

// MasterChef describes the fork specific getters of a masterchef contract.
type MasterChef struct {
	Address           string `mapstructure:"address" validate:"required,eth_addr"`
	RewardRateMethod  string `mapstructure:"reward_rate_method" validate:"required"`
	RewardTokenMethod string `mapstructure:"reward_token_method" validate:"required,nefield=RewardRateMethod"`
	RateUnit          string `mapstructure:"rate_unit" validate:"required,oneof=block second"`
	// Symbol overrides the reward token symbol read from chain.
	Symbol string `mapstructure:"symbol"`
}

// Load reads the embedded defaults, merges the file at path when path is not empty and
// applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("timelock"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("default_network"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and cross field references.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, ok := c.Networks[c.DefaultNetwork]; !ok {
		return fmt.Errorf("invalid config: default network %q: %w", c.DefaultNetwork, ErrUnknownNetwork)
	}

	return nil
}

// LoadEnv loads secrets from a dotenv file. A missing file is not an error so that
// variables may come from the process environment alone.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}

// Network returns the named network, or the default network when name is empty.
func (c *Config) Network(name string) (Network, error) {
	if name == "" {
		name = c.DefaultNetwork
	}
	n, ok := c.Networks[name]
	if !ok {
		return Network{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownNetwork, name, strings.Join(c.NetworkNames(), ", "))
	}

	return n, nil
}

// NetworkNames returns the configured network names in sorted order.
func (c *Config) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// TimelockAddress returns the configured timelock.
func (c *Config) TimelockAddress() (common.Address, error) {
	if c.Timelock == "" {
		return common.Address{}, errors.New("timelock address is not configured")
	}

	return common.HexToAddress(c.Timelock), nil
}

// MasterChef returns the named masterchef profile.
func (c *Config) MasterChef(name string) (MasterChef, error) {
	m, ok := c.MasterChefs[strings.ToLower(name)]
	if !ok {
		return MasterChef{}, fmt.Errorf("%w %q", ErrUnknownMasterChef, name)
	}

	return m, nil
}

// TokenAddress returns the token address.
func (t Token) TokenAddress() common.Address {
	return common.HexToAddress(t.Address)
}

// ContractAddress returns the masterchef address.
func (m MasterChef) ContractAddress() common.Address {
	return common.HexToAddress(m.Address)
}

// URL resolves the RPC endpoint, preferring the literal URL over the environment.
func (n Network) URL() (string, error) {
	if n.RPCURL != "" {
		return n.RPCURL, nil
	}

	url := os.Getenv(n.RPCURLEnv)
	if url == "" {
		return "", fmt.Errorf("rpc url: %w: %s", ErrMissingEnv, n.RPCURLEnv)
	}

	return url, nil
}

// PrivateKey returns the hex key held in the environment variable of account idx.
func (n Network) PrivateKey(idx int) (string, error) {
	if idx < 0 || idx >= len(n.Accounts) {
		return "", fmt.Errorf("account index %d out of range, network has %d accounts", idx, len(n.Accounts))
	}

	key := strings.TrimPrefix(strings.TrimSpace(os.Getenv(n.Accounts[idx])), "0x")
	if key == "" {
		return "", fmt.Errorf("private key: %w: %s", ErrMissingEnv, n.Accounts[idx])
	}

	return key, nil
}

// GasPriceWei returns the fixed gas price, or nil when the node should suggest one.
func (n Network) GasPriceWei() (*big.Int, error) {
	if n.GasPrice == "" {
		return nil, nil
	}

	wei, err := cast.ToUint64E(n.GasPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid gas price %q: %w", n.GasPrice, err)
	}

	return new(big.Int).SetUint64(wei), nil
}

// ChainName is the chain-selectors name of the network's chain.
func (n Network) ChainName() string {
	return types.ChainName(n.ChainID)
}

// APIKey returns the explorer API key from the environment. An empty key is allowed;
// some explorers accept anonymous submissions.
func (e Explorer) APIKey() string {
	if e.APIKeyEnv == "" {
		return ""
	}

	return os.Getenv(e.APIKeyEnv)
}
