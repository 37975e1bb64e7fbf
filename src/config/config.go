package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/asaworks/asa-studio/base/logger/xzap"
	"github.com/asaworks/asa-studio/base/wallet"
)

type Config struct {
	Api       Api                    `toml:"api" mapstructure:"api" json:"api"`
	Log       xzap.LogConf           `toml:"log" mapstructure:"log" json:"log"`
	Algod     Algod                  `toml:"algod" mapstructure:"algod" json:"algod"`
	Federated wallet.FederatedConfig `toml:"federated" mapstructure:"federated" json:"federated"`
	Wallets   []WalletAdapter        `toml:"wallets" mapstructure:"wallets" json:"wallets"`
	Relay     Relay                  `toml:"relay" mapstructure:"relay" json:"relay"`
	Store     Store                  `toml:"store" mapstructure:"store" json:"store"`
}

type Api struct {
	Port string `toml:"port" mapstructure:"port" json:"port"`
}

// Algod selects which chain endpoint to target.
type Algod struct {
	URL     string `toml:"url" mapstructure:"url" json:"url"`
	Token   string `toml:"token" mapstructure:"token" json:"token"`
	Network string `toml:"network" mapstructure:"network" json:"network"` // localnet, testnet, mainnet
}

// WalletAdapter registers one traditional wallet.
type WalletAdapter struct {
	ID   string `toml:"id" mapstructure:"id" json:"id"`
	Name string `toml:"name" mapstructure:"name" json:"name"`
	Kind string `toml:"kind" mapstructure:"kind" json:"kind"` // mnemonic or kmd
	// Mnemonic adapter.
	Mnemonic string `toml:"mnemonic" mapstructure:"mnemonic" json:"mnemonic"`
	// KMD adapter.
	KmdURL      string `toml:"kmd_url" mapstructure:"kmd_url" json:"kmd_url"`
	KmdToken    string `toml:"kmd_token" mapstructure:"kmd_token" json:"kmd_token"`
	KmdWallet   string `toml:"kmd_wallet" mapstructure:"kmd_wallet" json:"kmd_wallet"`
	KmdPassword string `toml:"kmd_password" mapstructure:"kmd_password" json:"kmd_password"`
}

// Relay points at the mint relay daemon.
type Relay struct {
	URL string `toml:"url" mapstructure:"url" json:"url"`
}

// Store locates the durable local state file.
type Store struct {
	Path string `toml:"path" mapstructure:"path" json:"path"`
}

// UnmarshalConfig loads and parses the toml config at path.
func UnmarshalConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed on read config file")
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed on unmarshal config")
	}
	if c.Algod.URL == "" {
		return nil, errors.New("algod.url is required")
	}
	if c.Algod.Network == "" {
		return nil, errors.New("algod.network is required")
	}
	return &c, nil
}
