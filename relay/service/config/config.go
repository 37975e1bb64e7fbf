package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/asaworks/asa-studio/base/logger/xzap"
	"github.com/asaworks/asa-studio/base/pinning"
)

type Config struct {
	Api     Api            `toml:"api" mapstructure:"api" json:"api"`
	Monitor Monitor        `toml:"monitor" mapstructure:"monitor" json:"monitor"`
	Log     xzap.LogConf   `toml:"log" mapstructure:"log" json:"log"`
	Pinning pinning.Config `toml:"pinning" mapstructure:"pinning" json:"pinning"`
	Cors    Cors           `toml:"cors" mapstructure:"cors" json:"cors"`
	DB      DB             `toml:"db" mapstructure:"db" json:"db"`
}

type Api struct {
	Port string `toml:"port" mapstructure:"port" json:"port"`
	// MaxFileSize caps one upload, in bytes. Zero means the 10MB default.
	MaxFileSize int64 `toml:"max_file_size" mapstructure:"max_file_size" json:"max_file_size"`
}

type Monitor struct {
	PprofEnable bool  `toml:"pprof_enable" mapstructure:"pprof_enable" json:"pprof_enable"`
	PprofPort   int64 `toml:"pprof_port" mapstructure:"pprof_port" json:"pprof_port"`
}

// Cors is the relay's origin policy. Localhost is always allowed, as is any
// subdomain of PreviewSuffix; AllowedOrigins lists exact additional origins.
type Cors struct {
	AllowedOrigins []string `toml:"allowed_origins" mapstructure:"allowed_origins" json:"allowed_origins"`
	PreviewSuffix  string   `toml:"preview_suffix" mapstructure:"preview_suffix" json:"preview_suffix"`
}

// DB locates the pin audit database file.
type DB struct {
	Path string `toml:"path" mapstructure:"path" json:"path"`
}

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
	if c.Pinning.BaseURL == "" {
		return nil, errors.New("pinning.base_url is required")
	}
	return &c, nil
}
