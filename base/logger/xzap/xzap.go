package xzap

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConf configures the shared zap logger. With an empty Path logs go to
// stderr only, which is what the dev loop wants.
type LogConf struct {
	Level      string `toml:"level" mapstructure:"level" json:"level"`
	Path       string `toml:"path" mapstructure:"path" json:"path"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups" json:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days" json:"max_age_days"`
	Compress   bool   `toml:"compress" mapstructure:"compress" json:"compress"`
}

// Xzap is a thin handle so call sites read xzap.WithContext(ctx).Info(...).
type Xzap struct {
	l *zap.Logger
}

var (
	mu     sync.RWMutex
	global = &Xzap{l: zap.NewNop()}
)

// SetUp builds the process logger from conf and installs it globally.
// Safe to call more than once; the last call wins.
func SetUp(conf LogConf) (*Xzap, error) {
	level := zapcore.InfoLevel
	if conf.Level != "" {
		if err := level.Set(conf.Level); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encCfg)

	sink := zapcore.AddSync(os.Stderr)
	if conf.Path != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   conf.Path,
			MaxSize:    conf.MaxSizeMB,
			MaxBackups: conf.MaxBackups,
			MaxAge:     conf.MaxAgeDays,
			Compress:   conf.Compress,
		})
	}

	l := zap.New(zapcore.NewCore(enc, sink, level), zap.AddCaller())

	mu.Lock()
	global = &Xzap{l: l}
	mu.Unlock()
	return global, nil
}

// WithContext returns the global logger. The context is accepted so call
// sites keep request scope in hand for future trace enrichment.
func WithContext(_ context.Context) *Xzap {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func (x *Xzap) Info(msg string, fields ...zap.Field)  { x.l.Info(msg, fields...) }
func (x *Xzap) Warn(msg string, fields ...zap.Field)  { x.l.Warn(msg, fields...) }
func (x *Xzap) Error(msg string, fields ...zap.Field) { x.l.Error(msg, fields...) }
func (x *Xzap) Debug(msg string, fields ...zap.Field) { x.l.Debug(msg, fields...) }
