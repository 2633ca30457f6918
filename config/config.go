package config

import (
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"go.uber.org/zap/zapcore"

	"github.com/psygate/bitvectors/shared"
)

const (
	MinBufferSize = 16
	MaxBufferSize = 1 << 26

	MinFieldWidth = 1
	MaxFieldWidth = shared.LongBits
)

const (
	DefaultDataDirName  = "data"
	DefaultLogLevel     = "info"
	DefaultBufferSize   = 1 << 12
	DefaultFieldWidth   = 8
	DefaultMinFreeSpace = 1 << 20
)

var (
	DefaultDataDir = filepath.Join(smutil.GetUserHomeDirectory(), "bitvectors", DefaultDataDirName)
)

type Config struct {
	DataDir    string `mapstructure:"datadir"`
	LogLevel   string `mapstructure:"log-level"`
	BufferSize int    `mapstructure:"buffer-size"`

	// Width in bits of the fields read by the fields command.
	FieldWidth int `mapstructure:"field-width"`

	// Bytes that must stay free on the data volume after a write.
	MinFreeSpace uint64 `mapstructure:"min-free-space"`
}

func (cfg *Config) Validate() error {
	if cfg.DataDir == "" {
		return fmt.Errorf("invalid `DataDir`; expected: a path, given: %q", cfg.DataDir)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid `LogLevel`; expected: debug, info, warn or error, given: %q", cfg.LogLevel)
	}

	if cfg.BufferSize < MinBufferSize {
		return fmt.Errorf("invalid `BufferSize`; expected: >= %d, given: %d", MinBufferSize, cfg.BufferSize)
	}

	if cfg.BufferSize > MaxBufferSize {
		return fmt.Errorf("invalid `BufferSize`; expected: <= %d, given: %d", MaxBufferSize, cfg.BufferSize)
	}

	if cfg.FieldWidth < MinFieldWidth || cfg.FieldWidth > MaxFieldWidth {
		return fmt.Errorf("invalid `FieldWidth`; expected: %d..%d, given: %d", MinFieldWidth, MaxFieldWidth, cfg.FieldWidth)
	}

	return nil
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:      DefaultDataDir,
		LogLevel:     DefaultLogLevel,
		BufferSize:   DefaultBufferSize,
		FieldWidth:   DefaultFieldWidth,
		MinFreeSpace: DefaultMinFreeSpace,
	}
}
