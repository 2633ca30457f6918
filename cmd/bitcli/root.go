// Package bitcli implements the bitcli command, a file tool for packed bit
// vectors and LSB-first bit streams.
package bitcli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/psygate/bitvectors/persistence"
)

// Cmd is the root command.
var Cmd = NewCmd()

// NewCmd builds a fresh command tree.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bitcli",
		Short:         "pack, inspect and edit bit vector files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	setFlags(cmd, defaultConfig())

	cmd.AddCommand(
		newPackCmd(),
		newUnpackCmd(),
		newFieldsCmd(),
		newReplaceCmd(),
		newInfoCmd(),
		newConfigCmd(),
	)
	return cmd
}

// env is what every subcommand needs once the config is loaded.
type env struct {
	cfg    *Config
	logger *zap.Logger
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := buildLogger(cfg.BitsCfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("datadir", cfg.BitsCfg.DataDir),
		zap.Int("buffer-size", cfg.BitsCfg.BufferSize),
		zap.Int("field-width", cfg.BitsCfg.FieldWidth),
	)
	return &env{cfg: cfg, logger: logger}, nil
}

// path resolves a file argument against the data directory.
func (e *env) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(e.cfg.BitsCfg.DataDir, name)
}

func (e *env) persistenceOpts() []persistence.Option {
	return []persistence.Option{
		persistence.WithLogger(e.logger),
		persistence.WithBufferSize(e.cfg.BitsCfg.BufferSize),
	}
}

// buildLogger returns a console logger writing to stderr, so that command
// output on stdout stays machine readable.
func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(lvl),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}
