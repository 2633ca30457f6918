package bitcli

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/psygate/bitvectors/config"
)

const (
	defaultConfigFileName = "config.toml"
	defaultDataDirName    = "data"
)

var (
	defaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), "bitvectors")
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFileName)
)

type Config struct {
	CLICfg  *CLIConfig     `mapstructure:"cli"`
	BitsCfg *config.Config `mapstructure:"bits"`
}

func defaultConfig() *Config {
	return &Config{
		CLICfg:  defaultCLIConfig(),
		BitsCfg: config.DefaultConfig(),
	}
}

type CLIConfig struct {
	HomeDir    string `mapstructure:"homedir"`
	ConfigFile string `mapstructure:"config"`
}

func defaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		HomeDir:    defaultHomeDir,
		ConfigFile: defaultConfigFile,
	}
}

func loadConfig(cmd *cobra.Command) (*Config, error) {
	// Read in default config if passed as param using viper.
	fileLocation := smutil.GetCanonicalPath(viper.GetString("config"))
	vip := viper.New()

	// A missing config file is not an error; defaults and flags apply.
	_ = loadConfigFile(fileLocation, vip)

	cfg := defaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Ensure cli args are higher priority than the config file.
	ensureCLIFlags(cmd, cfg)

	cfg.CLICfg.HomeDir = smutil.GetCanonicalPath(cfg.CLICfg.HomeDir)
	cfg.BitsCfg.DataDir = smutil.GetCanonicalPath(cfg.BitsCfg.DataDir)

	// If the provided home directory is not the default and no data directory
	// was given, the data directory lives within the home directory.
	if cfg.CLICfg.HomeDir != defaultHomeDir && !flagChanged(cmd, "datadir") {
		cfg.BitsCfg.DataDir = filepath.Join(cfg.CLICfg.HomeDir, defaultDataDirName)
	}

	if err := cfg.BitsCfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		fileLocation = defaultConfigFile
	}

	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func setFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.PersistentFlags()

	// CLI config.

	flags.StringVar(&cfg.CLICfg.ConfigFile, "config",
		cfg.CLICfg.ConfigFile, "Path to configuration file")

	flags.StringVar(&cfg.CLICfg.HomeDir, "homedir",
		cfg.CLICfg.HomeDir, "The directory that contains the data and the configuration file")

	// Bits config.

	flags.StringVar(&cfg.BitsCfg.DataDir, "datadir",
		cfg.BitsCfg.DataDir, "Directory that relative file arguments resolve against")

	flags.StringVar(&cfg.BitsCfg.LogLevel, "log-level",
		cfg.BitsCfg.LogLevel, "Log level (debug, info, warn, error)")

	flags.IntVar(&cfg.BitsCfg.BufferSize, "buffer-size",
		cfg.BitsCfg.BufferSize, "Size in bytes of the file buffers")

	flags.IntVar(&cfg.BitsCfg.FieldWidth, "field-width",
		cfg.BitsCfg.FieldWidth, "Width in bits of the fields printed by the fields command")

	flags.Uint64Var(&cfg.BitsCfg.MinFreeSpace, "min-free-space",
		cfg.BitsCfg.MinFreeSpace, "Bytes that must stay free on the data volume after a write")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func ensureCLIFlags(cmd *cobra.Command, cfg *Config) {
	assignFields := func(p reflect.Type, elem reflect.Value, name string) {
		for i := 0; i < p.NumField(); i++ {
			if p.Field(i).Tag.Get("mapstructure") == name {
				var val interface{}
				switch p.Field(i).Type.String() {
				case "bool":
					val = viper.GetBool(name)
				case "string":
					val = viper.GetString(name)
				case "int":
					val = viper.GetInt(name)
				case "uint64":
					val = viper.GetUint64(name)
				default:
					val = viper.Get(name)
				}

				elem.Field(i).Set(reflect.ValueOf(val))
				return
			}
		}
	}

	// viper can't handle nested structs when deserializing flags.
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			name := f.Name

			ff := reflect.TypeOf(*cfg.CLICfg)
			elem := reflect.ValueOf(cfg.CLICfg).Elem()
			assignFields(ff, elem, name)

			ff = reflect.TypeOf(*cfg.BitsCfg)
			elem = reflect.ValueOf(cfg.BitsCfg).Elem()
			assignFields(ff, elem, name)
		}
	})
}
