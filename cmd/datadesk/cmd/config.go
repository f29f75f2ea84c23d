package cmd

import (
	"reflect"

	"github.com/docker/go-units"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ByteSize is a size in bytes, configured as a human-readable string such as "512MB"
type ByteSize int64

// MarshalYAML renders a size in human-readable binary units
func (b ByteSize) MarshalYAML() (interface{}, error) {
	return units.BytesSize(float64(b)), nil
}

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	Log struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"log" yaml:"log"`

	History struct {
		WarnVersions int      `mapstructure:"warn_versions" yaml:"warn_versions"`
		WarnBytes    ByteSize `mapstructure:"warn_bytes" yaml:"warn_bytes"`
	} `mapstructure:"history" yaml:"history"`

	Session struct {
		Locked bool `mapstructure:"locked" yaml:"locked"`
	} `mapstructure:"session" yaml:"session"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"output" yaml:"output"`

	Metrics struct {
		Textfile string `mapstructure:"textfile" yaml:"textfile,omitempty"`
	} `mapstructure:"metrics" yaml:"metrics"`
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("history.warn_versions", 50)
	v.SetDefault("history.warn_bytes", "512MB")
	v.SetDefault("session.locked", false)
	v.SetDefault("output.format", "desk")
	v.SetDefault("metrics.textfile", "")
}

func newConfig(v *viper.Viper) (*CLIConfig, error) {
	var config CLIConfig
	err := v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		byteSizeHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// byteSizeHook parses human-readable sizes, in binary units: "512MB" is 512 MiB
func byteSizeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(ByteSize(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	size, err := units.RAMInBytes(data.(string))
	if err != nil {
		return nil, err
	}
	return ByteSize(size), nil
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to inspect the datadesk configuration",
	Long: `Commands to inspect the datadesk CLI configuration.

Configuration is read from datadesk.yaml, in the current directory, $HOME/.datadesk or /etc/datadesk.
Set DATADESK_CONFIG to use another file. Any key may be overridden by an environment variable
prefixed with DATADESK_, e.g. DATADESK_HISTORY_WARN_BYTES=1GB.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
