package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datadesk",
	Short: "Datadesk transforms tabular datasets with a full version history",
	Long: `Datadesk transforms tabular datasets with a full version history.

Every transformation (null imputation, cleaning, value replacement) commits a new version of the dataset.
Versions may be named with checkpoints, and the dataset rolled back to any of them, unless rollbacks
are locked by policy.

Transformations are either scripted (datadesk run) or typed in an interactive shell (datadesk shell).
`,
	SilenceUsage: true,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevel(rootCmd)
	addFormatFlag(rootCmd)
	addLockedFlag(rootCmd)
	bindConfigFlags()
}

// bindConfigFlags lets the persistent flags override the configuration
func bindConfigFlags() {
	flags := rootCmd.PersistentFlags()
	bindConfigFlag(flags, "loglevel", "log.level")
	bindConfigFlag(flags, "format", "output.format")
	bindConfigFlag(flags, "locked", "session.locked")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	v := viper.GetViper()
	setConfigDefaults(v)
	if os.Getenv("DATADESK_CONFIG") != "" {
		v.SetConfigFile(os.Getenv("DATADESK_CONFIG"))
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.datadesk")
		v.AddConfigPath("/etc/datadesk")
		v.SetConfigName("datadesk")
	}

	v.SetEnvPrefix("datadesk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		log.Println("Using config file:", v.ConfigFileUsed())
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
		wrapFatalln("read config file", err)
		return
	}

	var err error
	config, err = newConfig(v)
	if err != nil {
		wrapFatalln("invalid configuration", err)
	}
}
