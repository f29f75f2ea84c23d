package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configDump = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration",
	Long:  "Print the effective configuration as YAML, after merging the config file, environment variables and flags.",
	Run: func(cmd *cobra.Command, args []string) {
		o, err := yaml.Marshal(config)
		if err != nil {
			wrapFatalln("serialize config to yaml", err)
			return
		}
		_, _ = cmd.OutOrStdout().Write(o)
	},
}

func init() {
	configCmd.AddCommand(configDump)
}
