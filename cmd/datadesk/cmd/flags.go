package cmd

import (
	"github.com/oneconcern/datadesk/pkg/report"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type flagsT struct {
	root struct {
		logLevel string
		format   string
		locked   bool
	}
	data struct {
		input  string
		output string
	}
	run struct {
		script string
		report string
	}
}

var datadeskFlags = flagsT{}

func addLogLevel(cmd *cobra.Command) string {
	c := "loglevel"
	cmd.PersistentFlags().StringVar(&datadeskFlags.root.logLevel, c, "info", "The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return c
}

func addFormatFlag(cmd *cobra.Command) string {
	c := "format"
	cmd.PersistentFlags().StringVar(&datadeskFlags.root.format, c, string(report.Desk), "Output format: desk, yaml or json")
	return c
}

func addLockedFlag(cmd *cobra.Command) string {
	c := "locked"
	cmd.PersistentFlags().BoolVar(&datadeskFlags.root.locked, c, false, "Start the session with rollbacks locked")
	return c
}

func addInputFlag(cmd *cobra.Command) string {
	c := "input"
	cmd.Flags().StringVarP(&datadeskFlags.data.input, c, "i", "", "The dataset to work on (.csv or .json)")
	return c
}

func addOutputFlag(cmd *cobra.Command) string {
	c := "output"
	cmd.Flags().StringVarP(&datadeskFlags.data.output, c, "o", "", "Where to save the final dataset (.csv or .json)")
	return c
}

func addScriptFlag(cmd *cobra.Command) string {
	c := "script"
	cmd.Flags().StringVarP(&datadeskFlags.run.script, c, "s", "", "The YAML script of steps to run")
	return c
}

func addReportFlag(cmd *cobra.Command) string {
	c := "report"
	cmd.Flags().StringVar(&datadeskFlags.run.report, c, "", "Write a plain-text report of the session to this file")
	return c
}

func requireFlags(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			wrapFatalln("mark required flag "+flag, err)
		}
	}
}

func bindConfigFlag(fs *pflag.FlagSet, flag, key string) {
	if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
		wrapFatalln("bind flag "+flag, err)
	}
}
