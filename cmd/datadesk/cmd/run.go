package cmd

import (
	"time"

	"github.com/oneconcern/datadesk/pkg/errors"
	"github.com/oneconcern/datadesk/pkg/pipeline"
	"github.com/oneconcern/datadesk/pkg/report"
	vstatus "github.com/oneconcern/datadesk/pkg/versioned/status"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a script of transformations on a dataset",
	Long: `Run a YAML script of transformations on a dataset.

Each step of the script commits a new version of the dataset, creates a checkpoint, rolls back,
locks rollbacks, shows the state of the session or saves the dataset.

A rollback to an unknown checkpoint is reported and skipped. A rollback refused because rollbacks
are locked stops the script with exit code 3, unless the step sets continue_on_error.`,
	Example: `datadesk run --input sales.csv --script clean.yaml --output cleaned.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		steps, err := pipeline.Load(appFs, datadeskFlags.run.script)
		if err != nil {
			wrapFatalln("load script", err)
			return
		}

		d, err := newDesk(cmd.OutOrStdout(), datadeskFlags.data.input)
		if err != nil {
			wrapFatalln("open dataset", err)
			return
		}
		defer d.close()

		runner := pipeline.New(d.session,
			pipeline.Logger(d.l),
			pipeline.Tracer(opentracing.GlobalTracer()),
			pipeline.WithReporter(d.printer),
			pipeline.WithSaver(d.loader),
		)
		if _, err = runner.Run(cmd.Context(), steps); err != nil {
			d.close()
			if errors.Is(err, vstatus.ErrLocked) {
				wrapFatalWithCodef(exitLocked, "%v", err)
				return
			}
			wrapFatalWithCodef(exitFailure, "%v", err)
			return
		}

		if pth := datadeskFlags.data.output; pth != "" {
			if err = d.loader.Save(pth, d.session.Data()); err != nil {
				wrapFatalln("save dataset", err)
				return
			}
		}

		if pth := datadeskFlags.run.report; pth != "" {
			if err = report.WriteFile(appFs, pth, report.Summarize(d.session, time.Now().UTC())); err != nil {
				wrapFatalln("write report", err)
				return
			}
		}

		if err = d.printer.Status(d.session.Status()); err != nil {
			wrapFatalln("show status", err)
		}
	},
}

func init() {
	requireFlags(runCmd, addInputFlag(runCmd), addScriptFlag(runCmd))
	addOutputFlag(runCmd)
	addReportFlag(runCmd)

	rootCmd.AddCommand(runCmd)
}
