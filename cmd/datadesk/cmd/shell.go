package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/oneconcern/datadesk/pkg/pipeline"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const shellPrompt = "datadesk> "

// prompter reads lines typed by a user
type prompter interface {
	Prompt(string) (string, error)
	AppendHistory(string)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Transform a dataset interactively",
	Long: `Open an interactive session on a dataset.

Type the same steps as in a script, one per line, e.g.:

  fill auto
  checkpoint filled
  replace region "N/A" North
  rollback filled

Type help for the list of commands, exit or Ctrl-D to leave.`,
	Example: `datadesk shell --input sales.csv --output cleaned.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		d, err := newDesk(cmd.OutOrStdout(), datadeskFlags.data.input)
		if err != nil {
			wrapFatalln("open dataset", err)
			return
		}
		defer d.close()

		cli := liner.NewLiner()
		cli.SetCtrlCAborts(true)
		cli.SetCompleter(complete)

		runShell(cmd.Context(), cli, d, cmd.OutOrStdout())
		_ = cli.Close()

		if pth := datadeskFlags.data.output; pth != "" {
			if err = d.loader.Save(pth, d.session.Data()); err != nil {
				wrapFatalln("save dataset", err)
			}
		}
	},
}

func init() {
	requireFlags(shellCmd, addInputFlag(shellCmd))
	addOutputFlag(shellCmd)

	rootCmd.AddCommand(shellCmd)
}

func complete(line string) []string {
	if strings.ContainsAny(line, " \t") {
		return nil
	}
	suggests := pipeline.Complete(line)
	for i, s := range suggests {
		suggests[i] = s + " "
	}
	return suggests
}

func runShell(ctx context.Context, p prompter, d *desk, out io.Writer) {
	runner := pipeline.New(d.session,
		pipeline.Logger(d.l),
		pipeline.Tracer(opentracing.GlobalTracer()),
		pipeline.WithReporter(d.printer),
		pipeline.WithSaver(d.loader),
	)

	_ = d.printer.Status(d.session.Status())
	fmt.Fprintln(out, "Type help for usage.")

	for {
		line, err := p.Prompt(shellPrompt)
		if err != nil {
			// io.EOF or liner.ErrPromptAborted
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p.AppendHistory(line)

		switch strings.ToLower(line) {
		case "exit", "quit":
			return
		case "help":
			usage(out)
			continue
		}

		step, err := pipeline.ParseLine(line)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}

		res := runner.Exec(ctx, step)
		switch {
		case res.Err != nil:
			fmt.Fprintln(out, "error:", res.Err)
		case res.Change != nil:
			_ = d.printer.Change(*res.Change)
		case res.Restored != nil:
			_ = d.printer.Restored(*res.Restored)
		}
	}
	fmt.Fprintln(out)
}

func usage(out io.Writer) {
	for _, cmd := range pipeline.Commands {
		fmt.Fprintf(out, "  %-36s %s\n", cmd.Usage, cmd.Info)
	}
	fmt.Fprintf(out, "  %-36s %s\n", "help", "show this help")
	fmt.Fprintf(out, "  %-36s %s\n", "exit", "leave the shell")
}
