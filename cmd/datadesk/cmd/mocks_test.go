package cmd

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ExitMocks struct {
	exitStatuses []int
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	fmt.Printf(format+"\n", v...)
	m.exitStatuses = append(m.exitStatuses, exitFailure)
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	fmt.Println(v...)
	m.exitStatuses = append(m.exitStatuses, exitFailure)
}

func (m *ExitMocks) Exit(code int) {
	m.exitStatuses = append(m.exitStatuses, code)
}

func (m *ExitMocks) fatalCalls() int {
	return len(m.exitStatuses)
}

func NewExitMocks() *ExitMocks {
	return &ExitMocks{
		exitStatuses: make([]int, 0),
	}
}

// mockPrompter replays the lines typed in a shell
type mockPrompter struct {
	mock.Mock
	history []string
}

func (m *mockPrompter) Prompt(prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}

func (m *mockPrompter) AppendHistory(line string) {
	m.history = append(m.history, line)
}

// setupCLI isolates a test from the environment: in-memory file system,
// no config file, mocked exits and fresh flags.
func setupCLI(t *testing.T) (*ExitMocks, afero.Fs) {
	exitMocks := NewExitMocks()
	logFatalln = exitMocks.Fatalln
	logFatalf = exitMocks.Fatalf
	osExit = exitMocks.Exit

	fs := afero.NewMemMapFs()
	appFs = fs

	t.Setenv("HOME", t.TempDir())
	t.Setenv("DATADESK_CONFIG", "")
	t.Setenv("DATADESK_LOG_LEVEL", "none")
	color.NoColor = true

	viper.Reset()
	bindConfigFlags()
	resetFlags(rootCmd)

	t.Cleanup(func() {
		logFatalln = log.Fatalln
		logFatalf = log.Fatalf
		osExit = os.Exit
		appFs = afero.NewOsFs()
	})
	return exitMocks, fs
}

// resetFlags restores the default value of all flags of a command tree
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) string {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}
