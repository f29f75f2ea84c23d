package cmd

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/oneconcern/datadesk/pkg/ingest"
	"github.com/oneconcern/datadesk/pkg/versioned"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const (
	testInput = `region,sales
North,100
South,
,300
North,100
`
	testScript = `
- op: fill
  strategy: auto
- op: checkpoint
  name: filled
- op: clean
- op: rollback
  name: filled
- op: replace
  column: region
  target: North
  replacement: N
`
	lockedScript = `
- op: clean
- op: rollback
`
)

func writeFixtures(t *testing.T, fs afero.Fs, script string) {
	require.NoError(t, afero.WriteFile(fs, "/data/sales.csv", []byte(testInput), 0600))
	require.NoError(t, afero.WriteFile(fs, "/data/steps.yaml", []byte(script), 0600))
}

func TestRun(t *testing.T) {
	exitMocks, fs := setupCLI(t)
	writeFixtures(t, fs, testScript)

	out := execute(t, "run",
		"--input", "/data/sales.csv",
		"--script", "/data/steps.yaml",
		"--output", "/out/cleaned.json",
		"--report", "/out/report.txt",
		"--format", "json",
	)
	require.Equal(t, 0, exitMocks.fatalCalls())

	var st versioned.Status
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(out), &st))
	assert.Equal(t, 2, st.CurrentIndex)
	assert.Equal(t, 3, st.TotalVersions)
	assert.Equal(t, []string{"filled", versioned.InitialCheckpoint}, st.Checkpoints)
	assert.True(t, st.RollbackAllowed)

	saved, err := ingest.New(fs).Load("/out/cleaned.json")
	require.NoError(t, err)
	assert.Equal(t, 4, saved.NumRows())
	assert.Equal(t, 0, saved.NullCount())
	region, err := saved.Column("region")
	require.NoError(t, err)
	assert.Equal(t, "N", region[2].V)

	report, err := afero.ReadFile(fs, "/out/report.txt")
	require.NoError(t, err)
	assert.Contains(t, string(report), "4 rows, 2 columns, 0 null values")
	assert.Contains(t, string(report), "* 2. Replaced North -> N in region")
}

func TestRunLocked(t *testing.T) {
	exitMocks, fs := setupCLI(t)
	writeFixtures(t, fs, lockedScript)

	execute(t, "run", "--input", "/data/sales.csv", "--script", "/data/steps.yaml", "--locked")
	assert.Equal(t, []int{exitLocked}, exitMocks.exitStatuses)
}

func TestRunContinueOnError(t *testing.T) {
	exitMocks, fs := setupCLI(t)
	writeFixtures(t, fs, lockedScript+"  continue_on_error: true\n")
	t.Setenv("DATADESK_SESSION_LOCKED", "true")

	out := execute(t, "run", "--input", "/data/sales.csv", "--script", "/data/steps.yaml")
	assert.Equal(t, 0, exitMocks.fatalCalls())
	assert.Contains(t, out, "Data version:  1 of 1")
	assert.Contains(t, out, "rollback forbidden")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		args   []string
	}{
		{name: "missing script", args: []string{"--script", "/data/nowhere.yaml"}},
		{name: "invalid script", script: "- op: shuffle", args: []string{"--script", "/data/steps.yaml"}},
		{name: "missing input", script: testScript, args: []string{"--script", "/data/steps.yaml", "--input", "/data/nowhere.csv"}},
		{name: "unknown column", script: "- op: replace\n  column: city", args: []string{"--script", "/data/steps.yaml"}},
		{name: "bad format", script: testScript, args: []string{"--script", "/data/steps.yaml", "--format", "xml"}},
	}

	for _, tts := range tests {
		tt := tts
		t.Run(tt.name, func(t *testing.T) {
			exitMocks, fs := setupCLI(t)
			writeFixtures(t, fs, tt.script)

			args := append([]string{"run", "--input", "/data/sales.csv"}, tt.args...)
			execute(t, args...)
			assert.Equal(t, []int{exitFailure}, exitMocks.exitStatuses)
		})
	}
}

func TestRunRequiredFlags(t *testing.T) {
	_, _ = setupCLI(t)
	rootCmd.SetOut(ioutil.Discard)
	rootCmd.SetErr(ioutil.Discard)
	rootCmd.SetArgs([]string{"run", "--input", "/data/sales.csv"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"script" not set`)
}

func TestMetricsTextfile(t *testing.T) {
	exitMocks, fs := setupCLI(t)
	writeFixtures(t, fs, testScript)
	textfile := filepath.Join(t.TempDir(), "datadesk.prom")
	t.Setenv("DATADESK_METRICS_TEXTFILE", textfile)

	execute(t, "run", "--input", "/data/sales.csv", "--script", "/data/steps.yaml")
	require.Equal(t, 0, exitMocks.fatalCalls())

	content, err := ioutil.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "datadesk_commits_total 3")
	assert.Contains(t, string(content), `datadesk_rollbacks_total{outcome="rolled back"} 1`)
}

func TestConfigDump(t *testing.T) {
	_, _ = setupCLI(t)
	cfgFile := filepath.Join(t.TempDir(), "datadesk.yaml")
	require.NoError(t, ioutil.WriteFile(cfgFile, []byte("history:\n  warn_bytes: 1GB\nsession:\n  locked: true\n"), 0600))
	t.Setenv("DATADESK_CONFIG", cfgFile)
	t.Setenv("DATADESK_OUTPUT_FORMAT", "yaml")

	out := execute(t, "config", "dump", "--loglevel", "debug")

	var dumped map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &dumped))
	assert.Equal(t, "debug", dumped["log"]["level"])
	assert.Equal(t, 50, dumped["history"]["warn_versions"])
	assert.Equal(t, "1GiB", dumped["history"]["warn_bytes"])
	assert.Equal(t, true, dumped["session"]["locked"])
	assert.Equal(t, "yaml", dumped["output"]["format"])
	assert.Equal(t, ByteSize(1<<30), config.History.WarnBytes)
}

func TestByteSizeHook(t *testing.T) {
	to := reflect.TypeOf(ByteSize(0))
	tests := []struct {
		in      interface{}
		want    interface{}
		wantErr bool
	}{
		{in: "512MB", want: ByteSize(512 << 20)},
		{in: "1gb", want: ByteSize(1 << 30)},
		{in: "2048", want: ByteSize(2048)},
		{in: "lots", wantErr: true},
		{in: 42, want: 42},
	}

	for _, tts := range tests {
		tt := tts
		t.Run(reflect.ValueOf(tt.in).String(), func(t *testing.T) {
			got, err := byteSizeHook(reflect.TypeOf(tt.in), to, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := byteSizeHook(reflect.TypeOf(""), reflect.TypeOf(""), "512MB")
	require.NoError(t, err)
	assert.Equal(t, "512MB", got)
}

func TestShell(t *testing.T) {
	_, fs := setupCLI(t)
	writeFixtures(t, fs, testScript)
	initConfig()

	var out bytes.Buffer
	d, err := newDesk(&out, "/data/sales.csv")
	require.NoError(t, err)
	defer d.close()

	p := &mockPrompter{}
	for _, line := range []string{
		"fill constant 0",
		"",
		"checkpoint filled",
		"shuffle",
		"rollback nowhere",
		"clean",
		"rollback filled",
		"save /out/filled.csv",
		"status",
		"help",
		"exit",
	} {
		p.On("Prompt", shellPrompt).Return(line, nil).Once()
	}

	runShell(context.Background(), p, d, &out)
	p.AssertExpectations(t)
	assert.Len(t, p.history, 10)

	shown := out.String()
	assert.Contains(t, shown, "Type help for usage.")
	assert.Contains(t, shown, "version 1: Global Null Imputation (constant) (2 affected)")
	assert.Contains(t, shown, "error: unknown operation: shuffle")
	assert.Contains(t, shown, `checkpoint "nowhere" not found: no action taken`)
	assert.Contains(t, shown, "version 2: Cleaned 1 rows (1 affected)")
	assert.Contains(t, shown, "rolled back to version 1")
	assert.Contains(t, shown, "Data version:  1 of 2")
	assert.Contains(t, shown, "replace COLUMN TARGET REPLACEMENT")

	saved, err := ingest.New(fs).Load("/out/filled.csv")
	require.NoError(t, err)
	assert.True(t, saved.Equal(d.session.Data()))
}

func TestShellEOF(t *testing.T) {
	_, fs := setupCLI(t)
	writeFixtures(t, fs, testScript)
	initConfig()

	var out bytes.Buffer
	d, err := newDesk(&out, "/data/sales.csv")
	require.NoError(t, err)

	p := &mockPrompter{}
	p.On("Prompt", shellPrompt).Return("lock", nil).Once()
	p.On("Prompt", shellPrompt).Return("rollback", nil).Once()
	p.On("Prompt", shellPrompt).Return("", io.EOF).Once()

	runShell(context.Background(), p, d, &out)
	p.AssertExpectations(t)
	assert.Contains(t, out.String(), "error: rollback is currently disabled by administrative policy")
}

func TestComplete(t *testing.T) {
	assert.Equal(t, []string{"checkpoint ", "clean "}, complete("c"))
	assert.Equal(t, []string{"rollback "}, complete("ro"))
	assert.Nil(t, complete("fill a"))
}

func TestVersion(t *testing.T) {
	_, _ = setupCLI(t)
	out := execute(t, "version")
	assert.Contains(t, out, "Version: dev")
}
