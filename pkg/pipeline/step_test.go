package pipeline

import (
	"io"
	"testing"

	"github.com/oneconcern/datadesk/pkg/errors"
	"github.com/oneconcern/datadesk/pkg/pipeline/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Step
		wantErr error
	}{
		{name: "clean", line: "clean", want: Step{Op: OpClean}},
		{name: "case insensitive", line: "  CLEAN ", want: Step{Op: OpClean}},
		{name: "fill default", line: "fill", want: Step{Op: OpFill}},
		{name: "fill auto", line: "fill auto", want: Step{Op: OpFill, Strategy: "auto"}},
		{name: "fill constant", line: `fill constant "not given"`, want: Step{Op: OpFill, Strategy: "constant", Constant: strPtr("not given")}},
		{name: "fill constant empty", line: `fill constant ""`, want: Step{Op: OpFill, Strategy: "constant", Constant: strPtr("")}},
		{name: "replace", line: `replace region "New York" NY`, want: Step{Op: OpReplace, Column: "region", Target: "New York", Replacement: "NY"}},
		{name: "extra spaces", line: "replace  region   a  b", want: Step{Op: OpReplace, Column: "region", Target: "a", Replacement: "b"}},
		{name: "checkpoint", line: "checkpoint filled", want: Step{Op: OpCheckpoint, Name: "filled"}},
		{name: "rollback", line: "rollback", want: Step{Op: OpRollback}},
		{name: "rollback to", line: "rollback filled", want: Step{Op: OpRollback, Name: "filled"}},
		{name: "save", line: "save out/data.json", want: Step{Op: OpSave, Path: "out/data.json"}},
		{name: "lock", line: "lock", want: Step{Op: OpLock}},
		{name: "unlock", line: "unlock", want: Step{Op: OpUnlock}},
		{name: "status", line: "status", want: Step{Op: OpStatus}},
		{name: "log", line: "log", want: Step{Op: OpLog}},
		{name: "unknown", line: "drop everything", wantErr: status.ErrUnknownOp},
		{name: "fill bad strategy", line: "fill median", wantErr: status.ErrMissingArgument},
		{name: "fill constant without value", line: "fill constant", wantErr: status.ErrMissingArgument},
		{name: "replace missing args", line: "replace region a", wantErr: status.ErrMissingArgument},
		{name: "checkpoint missing name", line: "checkpoint", wantErr: status.ErrMissingArgument},
		{name: "rollback too many", line: "rollback a b", wantErr: status.ErrMissingArgument},
		{name: "status with args", line: "status now", wantErr: status.ErrMissingArgument},
		{name: "unbalanced quotes", line: `replace region "a b`, wantErr: status.ErrMissingArgument},
		{name: "empty", line: "   ", wantErr: io.EOF},
	}

	for _, tts := range tests {
		tt := tts
		t.Run(tt.name, func(t *testing.T) {
			step, err := ParseLine(tt.line)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, step)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		wantErr error
	}{
		{name: "fill", step: Step{Op: OpFill}},
		{name: "fill constant", step: Step{Op: OpFill, Strategy: "constant", Constant: strPtr("0")}},
		{name: "fill constant missing", step: Step{Op: OpFill, Strategy: "constant"}, wantErr: status.ErrMissingArgument},
		{name: "replace missing column", step: Step{Op: OpReplace, Target: "a"}, wantErr: status.ErrMissingArgument},
		{name: "checkpoint missing name", step: Step{Op: OpCheckpoint}, wantErr: status.ErrMissingArgument},
		{name: "save missing path", step: Step{Op: OpSave}, wantErr: status.ErrMissingArgument},
		{name: "empty op", step: Step{}, wantErr: status.ErrUnknownOp},
	}

	for _, tts := range tests {
		tt := tts
		t.Run(tt.name, func(t *testing.T) {
			err := tt.step.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
		})
	}
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "fill auto", Step{Op: OpFill}.String())
	assert.Equal(t, `fill constant "0"`, Step{Op: OpFill, Strategy: "constant", Constant: strPtr("0")}.String())
	assert.Equal(t, `replace region "a" "b"`, Step{Op: OpReplace, Column: "region", Target: "a", Replacement: "b"}.String())
	assert.Equal(t, "rollback", Step{Op: OpRollback}.String())
	assert.Equal(t, "rollback filled", Step{Op: OpRollback, Name: "filled"}.String())
	assert.Equal(t, "save x.csv", Step{Op: OpSave, Path: "x.csv"}.String())
	assert.Equal(t, "status", Step{Op: OpStatus}.String())
}

func TestCommands(t *testing.T) {
	for i := 1; i < len(Commands); i++ {
		assert.Less(t, string(Commands[i-1].Op), string(Commands[i].Op), "commands must be sorted")
	}

	cmd, ok := Find("Rollback")
	require.True(t, ok)
	assert.Equal(t, OpRollback, cmd.Op)
	_, ok = Find("roll")
	assert.False(t, ok)

	assert.Equal(t, []string{"checkpoint", "clean"}, Complete("c"))
	assert.Equal(t, []string{"lock", "log"}, Complete("LO"))
	assert.Empty(t, Complete("x"))
	assert.Len(t, Complete(""), len(Commands))
}
