package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oneconcern/datadesk/pkg/model"
	"github.com/oneconcern/datadesk/pkg/pipeline/status"
)

// Op is the operation run by a step
type Op string

// Supported operations
const (
	OpFill       Op = "fill"
	OpClean      Op = "clean"
	OpReplace    Op = "replace"
	OpCheckpoint Op = "checkpoint"
	OpRollback   Op = "rollback"
	OpLock       Op = "lock"
	OpUnlock     Op = "unlock"
	OpStatus     Op = "status"
	OpLog        Op = "log"
	OpSave       Op = "save"
)

// Step of a pipeline script.
//
// Only the fields relevant to the operation are used.
type Step struct {
	Op Op `yaml:"op" json:"op"`

	// Name of the checkpoint to create, or to roll back to. An empty name rolls back one version.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	Strategy string  `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Constant *string `yaml:"constant,omitempty" json:"constant,omitempty"`

	Column      string `yaml:"column,omitempty" json:"column,omitempty"`
	Target      string `yaml:"target,omitempty" json:"target,omitempty"`
	Replacement string `yaml:"replacement,omitempty" json:"replacement,omitempty"`

	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// ContinueOnError keeps the pipeline running when this step fails
	ContinueOnError bool `yaml:"continue_on_error,omitempty" json:"continue_on_error,omitempty"`
}

// Validate the arguments of a step
func (s Step) Validate() error {
	switch s.Op {
	case OpFill:
		strategy := model.FillStrategy(s.Strategy)
		if s.Strategy == "" {
			strategy = model.FillAuto
		}
		if !strategy.IsValid() {
			return status.ErrMissingArgument.WrapMessage(fmt.Sprintf("fill: unknown strategy %q", s.Strategy))
		}
		if strategy == model.FillConstant && s.Constant == nil {
			return status.ErrMissingArgument.WrapMessage("fill: constant strategy requires a constant")
		}
	case OpReplace:
		if s.Column == "" {
			return status.ErrMissingArgument.WrapMessage("replace: column is required")
		}
	case OpCheckpoint:
		if s.Name == "" {
			return status.ErrMissingArgument.WrapMessage("checkpoint: name is required")
		}
	case OpSave:
		if s.Path == "" {
			return status.ErrMissingArgument.WrapMessage("save: path is required")
		}
	case OpClean, OpRollback, OpLock, OpUnlock, OpStatus, OpLog:
	default:
		return status.ErrUnknownOp.WrapMessage(string(s.Op))
	}
	return nil
}

func (s Step) String() string {
	switch s.Op {
	case OpFill:
		if s.Constant != nil {
			return fmt.Sprintf("fill %s %q", s.strategy(), *s.Constant)
		}
		return fmt.Sprintf("fill %s", s.strategy())
	case OpReplace:
		return fmt.Sprintf("replace %s %q %q", s.Column, s.Target, s.Replacement)
	case OpCheckpoint, OpRollback:
		return strings.TrimSpace(fmt.Sprintf("%s %s", s.Op, s.Name))
	case OpSave:
		return fmt.Sprintf("save %s", s.Path)
	default:
		return string(s.Op)
	}
}

func (s Step) strategy() model.FillStrategy {
	if s.Strategy == "" {
		return model.FillAuto
	}
	return model.FillStrategy(s.Strategy)
}

// Command describes an operation for interactive use
type Command struct {
	Op    Op
	Info  string
	Usage string
}

// Commands available to a shell, sorted by name
var Commands = []Command{
	{OpCheckpoint, "name the current version", "checkpoint NAME"},
	{OpClean, "drop rows with nulls, then duplicate rows", "clean"},
	{OpFill, "impute null values", "fill [auto | constant VALUE]"},
	{OpLock, "disable rollbacks", "lock"},
	{OpLog, "show all versions", "log"},
	{OpReplace, "replace values in a column", "replace COLUMN TARGET REPLACEMENT"},
	{OpRollback, "move back one version, or to a checkpoint", "rollback [CHECKPOINT]"},
	{OpSave, "write the current dataset", "save PATH"},
	{OpStatus, "show the state of the history", "status"},
	{OpUnlock, "enable rollbacks", "unlock"},
}

// Find a command by name
func Find(name string) (Command, bool) {
	name = strings.ToLower(name)
	i := sort.Search(len(Commands), func(i int) bool { return string(Commands[i].Op) >= name })
	if i < len(Commands) && string(Commands[i].Op) == name {
		return Commands[i], true
	}
	return Command{}, false
}

// Complete suggests the commands starting with some prefix
func Complete(prefix string) (suggests []string) {
	prefix = strings.ToLower(prefix)
	for _, cmd := range Commands {
		if strings.HasPrefix(string(cmd.Op), prefix) {
			suggests = append(suggests, string(cmd.Op))
		}
	}
	return
}

// ParseLine parses a shell line into a step.
//
// Arguments are separated by spaces. Values with spaces are enclosed in double quotes.
// An empty line returns io.EOF.
func ParseLine(line string) (Step, error) {
	args, err := splitLine(line)
	if err != nil {
		return Step{}, err
	}
	if len(args) == 0 {
		return Step{}, io.EOF
	}

	cmd, ok := Find(args[0])
	if !ok {
		return Step{}, status.ErrUnknownOp.WrapMessage(args[0])
	}
	args = args[1:]
	usage := func() error {
		return status.ErrMissingArgument.WrapMessage("usage: " + cmd.Usage)
	}

	step := Step{Op: cmd.Op}
	switch cmd.Op {
	case OpFill:
		switch {
		case len(args) == 0:
		case len(args) == 1 && args[0] == string(model.FillAuto):
			step.Strategy = args[0]
		case len(args) == 2 && args[0] == string(model.FillConstant):
			step.Strategy = args[0]
			step.Constant = &args[1]
		default:
			return Step{}, usage()
		}
	case OpReplace:
		if len(args) != 3 {
			return Step{}, usage()
		}
		step.Column, step.Target, step.Replacement = args[0], args[1], args[2]
	case OpCheckpoint:
		if len(args) != 1 {
			return Step{}, usage()
		}
		step.Name = args[0]
	case OpRollback:
		if len(args) > 1 {
			return Step{}, usage()
		}
		if len(args) == 1 {
			step.Name = args[0]
		}
	case OpSave:
		if len(args) != 1 {
			return Step{}, usage()
		}
		step.Path = args[0]
	default:
		if len(args) != 0 {
			return Step{}, usage()
		}
	}
	return step, step.Validate()
}

func splitLine(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	r.TrimLeadingSpace = true
	args, err := r.Read()
	if err != nil {
		return nil, status.ErrMissingArgument.Wrap(err)
	}
	return args, nil
}
