package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oneconcern/datadesk/pkg/model"
	"github.com/oneconcern/datadesk/pkg/report/status"
	"github.com/oneconcern/datadesk/pkg/session"
	"github.com/oneconcern/datadesk/pkg/versioned"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v2"
)

const deskRule = "-------------------------------"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Printer renders the state of a session on some writer
type Printer struct {
	w       io.Writer
	format  Format
	session string

	title   *color.Color
	key     *color.Color
	value   *color.Color
	good    *color.Color
	bad     *color.Color
	current *color.Color
}

// Option to the printer
type Option func(*Printer)

// WithFormat sets the output format
func WithFormat(format Format) Option {
	return func(p *Printer) {
		if format != "" {
			p.format = format
		}
	}
}

// SessionID sets the session ID shown on the desk
func SessionID(id string) Option {
	return func(p *Printer) {
		p.session = id
	}
}

// NoColor disables colours, regardless of the terminal
func NoColor() Option {
	return func(p *Printer) {
		for _, c := range p.colors() {
			c.DisableColor()
		}
	}
}

// New printer writing to w. Colours follow the terminal capabilities, as detected by fatih/color.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:       w,
		format:  Desk,
		title:   color.New(color.Bold),
		key:     color.New(color.FgCyan),
		value:   color.New(color.FgMagenta),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed, color.Bold),
		current: color.New(color.FgYellow, color.Bold),
	}
	for _, apply := range opts {
		apply(p)
	}
	return p
}

func (p *Printer) colors() []*color.Color {
	return []*color.Color{p.title, p.key, p.value, p.good, p.bad, p.current}
}

// Status renders the desk: a summary of the history of the session
func (p *Printer) Status(st versioned.Status) error {
	if p.format != Desk {
		return p.encode(st)
	}

	var b strings.Builder
	p.title.Fprintln(&b, "--- THE DATADESK ---")
	if p.session != "" {
		p.line(&b, "Session:", p.value.Sprint(p.session))
	}
	p.line(&b, "Data version:", p.value.Sprintf("%d", st.CurrentIndex)+fmt.Sprintf(" of %d", st.TotalVersions-1))
	p.line(&b, "Checkpoints:", p.value.Sprint(strings.Join(st.Checkpoints, ", ")))
	p.line(&b, "Memory depth:", p.value.Sprintf("%d versions", st.TotalVersions)+fmt.Sprintf(" (%s)", units.HumanSize(float64(st.HistoryBytes))))
	if st.RollbackAllowed {
		p.line(&b, "Policy:", p.good.Sprint("rollback allowed"))
	} else {
		p.line(&b, "Policy:", p.bad.Sprint("rollback forbidden"))
	}
	b.WriteString(deskRule + "\n")

	return p.write(b.String())
}

// Log renders all versions of the dataset, oldest first
func (p *Printer) Log(infos []versioned.VersionInfo) error {
	if p.format != Desk {
		return p.encode(infos)
	}

	table := uitable.New()
	table.Separator = "  "
	for _, info := range infos {
		var marker, checkpoints, size string
		if info.Current {
			marker = p.current.Sprint("*")
		}
		if len(info.Checkpoints) > 0 {
			checkpoints = p.key.Sprintf("(%s)", strings.Join(info.Checkpoints, ", "))
		}
		if info.Size > 0 {
			size = units.HumanSize(float64(info.Size))
		}
		table.AddRow(marker, p.value.Sprint(info.Index), info.Timestamp.Format(time.RFC3339), info.Message, checkpoints, size)
	}
	return p.write(table.String() + "\n")
}

// Change renders the outcome of a transformation
func (p *Printer) Change(c session.Change) error {
	if p.format != Desk {
		return p.encode(c)
	}
	return p.write(fmt.Sprintf("%s %s (%d affected)\n", p.value.Sprintf("version %d:", c.Version), c.Message, c.Affected))
}

type rollback struct {
	Outcome    string `json:"outcome" yaml:"outcome"`
	Version    int    `json:"version" yaml:"version"`
	Checkpoint string `json:"checkpoint,omitempty" yaml:"checkpoint,omitempty"`
}

// Restored renders the outcome of a rollback
func (p *Printer) Restored(r versioned.Restored[*model.Table]) error {
	if p.format != Desk {
		return p.encode(rollback{Outcome: r.Outcome.String(), Version: r.Index, Checkpoint: r.Checkpoint})
	}

	switch r.Outcome {
	case versioned.RolledBack:
		return p.write(p.good.Sprintf("rolled back to version %d", r.Index) + "\n")
	case versioned.CheckpointNotFound:
		return p.write(p.bad.Sprintf("checkpoint %q not found", r.Checkpoint) + ": no action taken\n")
	default:
		return p.write(r.Outcome.String() + ": cannot rollback further\n")
	}
}

func (p *Printer) line(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s %s\n", p.key.Sprintf("%-14s", key), value)
}

func (p *Printer) encode(v interface{}) error {
	var (
		data []byte
		err  error
	)
	switch p.format {
	case YAML:
		data, err = yaml.Marshal(v)
	case JSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	default:
		return status.ErrUnknownFormat.WrapMessage(string(p.format))
	}
	if err != nil {
		return status.ErrRender.Wrap(err)
	}
	return p.write(string(data))
}

func (p *Printer) write(s string) error {
	if _, err := io.WriteString(p.w, s); err != nil {
		return status.ErrRender.Wrap(err)
	}
	return nil
}
