package report

import (
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/oneconcern/datadesk/pkg/report/status"
	"github.com/oneconcern/datadesk/pkg/session"
	"github.com/oneconcern/datadesk/pkg/versioned"

	"github.com/docker/go-units"
	"github.com/spf13/afero"
)

// DefaultReportFile is the name of the report written when none is specified
const DefaultReportFile = "datadesk_report.txt"

// Summary of a session, as written in a report file
type Summary struct {
	SessionID string
	Date      time.Time
	Rows      int
	Columns   []string
	Nulls     int
	Status    versioned.Status
	Log       []versioned.VersionInfo
}

// Summarize the current state of a session
func Summarize(s *session.Session, now time.Time) Summary {
	data := s.Data()
	return Summary{
		SessionID: s.ID(),
		Date:      now,
		Rows:      data.NumRows(),
		Columns:   data.Columns,
		Nulls:     data.NullCount(),
		Status:    s.Status(),
		Log:       s.Log(),
	}
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"humanSize": func(n int64) string { return units.HumanSize(float64(n)) },
	"date":      func(t time.Time) string { return t.Format(time.RFC3339) },
}).Parse(`--- DATADESK SESSION REPORT ---
Trace ID: {{ .SessionID }}
Date: {{ date .Date }}

DATASET:
{{ .Rows }} rows, {{ len .Columns }} columns, {{ .Nulls }} null values
Columns: {{ range $i, $c := .Columns }}{{ if $i }}, {{ end }}{{ $c }}{{ end }}

HISTORY:
The dataset is at version {{ .Status.CurrentIndex }} of {{ .Status.TotalVersions }} versions held in memory ({{ humanSize .Status.HistoryBytes }}).
Rollback is {{ if .Status.RollbackAllowed }}allowed{{ else }}forbidden{{ end }}.
{{ range .Log }}
{{ if .Current }}*{{ else }} {{ end }} {{ .Index }}. {{ .Message }}{{ if .Checkpoints }} ({{ range $i, $c := .Checkpoints }}{{ if $i }}, {{ end }}{{ $c }}{{ end }}){{ end }}{{ end }}
-------------------------------
`))

// WriteFile writes a plain-text report, replacing any existing file
func WriteFile(fs afero.Fs, pth string, summary Summary) error {
	if pth == "" {
		pth = DefaultReportFile
	}
	if dir := filepath.Dir(pth); dir != "" {
		if err := fs.MkdirAll(dir, 0700); err != nil {
			return status.ErrWrite.Wrap(err)
		}
	}

	f, err := fs.OpenFile(pth, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return status.ErrWrite.Wrap(err)
	}
	if err = reportTemplate.Execute(f, summary); err != nil {
		_ = f.Close()
		return status.ErrWrite.Wrap(err)
	}
	if err = f.Close(); err != nil {
		return status.ErrWrite.Wrap(err)
	}
	return nil
}
