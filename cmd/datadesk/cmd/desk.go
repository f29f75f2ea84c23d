package cmd

import (
	"io"

	"github.com/oneconcern/datadesk/pkg/dlogger"
	"github.com/oneconcern/datadesk/pkg/ingest"
	"github.com/oneconcern/datadesk/pkg/metrics"
	"github.com/oneconcern/datadesk/pkg/report"
	"github.com/oneconcern/datadesk/pkg/session"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// used to patch over the OS file system during test
var appFs = afero.NewOsFs()

// desk holds everything a command needs to work on a dataset
type desk struct {
	l       *zap.Logger
	m       *metrics.M
	loader  *ingest.Loader
	session *session.Session
	printer *report.Printer
}

func newDesk(out io.Writer, input string) (*desk, error) {
	l, err := dlogger.GetLogger(config.Log.Level)
	if err != nil {
		return nil, err
	}

	format, err := report.ParseFormat(config.Output.Format)
	if err != nil {
		return nil, err
	}

	d := &desk{
		l:      l,
		m:      metrics.New(),
		loader: ingest.New(appFs, ingest.Logger(l)),
	}

	data, err := d.loader.Load(input)
	if err != nil {
		return nil, err
	}

	d.session, err = session.New(data,
		session.Logger(l),
		session.Tracer(opentracing.GlobalTracer()),
		session.Metrics(d.m),
		session.Locked(config.Session.Locked),
		session.WarnVersions(config.History.WarnVersions),
		session.WarnBytes(int64(config.History.WarnBytes)),
	)
	if err != nil {
		return nil, err
	}

	d.printer = report.New(out, report.WithFormat(format), report.SessionID(d.session.ID()))
	return d, nil
}

// close flushes logs and metrics
func (d *desk) close() {
	if config.Metrics.Textfile != "" {
		if err := d.m.WriteTextfile(config.Metrics.Textfile); err != nil {
			d.l.Warn("could not write metrics", zap.String("textfile", config.Metrics.Textfile), zap.Error(err))
		}
	}
	_ = d.l.Sync()
}
