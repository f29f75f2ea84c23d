// Package ingest reads and writes datasets on a file system.
//
// Supported formats are CSV (with a header line) and JSON in the "split" layout:
//
//	{"columns": ["a", "b"], "data": [["1", null], [2, "x"]]}
//
// The format is detected from the file extension. Files with no known extension are read as CSV.
//
// CSV fields are read verbatim: leading spaces are kept. Empty fields and the usual null markers
// (NA, N/A, NaN, null, None...) are read as null values. When saving, non-null values which would
// read back as null are escaped with a backslash (e.g. "NA" is written as \NA), so that saved
// datasets load back unchanged.
package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/oneconcern/datadesk/pkg/ingest/status"
	"github.com/oneconcern/datadesk/pkg/model"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Format of a dataset file
type Format string

const (
	// CSV format, with a header line
	CSV Format = "csv"

	// JSON format, in the "split" layout
	JSON Format = "json"
)

// FormatFromPath guesses the format of a file from its extension
func FormatFromPath(pth string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(pth)); ext {
	case ".csv", ".txt", "":
		return CSV, nil
	case ".json":
		return JSON, nil
	default:
		return "", status.ErrUnsupportedFormat.WrapMessage(ext)
	}
}

// Loader reads and writes datasets on some file system
type Loader struct {
	fs afero.Fs
	l  *zap.Logger
}

// Option to the loader
type Option func(*Loader)

// Logger sets a logger for this loader
func Logger(logger *zap.Logger) Option {
	return func(ld *Loader) {
		if logger != nil {
			ld.l = logger
		}
	}
}

// New builds a loader on a file system. It defaults to the OS file system.
func New(fs afero.Fs, opts ...Option) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	ld := &Loader{
		fs: fs,
		l:  zap.NewNop(),
	}
	for _, apply := range opts {
		apply(ld)
	}
	return ld
}

// Load reads a dataset
func (ld *Loader) Load(pth string) (*model.Table, error) {
	format, err := FormatFromPath(pth)
	if err != nil {
		return nil, err
	}

	f, err := ld.fs.Open(pth)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, status.ErrNotFound.WrapMessage(pth)
		}
		return nil, status.ErrDecode.WrapWithLog(ld.l, err, zap.String("path", pth))
	}
	defer f.Close()

	var tbl *model.Table
	switch format {
	case JSON:
		tbl, err = decodeJSON(f)
	default:
		tbl, err = decodeCSV(f)
	}
	if err != nil {
		return nil, status.ErrDecode.WrapWithLog(ld.l, err, zap.String("path", pth), zap.String("format", string(format)))
	}

	ld.l.Info("loaded dataset",
		zap.String("path", pth),
		zap.Int("rows", tbl.NumRows()),
		zap.Int("columns", tbl.NumColumns()),
	)
	return tbl, nil
}

// Save writes a dataset, replacing any existing file
func (ld *Loader) Save(pth string, tbl *model.Table) error {
	format, err := FormatFromPath(pth)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(pth); dir != "" {
		if err = ld.fs.MkdirAll(dir, 0700); err != nil {
			return status.ErrWrite.WrapWithLog(ld.l, err, zap.String("path", pth))
		}
	}
	target, err := ld.fs.OpenFile(pth, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return status.ErrWrite.WrapWithLog(ld.l, err, zap.String("path", pth))
	}

	switch format {
	case JSON:
		err = encodeJSON(target, tbl)
	default:
		err = encodeCSV(target, tbl)
	}
	if err != nil {
		_ = target.Close()
		return status.ErrEncode.WrapWithLog(ld.l, err, zap.String("path", pth))
	}
	if err = target.Close(); err != nil {
		return status.ErrWrite.WrapWithLog(ld.l, err, zap.String("path", pth))
	}

	ld.l.Info("saved dataset", zap.String("path", pth), zap.Int("rows", tbl.NumRows()))
	return nil
}
