package gpv

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/techlier/wgpv/grib2"
	"github.com/techlier/wgpv/internal/observability"
)

// Option configures a FileParser.
type Option func(*FileParser)

// WithSuffix sets the file name suffix ParseAll selects. The default is
// Suffix.
func WithSuffix(suffix string) Option {
	return func(f *FileParser) {
		if suffix != "" {
			f.suffix = suffix
		}
	}
}

// WithBufferSize sets the size of the read buffer shared by all files.
func WithBufferSize(size int) Option {
	return func(f *FileParser) {
		if size > 0 {
			f.bufferSize = size
		}
	}
}

// WithLogger sets the logger for per-file progress and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FileParser) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMetrics counts parsed files.
func WithMetrics(m *observability.Metrics) Option {
	return func(f *FileParser) {
		f.metrics = m
	}
}

// FileParser feeds GPV files through a grib2.Parser. Observers registered
// on the Parser see every message of every file.
type FileParser struct {
	parser     *grib2.Parser
	suffix     string
	bufferSize int
	logger     *slog.Logger
	metrics    *observability.Metrics
	buf        *grib2.Buffer
}

// NewFileParser creates a file parser driving p.
func NewFileParser(p *grib2.Parser, opts ...Option) *FileParser {
	f := &FileParser{
		parser:     p,
		suffix:     Suffix,
		bufferSize: grib2.DefaultBufferSize,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Parser returns the underlying message parser.
func (f *FileParser) Parser() *grib2.Parser {
	return f.parser
}

// Accept reports whether ParseAll parses the named file.
func (f *FileParser) Accept(name string) bool {
	return strings.HasSuffix(name, f.suffix)
}

// ParseFile decodes every message in the file at path and returns the
// number of octets decoded. A total that differs from the file size is
// logged, not returned as an error.
func (f *FileParser) ParseFile(path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	if f.buf == nil {
		f.buf = grib2.NewBuffer(f.bufferSize)
	}
	f.buf.Reset()
	f.parser.Reset()

	logger := f.logger.With(slog.String("file", path), slog.String("type", TypeOf(filepath.Base(path)).String()))
	logger.Debug("parsing file", slog.Int64("size", info.Size()))

	total, err := f.parser.ParseSource(f.buf, grib2.NewReaderSource(file))
	if err != nil {
		return total, fmt.Errorf("parse %s: %w", path, err)
	}
	if total != info.Size() {
		logger.Warn("decoded length differs from file size",
			slog.Int64("size", info.Size()),
			slog.Int64("decoded", total),
		)
	}
	if f.metrics != nil {
		f.metrics.FilesParsed.Inc()
	}
	return total, nil
}

// ParseAll parses root if it is a file, or every accepted file below it
// if it is a directory, in lexical order. It stops at the first error or
// when ctx is done, and returns the number of files parsed.
func (f *FileParser) ParseAll(ctx context.Context, root string) (int, error) {
	files := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if path != root && !f.Accept(d.Name()) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := f.ParseFile(path); err != nil {
			return err
		}
		files++
		return nil
	})
	return files, err
}
