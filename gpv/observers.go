package gpv

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/techlier/wgpv/grib2"
)

// Describer prints one line per product, numbered within its message:
//
//	1:d=20120306120000:TMP:850 hPa:6 hour fcst:
type Describer struct {
	grib2.BaseObserver
	w    io.Writer
	date string
	part int
	err  error
}

// NewDescriber creates a Describer writing to w.
func NewDescriber(w io.Writer) *Describer {
	return &Describer{w: w}
}

func (d *Describer) OnIdentification(_ grib2.Holder, s *grib2.IdentificationSection) {
	d.date = fmt.Sprintf("%04d%02d%02d%02d%02d%02d", s.Year, s.Month, s.Day, s.Hour, s.Minute, s.Second)
	d.part = 0
}

func (d *Describer) OnProductDefinition(_ grib2.Holder, s *grib2.ProductDefinitionSection) {
	d.part++
	desc := fmt.Sprintf("template %s:", s.TemplateNumber)
	if s.Product != nil {
		desc = grib2.Description(s.Product)
	}
	if _, err := fmt.Fprintf(d.w, "%d:d=%s:%s\n", d.part, d.date, desc); err != nil && d.err == nil {
		d.err = err
	}
}

// Err returns the first write error.
func (d *Describer) Err() error {
	return d.err
}

// DataDumper prints the decoded grid of every Data Section, one row per
// line, as a brace-delimited list.
type DataDumper struct {
	grib2.BaseObserver
	w      io.Writer
	logger *slog.Logger
	err    error
}

// NewDataDumper creates a DataDumper writing to w. Grids that cannot be
// decoded are logged to logger and skipped.
func NewDataDumper(w io.Writer, logger *slog.Logger) *DataDumper {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataDumper{w: w, logger: logger}
}

func (d *DataDumper) OnData(h grib2.Holder, _ *grib2.DataSection) {
	m, err := grib2.Matrix(h)
	if err != nil {
		d.logger.Warn("skipping data section", slog.Any("error", err))
		return
	}

	bw := bufio.NewWriter(d.w)
	rows, cols := m.Dims()
	bw.WriteString("{")
	for j := 0; j < rows; j++ {
		bw.WriteString("{")
		for i := 0; i < cols; i++ {
			bw.WriteString(strconv.FormatFloat(m.At(j, i), 'g', -1, 64))
			bw.WriteString(",")
		}
		bw.WriteString("},\n")
	}
	bw.WriteString("},\n")
	if err := bw.Flush(); err != nil && d.err == nil {
		d.err = err
	}
}

// Err returns the first write error.
func (d *DataDumper) Err() error {
	return d.err
}
