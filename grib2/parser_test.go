package grib2_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techlier/wgpv/grib2"
	"github.com/techlier/wgpv/internal/codes"
	"github.com/techlier/wgpv/internal/observability"
	msgutil "github.com/techlier/wgpv/internal/testutil"
)

// Offsets of the section headers written by msgutil.Build without a
// Bitmap Section.
const (
	identificationAt     = msgutil.IndicatorLength
	gridAt               = identificationAt + msgutil.IdentificationLength
	productAt            = gridAt + msgutil.GridDefinitionLength
	dataRepresentationAt = productAt + msgutil.ProductForecastLength
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recorder notes the number of every section it is notified of.
type recorder struct {
	grib2.BaseObserver
	sections []int
}

func (r *recorder) OnIndicator(_ grib2.Holder, s *grib2.IndicatorSection) {
	r.sections = append(r.sections, s.Number())
}

func (r *recorder) OnIdentification(_ grib2.Holder, s *grib2.IdentificationSection) {
	r.sections = append(r.sections, s.Number())
}

func (r *recorder) OnGridDefinition(_ grib2.Holder, s *grib2.GridDefinitionSection) {
	r.sections = append(r.sections, s.Number())
}

func (r *recorder) OnProductDefinition(_ grib2.Holder, s *grib2.ProductDefinitionSection) {
	r.sections = append(r.sections, s.Number())
}

func (r *recorder) OnDataRepresentation(_ grib2.Holder, s *grib2.DataRepresentationSection) {
	r.sections = append(r.sections, s.Number())
}

func (r *recorder) OnBitmap(_ grib2.Holder, s *grib2.BitmapSection) {
	r.sections = append(r.sections, s.Number())
}

func (r *recorder) OnData(_ grib2.Holder, s *grib2.DataSection) {
	r.sections = append(r.sections, s.Number())
}

func (r *recorder) OnEnd(_ grib2.Holder, s *grib2.EndSection) {
	r.sections = append(r.sections, s.Number())
}

func parseOne(t *testing.T, p *grib2.Parser, b []byte) (*grib2.Message, error) {
	t.Helper()
	buf := grib2.NewBuffer(len(b))
	return p.ParseMessage(buf, grib2.NewReaderSource(bytes.NewReader(b)))
}

func TestParseMessage(t *testing.T) {
	b := msgutil.Build(msgutil.Default())
	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	rec := &recorder{}
	p.AddObserver(rec)

	msg, err := parseOne(t, p, b)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 3, 4, 5, 7, 8}, rec.sections)
	assert.Equal(t, int64(len(b)), msg.Length)
	assert.Equal(t, msg.Length, msg.Indicator().TotalLength)
	assert.Len(t, msg.Sections, 7)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Zero(t, p.Diagnostics().Len(), "%v", p.Diagnostics().Entries())
}

func TestParseMessageSections(t *testing.T) {
	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	_, err := parseOne(t, p, msgutil.Build(msgutil.Default()))
	require.NoError(t, err)

	ind := p.Indicator()
	require.NotNil(t, ind)
	assert.True(t, ind.Discipline.Is(codes.DisciplineMeteorological))
	assert.Equal(t, 2, ind.Edition)

	id := p.Identification()
	require.NotNil(t, id)
	assert.Equal(t, 34, id.Centre)
	assert.Equal(t, time.Date(2012, 3, 6, 12, 0, 0, 0, time.UTC), id.ReferenceTime())

	gds := p.GridDefinition()
	require.NotNil(t, gds)
	require.NotNil(t, gds.Grid)
	assert.Equal(t, 6, gds.NumPoints)
	assert.Equal(t, 3, gds.Grid.Ni)
	assert.Equal(t, 2, gds.Grid.Nj)
	assert.Equal(t, 47_600000, gds.Grid.La1)
	assert.Equal(t, 50000, gds.Grid.Dj)
	assert.False(t, gds.Grid.Gaussian)
	assert.Equal(t, uint8(0x30), gds.Grid.ResolutionFlags)

	pds := p.ProductDefinition()
	require.NotNil(t, pds)
	require.NotNil(t, pds.Product)
	assert.Equal(t, "TMP", pds.Product.ParameterNumber.Abbrev())
	assert.Equal(t, "Temperature", pds.Product.ParameterCategory.Name())
	assert.Equal(t, 6, pds.Product.ForecastTime)
	assert.Nil(t, pds.Product.Ensemble)
	assert.Nil(t, pds.Product.Interval)
	assert.Equal(t, "TMP:850 hPa:6 hour fcst:", grib2.Description(pds.Product))

	drs := p.DataRepresentation()
	require.NotNil(t, drs)
	require.NotNil(t, drs.Packing)
	assert.Equal(t, 12, drs.Packing.Bits)
	assert.Equal(t, 6, drs.NumDataPoints)

	assert.Nil(t, p.Bitmap())
	require.NotNil(t, p.Data())
	assert.Len(t, p.Data().Data, 9)

	m, err := grib2.Matrix(p)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, m.RawRowView(0))
	assert.Equal(t, []float64{4, 5, 6}, m.RawRowView(1))
}

func TestSectionFields(t *testing.T) {
	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	_, err := parseOne(t, p, msgutil.Build(msgutil.Default()))
	require.NoError(t, err)

	values := map[string]any{}
	for _, f := range p.GridDefinition().Fields() {
		values[f.Name] = f.Value
	}
	assert.Equal(t, int64(72), values["length"])
	assert.Equal(t, int64(3), values["template.ni"])
	assert.Equal(t, int64(0x30), values["template.resolutionFlags"])
	assert.IsType(t, grib2.Code{}, values["templateNumber"])
}

func TestParseMessageTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template int
		check    func(t *testing.T, p *grib2.ProductTemplate)
	}{
		{
			name:     "ensemble",
			template: codes.ProductEnsemble,
			check: func(t *testing.T, p *grib2.ProductTemplate) {
				require.NotNil(t, p.Ensemble)
				assert.Equal(t, 5, p.Ensemble.PerturbationNumber)
				assert.Equal(t, 51, p.Ensemble.NumForecasts)
				assert.Nil(t, p.Interval)
			},
		},
		{
			name:     "statistical",
			template: codes.ProductStatistical,
			check: func(t *testing.T, p *grib2.ProductTemplate) {
				require.NotNil(t, p.Interval)
				assert.Equal(t, time.Date(2012, 3, 6, 18, 0, 0, 0, time.UTC), p.Interval.End)
				assert.Equal(t, "Accumulation", p.Interval.StatisticalProcess.Name())
				assert.Equal(t, 6, p.Interval.RangeLength)
				assert.Nil(t, p.Ensemble)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := msgutil.Default()
			m.ProductTemplate = tt.template
			p := grib2.NewParser(grib2.WithLogger(quietLogger()))
			_, err := parseOne(t, p, msgutil.Build(m))
			require.NoError(t, err)
			assert.Zero(t, p.Diagnostics().Len(), "%v", p.Diagnostics().Entries())

			pds := p.ProductDefinition()
			require.NotNil(t, pds.Product)
			assert.Equal(t, tt.template, pds.Product.Number)
			tt.check(t, pds.Product)
		})
	}
}

func TestParseMessageUnderrun(t *testing.T) {
	m := msgutil.Default()
	m.GridPadding = 2
	b := msgutil.Build(m)

	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	rec := &recorder{}
	p.AddObserver(rec)

	msg, err := parseOne(t, p, b)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3, 4, 5, 7, 8}, rec.sections)
	assert.Equal(t, int64(len(b)), msg.Length)

	diag := p.Diagnostics()
	require.Equal(t, 1, diag.Count(grib2.DiagUnderrun))
	assert.Equal(t, int64(2), diag.Entries()[0].Value)
	assert.Equal(t, 74, p.GridDefinition().Len())
	assert.Equal(t, 3, p.GridDefinition().Grid.Ni)
}

func TestParseMessageUnknownTemplate(t *testing.T) {
	m := msgutil.Default()
	m.GridTemplate = 99

	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	_, err := parseOne(t, p, msgutil.Build(m))
	require.NoError(t, err)

	gds := p.GridDefinition()
	require.NotNil(t, gds)
	assert.Nil(t, gds.Grid)
	assert.False(t, gds.TemplateNumber.Known())
	assert.Equal(t, 99, gds.TemplateNumber.Value)

	diag := p.Diagnostics()
	assert.Equal(t, 1, diag.Count(grib2.DiagUnknownTemplate))
	assert.Equal(t, 1, diag.Count(grib2.DiagUnderrun))
	assert.Equal(t, []int{99}, diag.UnknownCodes()[codes.TableGridTemplate])

	_, err = grib2.Matrix(p)
	assert.ErrorIs(t, err, grib2.ErrUnsupportedTemplate)
}

func TestParseMessageUnknownCode(t *testing.T) {
	m := msgutil.Default()
	m.Parameter = 200

	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	_, err := parseOne(t, p, msgutil.Build(m))
	require.NoError(t, err)

	product := p.ProductDefinition().Product
	assert.False(t, product.ParameterNumber.Known())
	assert.Equal(t, "UNKNOWN(200):850 hPa:6 hour fcst:", grib2.Description(product))

	diag := p.Diagnostics()
	assert.Equal(t, 1, diag.Count(grib2.DiagUnknownCode))
	assert.Equal(t, map[grib2.Table][]int{codes.TableParameterNumber: {200}}, diag.UnknownCodes())
}

func TestParseMessageOceanographic(t *testing.T) {
	m := msgutil.Default()
	m.Discipline = codes.DisciplineOceanographic
	m.Parameter = 3
	m.SurfaceType = codes.SurfaceGround
	m.SurfaceScaledValue = -1

	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	_, err := parseOne(t, p, msgutil.Build(m))
	require.NoError(t, err)

	product := p.ProductDefinition().Product
	assert.Equal(t, "Waves", product.ParameterCategory.Name())
	assert.Equal(t, "HTSGW:surface:6 hour fcst:", grib2.Description(product))
}

func TestParseMessageValidation(t *testing.T) {
	m := msgutil.Default()
	m.Centre = 7
	b := msgutil.Build(m)

	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	_, err := parseOne(t, p, b)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Diagnostics().Count(grib2.DiagValidation))
	assert.Equal(t, 7, p.Identification().Centre)

	p = grib2.NewParser(grib2.WithLogger(quietLogger()), grib2.WithSyntaxChecking(false))
	_, err = parseOne(t, p, b)
	require.NoError(t, err)
	assert.Zero(t, p.Diagnostics().Len())
}

func TestParseMessageLengthMismatch(t *testing.T) {
	m := msgutil.Default()
	b := msgutil.Build(m)
	m.TotalLength = int64(len(b)) + 10

	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	_, err := parseOne(t, p, msgutil.Build(m))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Diagnostics().Count(grib2.DiagLengthMismatch))
}

func TestParseMessageFatal(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b []byte) []byte
		want   error
	}{
		{
			name:   "bad marker",
			mutate: func(b []byte) []byte { copy(b, "GRIP"); return b },
			want:   grib2.ErrNotGRIB2,
		},
		{
			name:   "edition 1",
			mutate: func(b []byte) []byte { b[7] = 1; return b },
			want:   grib2.ErrNotGRIB2,
		},
		{
			name:   "unknown discipline",
			mutate: func(b []byte) []byte { b[6] = 3; return b },
			want:   grib2.ErrNotGRIB2,
		},
		{
			name: "short section length",
			mutate: func(b []byte) []byte {
				binary.BigEndian.PutUint32(b[identificationAt:], 3)
				return b
			},
			want: grib2.ErrInvalidSectionLength,
		},
		{
			name: "section longer than message",
			mutate: func(b []byte) []byte {
				binary.BigEndian.PutUint32(b[identificationAt:], 1<<20)
				return b
			},
			want: grib2.ErrInvalidSectionLength,
		},
		{
			name: "missing total length",
			mutate: func(b []byte) []byte {
				binary.BigEndian.PutUint64(b[8:], 1<<64-1)
				return b
			},
			want: grib2.ErrNotGRIB2,
		},
		{
			name: "section beyond size limit",
			mutate: func(b []byte) []byte {
				binary.BigEndian.PutUint64(b[8:], 1<<40)
				binary.BigEndian.PutUint32(b[identificationAt:], 0xFFFFFFF0)
				return b
			},
			want: grib2.ErrInvalidSectionLength,
		},
		{
			name:   "local use section",
			mutate: func(b []byte) []byte { b[identificationAt+4] = 2; return b },
			want:   grib2.ErrUnknownSection,
		},
		{
			name:   "section numbered 8",
			mutate: func(b []byte) []byte { b[identificationAt+4] = 8; return b },
			want:   grib2.ErrUnknownSection,
		},
		{
			name: "overrun",
			mutate: func(b []byte) []byte {
				binary.BigEndian.PutUint32(b[dataRepresentationAt:], 15)
				return b
			},
			want: grib2.ErrSectionOverrun,
		},
		{
			name:   "truncated",
			mutate: func(b []byte) []byte { return b[:len(b)-6] },
			want:   grib2.ErrTruncated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.mutate(msgutil.Build(msgutil.Default()))
			p := grib2.NewParser(grib2.WithLogger(quietLogger()))
			msg, err := parseOne(t, p, b)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, msg)
		})
	}
}

func TestParseMessageMaxSectionSize(t *testing.T) {
	p := grib2.NewParser(grib2.WithLogger(quietLogger()), grib2.WithMaxSectionSize(msgutil.GridDefinitionLength-1))
	_, err := parseOne(t, p, msgutil.Build(msgutil.Default()))
	assert.ErrorIs(t, err, grib2.ErrInvalidSectionLength)
}

func TestParseMessageLargeDeclaredLengthShortStream(t *testing.T) {
	b := msgutil.Build(msgutil.Default())[:identificationAt+4]
	binary.BigEndian.PutUint64(b[8:], 1<<40)
	binary.BigEndian.PutUint32(b[identificationAt:], 1<<27)

	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	buf := grib2.NewBuffer(32)
	_, err := p.ParseMessage(buf, grib2.NewReaderSource(bytes.NewReader(b)))
	assert.ErrorIs(t, err, grib2.ErrTruncated)
	assert.LessOrEqual(t, buf.Cap(), 4096)
}

func TestParseStream(t *testing.T) {
	one := msgutil.Build(msgutil.Default())
	m := msgutil.Default()
	m.Bitmap = true
	two := msgutil.Build(m)
	stream := append(append([]byte{}, one...), two...)

	for _, size := range []int{8, 64, len(stream)} {
		p := grib2.NewParser(grib2.WithLogger(quietLogger()), grib2.WithBufferSize(size))
		rec := &recorder{}
		p.AddObserver(rec)

		n, err := p.Parse(bytes.NewReader(stream))
		require.NoError(t, err, "buffer size %d", size)
		assert.Equal(t, int64(len(stream)), n)
		want := []int{0, 1, 3, 4, 5, 7, 8, 0, 1, 3, 4, 5, 6, 7, 8}
		if diff := cmp.Diff(want, rec.sections); diff != "" {
			t.Errorf("buffer size %d: sections mismatch (-want +got):\n%s", size, diff)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	n, err := p.Parse(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Zero(t, n)
}

// holderWatcher captures what the Holder exposes while sections complete.
type holderWatcher struct {
	grib2.BaseObserver
	gridAtIdentification []bool
	matrices             [][]float64
	errs                 []error
}

func (o *holderWatcher) OnIdentification(h grib2.Holder, _ *grib2.IdentificationSection) {
	o.gridAtIdentification = append(o.gridAtIdentification, h.GridDefinition() != nil)
}

func (o *holderWatcher) OnData(h grib2.Holder, _ *grib2.DataSection) {
	m, err := grib2.Matrix(h)
	if err != nil {
		o.errs = append(o.errs, err)
		return
	}
	o.matrices = append(o.matrices, m.RawMatrix().Data)
}

func TestHolderInvalidation(t *testing.T) {
	first := msgutil.Default()
	second := msgutil.Default()
	second.ScanningMode = 0x10
	stream := append(msgutil.Build(first), msgutil.Build(second)...)

	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	probe := &holderWatcher{}
	p.AddObserver(probe)

	_, err := p.Parse(bytes.NewReader(stream))
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false}, probe.gridAtIdentification)
	assert.Empty(t, probe.errs)
	assert.Equal(t, [][]float64{{1, 2, 3, 4, 5, 6}, {1, 2, 3, 6, 5, 4}}, probe.matrices)

	p.Reset()
	assert.Nil(t, p.Indicator())
	assert.Nil(t, p.Data())
}

// selfRemover unregisters itself from its first callback and registers
// a recorder in its place.
type selfRemover struct {
	grib2.BaseObserver
	p     *grib2.Parser
	next  *recorder
	calls int
}

func (o *selfRemover) OnIndicator(grib2.Holder, *grib2.IndicatorSection) {
	o.calls++
	o.p.RemoveObserver(o)
	o.p.AddObserver(o.next)
}

func TestObserverChangesDuringNotification(t *testing.T) {
	p := grib2.NewParser(grib2.WithLogger(quietLogger()))
	o := &selfRemover{p: p, next: &recorder{}}
	p.AddObserver(o)

	_, err := parseOne(t, p, msgutil.Build(msgutil.Default()))
	require.NoError(t, err)

	assert.Equal(t, 1, o.calls)
	assert.Equal(t, []int{1, 3, 4, 5, 7, 8}, o.next.sections)
	assert.False(t, p.RemoveObserver(o))
	assert.True(t, p.RemoveObserver(o.next))
}

// advancer moves a fake clock forward while a message decodes.
type advancer struct {
	grib2.BaseObserver
	clock *clockwork.FakeClock
}

func (a *advancer) OnData(grib2.Holder, *grib2.DataSection) {
	a.clock.Advance(250 * time.Millisecond)
}

func TestParseMessageMetrics(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClock()

	p := grib2.NewParser(
		grib2.WithLogger(quietLogger()),
		grib2.WithMetrics(metrics),
		grib2.WithClock(clock),
	)
	p.AddObserver(&advancer{clock: clock})

	m := msgutil.Default()
	m.GridPadding = 2
	b := msgutil.Build(m)
	msg, err := parseOne(t, p, b)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, msg.Duration)

	_, err = parseOne(t, p, b[:20])
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MessagesDecoded))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DecodeFailures))
	// the failed decode still consumed its Indicator Section
	assert.Equal(t, float64(len(b)+16), testutil.ToFloat64(metrics.BytesDecoded))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SectionsDecoded.WithLabelValues("3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Diagnostics.WithLabelValues("underrun")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.MessageDuration))
}

func TestWithDiagnostics(t *testing.T) {
	diag := grib2.NewDiagnostics()
	m := msgutil.Default()
	m.Parameter = 201

	for range 2 {
		p := grib2.NewParser(grib2.WithLogger(quietLogger()), grib2.WithDiagnostics(diag))
		_, err := parseOne(t, p, msgutil.Build(m))
		require.NoError(t, err)
		assert.Same(t, diag, p.Diagnostics())
	}
	assert.Equal(t, 2, diag.Count(grib2.DiagUnknownCode))
	assert.Equal(t, []int{201}, diag.UnknownCodes()[codes.TableParameterNumber])
}
