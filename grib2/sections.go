package grib2

import (
	"time"

	"github.com/techlier/wgpv/internal/codes"
	"github.com/techlier/wgpv/internal/decode"
	"github.com/techlier/wgpv/internal/schema"
)

// Section is a decoded GRIB2 section.
type Section interface {
	// Number returns the section number, 0 to 8.
	Number() int
	// Len returns the declared section length in octets.
	Len() int
	// Fields returns every decoded field in layout order.
	Fields() []Field
}

// Field is a decoded field for generic display. Value is an int64,
// float32, string, Code or []byte. Fields of a nested template carry the
// template field name as a prefix, e.g. "template.ni".
type Field struct {
	Name  string
	Value any
}

type base struct {
	number int
	length int
	c      *decode.Container
}

func (b *base) Number() int { return b.number }

func (b *base) Len() int { return b.length }

func (b *base) Fields() []Field {
	return appendFields(nil, "", b.c)
}

func appendFields(out []Field, prefix string, c *decode.Container) []Field {
	if c == nil {
		return out
	}
	for _, v := range c.Values() {
		name := prefix + v.Field.Name
		switch v.Field.Kind {
		case schema.KindInt, schema.KindFlags:
			out = append(out, Field{name, v.Int})
		case schema.KindFloat:
			out = append(out, Field{name, v.Float})
		case schema.KindString:
			out = append(out, Field{name, v.Text})
		case schema.KindCode:
			out = append(out, Field{name, v.Code})
		case schema.KindBytes:
			out = append(out, Field{name, v.Bytes})
		case schema.KindTemplate:
			out = appendFields(out, name+".", v.Template)
		}
	}
	return out
}

func intOf(c *decode.Container, name string) int {
	return int(c.Int(name))
}

// IndicatorSection is section 0.
type IndicatorSection struct {
	base
	Discipline  Code
	Edition     int
	TotalLength int64
}

func newIndicator(c *decode.Container) *IndicatorSection {
	return &IndicatorSection{
		base:        base{number: schema.SectionIndicator, length: schema.IndicatorLength, c: c},
		Discipline:  c.Code("discipline"),
		Edition:     intOf(c, "edition"),
		TotalLength: c.Int("totalLength"),
	}
}

// IdentificationSection is section 1.
type IdentificationSection struct {
	base
	Centre                    int
	SubCentre                 int
	MasterVersion             int
	LocalVersion              int
	ReferenceTimeSignificance Code
	Year, Month, Day          int
	Hour, Minute, Second      int
	ProductionStatus          Code
	DataType                  Code
}

func newIdentification(c *decode.Container, length int) *IdentificationSection {
	return &IdentificationSection{
		base:                      base{number: schema.SectionIdentification, length: length, c: c},
		Centre:                    intOf(c, "centre"),
		SubCentre:                 intOf(c, "subCentre"),
		MasterVersion:             intOf(c, "masterVersion"),
		LocalVersion:              intOf(c, "localVersion"),
		ReferenceTimeSignificance: c.Code("referenceTimeSignificance"),
		Year:                      intOf(c, "year"),
		Month:                     intOf(c, "month"),
		Day:                       intOf(c, "day"),
		Hour:                      intOf(c, "hour"),
		Minute:                    intOf(c, "minute"),
		Second:                    intOf(c, "second"),
		ProductionStatus:          c.Code("productionStatus"),
		DataType:                  c.Code("dataType"),
	}
}

// ReferenceTime returns the reference time in UTC.
func (s *IdentificationSection) ReferenceTime() time.Time {
	return time.Date(s.Year, time.Month(s.Month), s.Day, s.Hour, s.Minute, s.Second, 0, time.UTC)
}

// GridDefinitionSection is section 3.
type GridDefinitionSection struct {
	base
	Source         int
	NumPoints      int
	TemplateNumber Code

	// Grid is nil when the template number is not supported.
	Grid *LatLonGrid
}

// LatLonGrid is grid definition template 3.0, or 3.40 for a Gaussian grid.
// Angles are in units of 10^-6 degree.
type LatLonGrid struct {
	ShapeOfEarth    Code
	Ni, Nj          int
	La1, Lo1        int
	La2, Lo2        int
	Di, Dj          int
	ResolutionFlags uint8
	ScanningMode    ScanningMode

	// Parallels is the number of parallels between a pole and the equator
	// of a Gaussian grid. Dj is not set for Gaussian grids.
	Parallels int
	Gaussian  bool
}

func newGridDefinition(c *decode.Container, length int) *GridDefinitionSection {
	s := &GridDefinitionSection{
		base:           base{number: schema.SectionGridDefinition, length: length, c: c},
		Source:         intOf(c, "source"),
		NumPoints:      intOf(c, "numPoints"),
		TemplateNumber: c.Code("templateNumber"),
	}
	if t := c.Template("template"); t != nil {
		g := &LatLonGrid{
			ShapeOfEarth:    t.Code("shapeOfEarth"),
			Ni:              intOf(t, "ni"),
			Nj:              intOf(t, "nj"),
			La1:             intOf(t, "la1"),
			Lo1:             intOf(t, "lo1"),
			La2:             intOf(t, "la2"),
			Lo2:             intOf(t, "lo2"),
			Di:              intOf(t, "di"),
			ResolutionFlags: uint8(t.Int("resolutionFlags")),
			ScanningMode:    ScanningMode(t.Int("scanningMode")),
		}
		if t.Shape.Template == codes.GridGaussian {
			g.Gaussian = true
			g.Parallels = intOf(t, "parallels")
		} else {
			g.Dj = intOf(t, "dj")
		}
		s.Grid = g
	}
	return s
}

// ProductDefinitionSection is section 4.
type ProductDefinitionSection struct {
	base
	NumCoordinateValues int
	TemplateNumber      Code

	// Product is nil when the template number is not supported.
	Product *ProductTemplate
}

// Surface is a fixed surface of a product definition.
type Surface struct {
	Type        Code
	ScaleFactor int
	ScaledValue int
}

// Value returns the surface value ScaledValue * 10^-ScaleFactor.
func (s Surface) Value() float64 {
	return scaled(s.ScaledValue, s.ScaleFactor)
}

// ProductTemplate holds the fields of product definition template 4.0
// and the parts added by the templates extending it.
type ProductTemplate struct {
	Number            int
	ParameterCategory Code
	ParameterNumber   Code
	GeneratingProcess Code
	BackgroundProcess int
	ForecastProcess   int
	CutoffHours       int
	CutoffMinutes     int
	TimeUnit          Code
	ForecastTime      int
	FirstSurface      Surface
	SecondSurface     Surface
	Ensemble          *Ensemble // templates 4.1 and 4.11
	Derived           *Derived  // templates 4.2 and 4.12
	Interval          *Interval // templates 4.8, 4.11 and 4.12
}

// Ensemble describes an individual ensemble member.
type Ensemble struct {
	Type               Code
	PerturbationNumber int
	NumForecasts       int
}

// Derived describes a forecast derived from all ensemble members.
type Derived struct {
	Forecast     Code
	NumForecasts int
}

// Interval describes a statistically processed time interval.
type Interval struct {
	End                time.Time
	NumTimeRanges      int
	NumMissing         int
	StatisticalProcess Code
	IncrementType      Code
	RangeUnit          Code
	RangeLength        int
	IncrementUnit      Code
	Increment          int
}

func newProductDefinition(c *decode.Container, length int) *ProductDefinitionSection {
	s := &ProductDefinitionSection{
		base:                base{number: schema.SectionProductDefinition, length: length, c: c},
		NumCoordinateValues: intOf(c, "numCoordinateValues"),
		TemplateNumber:      c.Code("templateNumber"),
	}
	if t := c.Template("template"); t != nil {
		s.Product = newProductTemplate(t)
	}
	return s
}

func newProductTemplate(t *decode.Container) *ProductTemplate {
	secondType, _ := codes.Lookup(codes.TableSurface, intOf(t, "secondSurfaceType"))
	p := &ProductTemplate{
		Number:            t.Shape.Template,
		ParameterCategory: t.Code("parameterCategory"),
		ParameterNumber:   t.Code("parameterNumber"),
		GeneratingProcess: t.Code("generatingProcess"),
		BackgroundProcess: intOf(t, "backgroundProcess"),
		ForecastProcess:   intOf(t, "forecastProcess"),
		CutoffHours:       intOf(t, "cutoffHours"),
		CutoffMinutes:     intOf(t, "cutoffMinutes"),
		TimeUnit:          t.Code("timeUnit"),
		ForecastTime:      intOf(t, "forecastTime"),
		FirstSurface: Surface{
			Type:        t.Code("firstSurfaceType"),
			ScaleFactor: intOf(t, "firstSurfaceScaleFactor"),
			ScaledValue: intOf(t, "firstSurfaceScaledValue"),
		},
		SecondSurface: Surface{
			Type:        secondType,
			ScaleFactor: intOf(t, "secondSurfaceScaleFactor"),
			ScaledValue: intOf(t, "secondSurfaceScaledValue"),
		},
	}

	if t.Has("ensembleType") {
		p.Ensemble = &Ensemble{
			Type:               t.Code("ensembleType"),
			PerturbationNumber: intOf(t, "perturbationNumber"),
			NumForecasts:       intOf(t, "numForecasts"),
		}
	}
	if t.Has("derivedForecast") {
		p.Derived = &Derived{
			Forecast:     t.Code("derivedForecast"),
			NumForecasts: intOf(t, "numForecasts"),
		}
	}
	if t.Has("endYear") {
		p.Interval = &Interval{
			End: time.Date(intOf(t, "endYear"), time.Month(intOf(t, "endMonth")), intOf(t, "endDay"),
				intOf(t, "endHour"), intOf(t, "endMinute"), intOf(t, "endSecond"), 0, time.UTC),
			NumTimeRanges:      intOf(t, "numTimeRanges"),
			NumMissing:         intOf(t, "numMissing"),
			StatisticalProcess: t.Code("statisticalProcess"),
			IncrementType:      t.Code("timeIncrementType"),
			RangeUnit:          t.Code("rangeUnit"),
			RangeLength:        intOf(t, "rangeLength"),
			IncrementUnit:      t.Code("incrementUnit"),
			Increment:          intOf(t, "increment"),
		}
	}
	return p
}

// DataRepresentationSection is section 5.
type DataRepresentationSection struct {
	base
	NumDataPoints  int
	TemplateNumber Code

	// Packing is nil when the template number is not supported.
	Packing *SimplePacking
}

// SimplePacking is data representation template 5.0.
type SimplePacking struct {
	ReferenceValue float32
	BinaryScale    int
	DecimalScale   int
	Bits           int
	FieldValueType Code
}

func newDataRepresentation(c *decode.Container, length int) *DataRepresentationSection {
	s := &DataRepresentationSection{
		base:           base{number: schema.SectionDataRepresentation, length: length, c: c},
		NumDataPoints:  intOf(c, "numDataPoints"),
		TemplateNumber: c.Code("templateNumber"),
	}
	if t := c.Template("template"); t != nil {
		s.Packing = &SimplePacking{
			ReferenceValue: t.Float("referenceValue"),
			BinaryScale:    intOf(t, "binaryScale"),
			DecimalScale:   intOf(t, "decimalScale"),
			Bits:           intOf(t, "numBits"),
			FieldValueType: t.Code("fieldValueType"),
		}
	}
	return s
}

// BitmapSection is section 6. Bitmap is empty unless Indicator is 0.
type BitmapSection struct {
	base
	Indicator Code
	Bitmap    []byte
}

func newBitmap(c *decode.Container, length int) *BitmapSection {
	return &BitmapSection{
		base:      base{number: schema.SectionBitmap, length: length, c: c},
		Indicator: c.Code("indicator"),
		Bitmap:    c.Bytes("bitmap"),
	}
}

// DataSection is section 7. Data holds the packed values.
type DataSection struct {
	base
	Data []byte
}

func newData(c *decode.Container, length int) *DataSection {
	return &DataSection{
		base: base{number: schema.SectionData, length: length, c: c},
		Data: c.Bytes("data"),
	}
}

// EndSection is section 8.
type EndSection struct {
	base
}

func newEnd(c *decode.Container) *EndSection {
	return &EndSection{base: base{number: schema.SectionEnd, length: schema.EndLength, c: c}}
}

// newSection builds the typed section for a decoded container.
func newSection(c *decode.Container, length int) Section {
	switch c.Shape.Section {
	case schema.SectionIndicator:
		return newIndicator(c)
	case schema.SectionIdentification:
		return newIdentification(c, length)
	case schema.SectionGridDefinition:
		return newGridDefinition(c, length)
	case schema.SectionProductDefinition:
		return newProductDefinition(c, length)
	case schema.SectionDataRepresentation:
		return newDataRepresentation(c, length)
	case schema.SectionBitmap:
		return newBitmap(c, length)
	case schema.SectionData:
		return newData(c, length)
	default:
		return newEnd(c)
	}
}
