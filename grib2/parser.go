package grib2

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techlier/wgpv/internal/binary"
	"github.com/techlier/wgpv/internal/decode"
	"github.com/techlier/wgpv/internal/schema"
)

// sectionHeaderLength is the length and number prefix of sections 1 to 7.
const sectionHeaderLength = 5

// minGrowth is the smallest size ensure grows a buffer to.
const minGrowth = 4096

// Message is the result of decoding one GRIB2 message.
type Message struct {
	// ID identifies the decode in logs.
	ID uuid.UUID

	// Sections holds the decoded sections in stream order, from the
	// Indicator Section to the End Section.
	Sections []Section

	// Length is the number of octets consumed.
	Length int64

	Duration time.Duration
}

// Indicator returns the message's Indicator Section.
func (m *Message) Indicator() *IndicatorSection {
	if len(m.Sections) == 0 {
		return nil
	}
	s, _ := m.Sections[0].(*IndicatorSection)
	return s
}

// Parser decodes GRIB2 messages and notifies observers as sections
// complete. It implements Holder.
//
// A Parser decodes one stream at a time. Observers may be added and
// removed from any goroutine, including from inside a callback.
type Parser struct {
	opts      *options
	logger    *slog.Logger
	diag      *Diagnostics
	dec       *decode.Decoder
	observers observerSet

	mu     sync.RWMutex
	latest [schema.SectionEnd + 1]Section
}

// NewParser creates a parser.
func NewParser(opts ...Option) *Parser {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	diag := o.diagnostics
	if diag == nil {
		diag = NewDiagnostics()
	}
	if m := o.metrics; m != nil {
		diag.OnRecord(func(d Diagnostic) {
			m.Diagnostics.WithLabelValues(d.Kind.String()).Inc()
		})
	}

	return &Parser{
		opts:   o,
		logger: o.logger,
		diag:   diag,
		dec:    decode.NewDecoder(o.logger, diag, o.syntaxCheck),
	}
}

// AddObserver registers o. It is notified from the next completed section.
func (p *Parser) AddObserver(o Observer) {
	p.observers.add(o)
}

// RemoveObserver unregisters o and reports whether it was registered.
func (p *Parser) RemoveObserver(o Observer) bool {
	return p.observers.remove(o)
}

// Diagnostics returns the collector of recovered faults.
func (p *Parser) Diagnostics() *Diagnostics {
	return p.diag
}

// Reset forgets all sections of the current message. Call it between
// independent streams.
func (p *Parser) Reset() {
	p.invalidate(schema.SectionIndicator)
	p.dec.SetDiscipline(0)
}

// Parse decodes consecutive messages from r until r is exhausted at a
// message boundary. It returns the number of octets decoded.
func (p *Parser) Parse(r io.Reader) (int64, error) {
	return p.ParseSource(NewBuffer(p.opts.bufferSize), NewReaderSource(r))
}

// ParseSource is Parse over a caller supplied buffer and source, so a
// buffer can be reused across streams. Unread bytes already in buf are
// decoded first.
func (p *Parser) ParseSource(buf *Buffer, src Source) (int64, error) {
	var total int64
	for {
		if buf.Remaining() == 0 {
			if err := src.Refill(buf); err != nil {
				return total, fmt.Errorf("refill: %w", err)
			}
			if buf.Remaining() == 0 {
				return total, nil
			}
		}
		msg, err := p.ParseMessage(buf, src)
		if err != nil {
			return total, err
		}
		total += msg.Length
	}
}

// ParseMessage decodes one message starting at the unread bytes of buf,
// refilling from src when a section is not fully buffered. On return buf
// is positioned after the End Section.
func (p *Parser) ParseMessage(buf *Buffer, src Source) (*Message, error) {
	clock := p.opts.clock
	start := clock.Now()

	msg := &Message{ID: uuid.New()}
	logger := p.logger.With(slog.String("message_id", msg.ID.String()))
	p.dec.SetLogger(logger)
	defer p.dec.SetLogger(p.logger)

	err := p.parseMessage(msg, buf, src, logger)
	msg.Duration = clock.Since(start)

	m := p.opts.metrics
	if err != nil {
		if m != nil {
			m.DecodeFailures.Inc()
		}
		logger.Error("message decode failed", slog.Int64("offset", msg.Length), slog.Any("error", err))
		return nil, err
	}
	if m != nil {
		m.MessagesDecoded.Inc()
		m.MessageDuration.Observe(msg.Duration.Seconds())
	}
	logger.Debug("message decoded",
		slog.Int("sections", len(msg.Sections)),
		slog.Int64("length", msg.Length),
		slog.Duration("duration", msg.Duration),
	)
	return msg, nil
}

func (p *Parser) parseMessage(msg *Message, buf *Buffer, src Source, logger *slog.Logger) error {
	ind, err := p.decodeIndicator(buf, src)
	if err != nil {
		return err
	}
	msg.Length = schema.IndicatorLength
	p.complete(msg, ind, logger)

	for {
		if err := p.ensure(buf, src, 4); err != nil {
			return err
		}
		length, _ := binary.NewReader(buf.Unread()).ReadUint32()

		if length == schema.EndMarkerValue {
			end, err := p.decodeEnd(buf)
			if err != nil {
				return err
			}
			msg.Length += schema.EndLength
			p.complete(msg, end, logger)
			break
		}

		if int64(length) > ind.TotalLength-msg.Length {
			return fmt.Errorf("%w: %d exceeds the %d octets left in the message",
				ErrInvalidSectionLength, length, ind.TotalLength-msg.Length)
		}
		sec, err := p.decodeSection(buf, src, int(length), logger)
		if err != nil {
			return err
		}
		msg.Length += int64(length)
		p.complete(msg, sec, logger)
	}

	if msg.Length != ind.TotalLength {
		p.record(logger, Diagnostic{
			Kind:      DiagLengthMismatch,
			Container: "message",
			Field:     "totalLength",
			Value:     msg.Length,
			Message:   fmt.Sprintf("decoded %d octets, indicator declares %d", msg.Length, ind.TotalLength),
		})
	}
	return nil
}

func (p *Parser) decodeIndicator(buf *Buffer, src Source) (*IndicatorSection, error) {
	if err := p.ensure(buf, src, schema.IndicatorLength); err != nil {
		return nil, err
	}
	data := buf.Unread()[:schema.IndicatorLength]
	if string(data[:4]) != schema.IndicatorMarker {
		return nil, fmt.Errorf("%w: marker %q", ErrNotGRIB2, data[:4])
	}

	p.invalidate(schema.SectionIndicator)
	shape, err := schema.Section(schema.SectionIndicator)
	if err != nil {
		return nil, err
	}
	c, err := p.dec.Decode(shape, binary.NewReader(data), schema.IndicatorLength)
	if err != nil {
		return nil, err
	}

	ind := newIndicator(c)
	if ind.Edition != 2 {
		return nil, fmt.Errorf("%w: edition %d", ErrNotGRIB2, ind.Edition)
	}
	if !ind.Discipline.Known() {
		return nil, fmt.Errorf("%w: discipline %d", ErrNotGRIB2, ind.Discipline.Value)
	}
	if ind.TotalLength < schema.IndicatorLength+schema.EndLength {
		return nil, fmt.Errorf("%w: total length %d", ErrNotGRIB2, ind.TotalLength)
	}
	p.dec.SetDiscipline(ind.Discipline.Value)

	return ind, buf.Skip(schema.IndicatorLength)
}

func (p *Parser) decodeEnd(buf *Buffer) (*EndSection, error) {
	shape, err := schema.Section(schema.SectionEnd)
	if err != nil {
		return nil, err
	}
	p.invalidate(schema.SectionEnd)
	c, err := p.dec.Decode(shape, binary.NewReader(buf.Unread()[:schema.EndLength]), schema.EndLength)
	if err != nil {
		return nil, err
	}
	return newEnd(c), buf.Skip(schema.EndLength)
}

func (p *Parser) decodeSection(buf *Buffer, src Source, length int, logger *slog.Logger) (Section, error) {
	if length < sectionHeaderLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSectionLength, length)
	}
	if length > p.opts.maxSection {
		return nil, fmt.Errorf("%w: %d exceeds the %d octet limit", ErrInvalidSectionLength, length, p.opts.maxSection)
	}
	if err := p.ensure(buf, src, length); err != nil {
		return nil, err
	}

	data := buf.Unread()[:length]
	number := int(data[4])
	if number == schema.SectionIndicator || number == schema.SectionEnd {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSection, number)
	}
	shape, err := schema.Section(number)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSection, number)
	}

	p.invalidate(number)
	r := binary.NewReader(data)
	c, err := p.dec.Decode(shape, r, length)
	if errors.Is(err, binary.ErrShortBuffer) {
		return nil, fmt.Errorf("%w: %s declares %d octets: %w", ErrSectionOverrun, shape, length, err)
	}
	if err != nil {
		return nil, err
	}

	if used := r.Pos(); used < length {
		p.record(logger, Diagnostic{
			Kind:      DiagUnderrun,
			Container: shape.String(),
			Value:     int64(length - used),
			Message:   fmt.Sprintf("decoded %d of %d octets, skipping to section end", used, length),
		})
	}

	if err := buf.Skip(length); err != nil {
		return nil, err
	}
	return newSection(c, length), nil
}

// ensure makes at least n unread bytes available in buf. The buffer at
// most doubles per refill, so a bogus length on a short stream cannot force
// a large allocation.
func (p *Parser) ensure(buf *Buffer, src Source, n int) error {
	for buf.Remaining() < n {
		if buf.Cap() < n {
			buf.Grow(min(n, max(2*buf.Cap(), minGrowth)))
		}
		have := buf.Remaining()
		if err := src.Refill(buf); err != nil {
			return fmt.Errorf("refill: %w", err)
		}
		if buf.Remaining() <= have {
			return fmt.Errorf("%w: need %d octets, have %d", ErrTruncated, n, have)
		}
	}
	return nil
}

// invalidate clears the latest section of kind from and every kind after
// it.
func (p *Parser) invalidate(from int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k := from; k < len(p.latest); k++ {
		p.latest[k] = nil
	}
}

func (p *Parser) complete(msg *Message, sec Section, logger *slog.Logger) {
	p.mu.Lock()
	p.latest[sec.Number()] = sec
	p.mu.Unlock()

	msg.Sections = append(msg.Sections, sec)
	if m := p.opts.metrics; m != nil {
		m.SectionsDecoded.WithLabelValues(strconv.Itoa(sec.Number())).Inc()
		m.BytesDecoded.Add(float64(sec.Len()))
	}
	logger.Debug("section decoded", slog.Int("section", sec.Number()), slog.Int("length", sec.Len()))

	notify(p, p.observers.snapshot(), sec)
}

func (p *Parser) record(logger *slog.Logger, d Diagnostic) {
	p.diag.Record(d)
	logger.Warn(d.Message,
		slog.String("kind", d.Kind.String()),
		slog.String("container", d.Container),
		slog.Int64("value", d.Value),
	)
}

func (p *Parser) get(n int) Section {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest[n]
}

// Indicator returns the latest Indicator Section.
func (p *Parser) Indicator() *IndicatorSection {
	s, _ := p.get(schema.SectionIndicator).(*IndicatorSection)
	return s
}

// Identification returns the latest Identification Section.
func (p *Parser) Identification() *IdentificationSection {
	s, _ := p.get(schema.SectionIdentification).(*IdentificationSection)
	return s
}

// GridDefinition returns the latest Grid Definition Section.
func (p *Parser) GridDefinition() *GridDefinitionSection {
	s, _ := p.get(schema.SectionGridDefinition).(*GridDefinitionSection)
	return s
}

// ProductDefinition returns the latest Product Definition Section.
func (p *Parser) ProductDefinition() *ProductDefinitionSection {
	s, _ := p.get(schema.SectionProductDefinition).(*ProductDefinitionSection)
	return s
}

// DataRepresentation returns the latest Data Representation Section.
func (p *Parser) DataRepresentation() *DataRepresentationSection {
	s, _ := p.get(schema.SectionDataRepresentation).(*DataRepresentationSection)
	return s
}

// Bitmap returns the latest Bitmap Section.
func (p *Parser) Bitmap() *BitmapSection {
	s, _ := p.get(schema.SectionBitmap).(*BitmapSection)
	return s
}

// Data returns the latest Data Section.
func (p *Parser) Data() *DataSection {
	s, _ := p.get(schema.SectionData).(*DataSection)
	return s
}
