package decode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/techlier/wgpv/internal/binary"
	"github.com/techlier/wgpv/internal/codes"
	"github.com/techlier/wgpv/internal/schema"
)

var (
	// ErrSchemaInconsistent is returned when the cursor does not sit at a
	// field's declared offset. It points at a schema bug, not bad input.
	ErrSchemaInconsistent = errors.New("decode: field offset does not match cursor position")

	// ErrInvalidStringLength is returned for a string field without a
	// fixed non-negative length.
	ErrInvalidStringLength = errors.New("decode: string field needs a fixed length")
)

// Decoder turns container bytes into [Container] values following a
// [schema.Shape].
//
// A Decoder is not safe for concurrent use; it carries the discipline of the
// message being decoded, which keys parameter category lookups.
type Decoder struct {
	logger     *slog.Logger
	diag       *Diagnostics
	validate   bool
	discipline int
}

// NewDecoder creates a decoder. With validate set, field offsets are checked
// against the cursor and advisory whitelists are compared.
func NewDecoder(logger *slog.Logger, diag *Diagnostics, validate bool) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	if diag == nil {
		diag = NewDiagnostics()
	}
	return &Decoder{logger: logger, diag: diag, validate: validate}
}

// Diagnostics returns the collector the decoder records into.
func (d *Decoder) Diagnostics() *Diagnostics {
	return d.diag
}

// SetDiscipline sets the discipline used for parameter category lookups.
func (d *Decoder) SetDiscipline(discipline int) {
	d.discipline = discipline
}

// SetLogger replaces the logger, e.g. to attach per-message attributes.
func (d *Decoder) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

// Decode decodes shape from r. The cursor must sit on the shape's first
// field. length is the declared length of the enclosing section in octets
// and bounds variable-length fields.
func (d *Decoder) Decode(shape *schema.Shape, r *binary.Reader, length int) (*Container, error) {
	origin := r.Pos() - (shape.FirstOffset() - 1)
	return d.decode(shape, r, origin, length)
}

func (d *Decoder) decode(shape *schema.Shape, r *binary.Reader, origin, length int) (*Container, error) {
	c := newContainer(shape)
	for i := range shape.Fields {
		f := shape.Fields[i]
		v := &c.values[i]

		if d.validate {
			if want := origin + f.Offset - 1; r.Pos() != want {
				return nil, fmt.Errorf("%w: %s.%s at %d, cursor at %d",
					ErrSchemaInconsistent, shape, f.Name, want, r.Pos())
			}
		}

		if f.When.Field != "" && c.Int(f.When.Field) != f.When.Value {
			v.Set = true
			v.Bytes = []byte{}
			continue
		}

		if err := d.decodeField(c, v, r, origin, length); err != nil {
			return nil, fmt.Errorf("decode %s.%s: %w", shape, f.Name, err)
		}
		if v.Set && d.validate {
			d.check(shape, v)
		}
	}
	return c, nil
}

func (d *Decoder) decodeField(c *Container, v *Value, r *binary.Reader, origin, length int) error {
	f := v.Field
	switch f.Kind {
	case schema.KindInt:
		n, err := r.ReadSignMagnitude(f.Length)
		if err != nil {
			return err
		}
		v.Int = n

	case schema.KindFlags:
		n, err := r.ReadUintN(f.Length)
		if err != nil {
			return err
		}
		v.Int = int64(n)

	case schema.KindFloat:
		x, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		v.Float = x

	case schema.KindString:
		if f.Length < 0 {
			return ErrInvalidStringLength
		}
		b, err := r.ReadBytes(f.Length)
		if err != nil {
			return err
		}
		v.Text = string(b)

	case schema.KindCode:
		raw, err := r.ReadUintN(f.Length)
		if err != nil {
			return err
		}
		v.Int = int64(raw)
		v.Code = d.lookup(c, f, int(raw))

	case schema.KindTemplate:
		number := int(c.Int(f.Selector))
		shape, ok := schema.Template(f.Family, number)
		if !ok {
			d.record(Diagnostic{
				Kind:      DiagUnknownTemplate,
				Container: c.Shape.String(),
				Field:     f.Name,
				Value:     int64(number),
				Message:   fmt.Sprintf("no %s template %d", f.Family, number),
			}, slog.LevelWarn)
			return nil
		}
		nested, err := d.decode(shape, r, origin, length)
		if err != nil {
			return err
		}
		v.Template = nested

	case schema.KindBytes:
		n := max(length-f.Offset+1, 0)
		b, err := r.ReadBytes(n)
		if err != nil {
			return err
		}
		v.Bytes = b

	default:
		d.record(Diagnostic{
			Kind:      DiagUnsupportedField,
			Container: c.Shape.String(),
			Field:     f.Name,
			Message:   fmt.Sprintf("unsupported field kind %s", f.Kind),
		}, slog.LevelError)
		if f.Length > 0 {
			return r.Skip(f.Length)
		}
		return nil
	}

	v.Set = true
	return nil
}

// lookup resolves a code, recording a diagnostic when it is not in the
// catalog.
func (d *Decoder) lookup(c *Container, f schema.Field, raw int) codes.Code {
	outer := 0
	switch f.Key {
	case schema.KeyDiscipline:
		outer = d.discipline
	case schema.KeyCategory:
		outer = codes.ParameterKey(d.discipline, int(c.Int(f.KeyField)))
	}

	code, ok := codes.LookupIn(f.Table, outer, raw)
	if !ok {
		d.record(Diagnostic{
			Kind:      DiagUnknownCode,
			Container: c.Shape.String(),
			Field:     f.Name,
			Table:     f.Table,
			Outer:     outer,
			Value:     int64(raw),
			Message:   fmt.Sprintf("code table %s has no value %d", f.Table, raw),
		}, slog.LevelWarn)
	}
	return code
}

// check compares a decoded value against the field's advisory whitelist.
// A mismatch is only recorded.
func (d *Decoder) check(shape *schema.Shape, v *Value) {
	f := v.Field
	switch {
	case f.ExpectedText != "":
		if v.Text != f.ExpectedText {
			d.record(Diagnostic{
				Kind:      DiagValidation,
				Container: shape.String(),
				Field:     f.Name,
				Message:   fmt.Sprintf("got %q, expected %q", v.Text, f.ExpectedText),
			}, slog.LevelWarn)
		}
	case len(f.Expected) > 0:
		if !slices.Contains(f.Expected, v.Int) {
			d.record(Diagnostic{
				Kind:      DiagValidation,
				Container: shape.String(),
				Field:     f.Name,
				Value:     v.Int,
				Message:   fmt.Sprintf("got %d, expected one of %v", v.Int, f.Expected),
			}, slog.LevelWarn)
		}
	}
}

func (d *Decoder) record(diag Diagnostic, level slog.Level) {
	d.diag.Record(diag)
	d.logger.Log(context.Background(), level, diag.Message,
		slog.String("kind", diag.Kind.String()),
		slog.String("container", diag.Container),
		slog.String("field", diag.Field),
		slog.Int64("value", diag.Value),
	)
}
