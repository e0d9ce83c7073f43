package decode

import (
	"github.com/techlier/wgpv/internal/codes"
	"github.com/techlier/wgpv/internal/schema"
)

// Value is one decoded field. Which member is meaningful depends on the
// field kind; code fields carry their raw number in Int as well.
type Value struct {
	Field    schema.Field
	Set      bool
	Int      int64
	Float    float32
	Text     string
	Code     codes.Code
	Bytes    []byte
	Template *Container
}

// Container is a decoded section or template.
type Container struct {
	Shape  *schema.Shape
	values []Value
}

func newContainer(shape *schema.Shape) *Container {
	c := &Container{Shape: shape, values: make([]Value, len(shape.Fields))}
	for i, f := range shape.Fields {
		c.values[i].Field = f
	}
	return c
}

// Get returns the value of the named field.
func (c *Container) Get(name string) (Value, bool) {
	if c == nil {
		return Value{}, false
	}
	for _, v := range c.values {
		if v.Field.Name == name {
			return v, v.Set
		}
	}
	return Value{}, false
}

// Has reports whether the named field was decoded.
func (c *Container) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Int returns an integer, flag or code field as int64, or 0 if unset.
func (c *Container) Int(name string) int64 {
	v, _ := c.Get(name)
	return v.Int
}

// Float returns a float field, or 0 if unset.
func (c *Container) Float(name string) float32 {
	v, _ := c.Get(name)
	return v.Float
}

// String returns a string field, or "" if unset.
func (c *Container) String(name string) string {
	v, _ := c.Get(name)
	return v.Text
}

// Code returns a code field. An unset field yields an unknown Code.
func (c *Container) Code(name string) codes.Code {
	v, ok := c.Get(name)
	if !ok {
		return codes.Code{Table: v.Field.Table, Value: int(v.Int)}
	}
	return v.Code
}

// Bytes returns a byte tail field, or nil if unset.
func (c *Container) Bytes(name string) []byte {
	v, _ := c.Get(name)
	return v.Bytes
}

// Template returns a nested template, or nil if unset or unresolved.
func (c *Container) Template(name string) *Container {
	v, _ := c.Get(name)
	return v.Template
}

// Values returns the decoded fields in layout order, skipping unset ones.
func (c *Container) Values() []Value {
	out := make([]Value, 0, len(c.values))
	for _, v := range c.values {
		if v.Set {
			out = append(out, v)
		}
	}
	return out
}
