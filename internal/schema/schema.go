package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/techlier/wgpv/internal/codes"
)

// Section numbers.
const (
	SectionIndicator          = 0
	SectionIdentification     = 1
	SectionLocalUse           = 2
	SectionGridDefinition     = 3
	SectionProductDefinition  = 4
	SectionDataRepresentation = 5
	SectionBitmap             = 6
	SectionData               = 7
	SectionEnd                = 8
)

// Fixed section lengths and markers.
const (
	IndicatorLength = 16
	EndLength       = 4

	IndicatorMarker = "GRIB"
	EndMarker       = "7777"

	// EndMarkerValue is EndMarker read as a big-endian uint32. A section
	// length equal to it starts the End Section.
	EndMarkerValue = 0x37373737
)

var (
	// ErrUnknownSection is returned for section numbers without a shape.
	ErrUnknownSection = errors.New("schema: unknown section number")

	// ErrNotContiguous is returned by Check when field offsets leave gaps
	// or overlap.
	ErrNotContiguous = errors.New("schema: field offsets are not contiguous")
)

// Kind is the semantic kind of a field. It selects how the decoder turns
// octets into a value.
type Kind int

// Field kinds.
const (
	// KindInt is a big-endian sign-magnitude integer of 1, 2, 4 or 8 octets.
	KindInt Kind = iota
	// KindFloat is an IEEE-754 single precision value.
	KindFloat
	// KindString is raw character data.
	KindString
	// KindCode is an unsigned value resolved against a code table.
	KindCode
	// KindFlags is an unsigned bit field.
	KindFlags
	// KindTemplate is a nested template selected by an earlier field.
	KindTemplate
	// KindBytes is the raw remainder of the container.
	KindBytes
)

var kindNames = [...]string{"int", "float", "string", "code", "flags", "template", "bytes"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Family groups template shapes by the section that embeds them.
type Family int

// Template families.
const (
	FamilyNone Family = iota
	FamilyGrid
	FamilyProduct
	FamilyData
)

func (f Family) String() string {
	switch f {
	case FamilyGrid:
		return "grid"
	case FamilyProduct:
		return "product"
	case FamilyData:
		return "data"
	}
	return "none"
}

// KeySource says where the outer key of a composite code lookup comes from.
type KeySource int

const (
	// KeyNone means a plain single-keyed lookup.
	KeyNone KeySource = iota
	// KeyDiscipline keys the lookup by the message discipline.
	KeyDiscipline
	// KeyCategory keys the lookup by the discipline and the value of
	// Field.KeyField in the same container.
	KeyCategory
)

// Condition gates a field on the value of an earlier field in the same
// container. The zero Condition always holds.
type Condition struct {
	Field string
	Value int64
}

// Field describes one field of a container.
type Field struct {
	Name   string
	Offset int // 1-based octet
	Length int // octets; -1 is the remainder of the container
	Kind   Kind

	// Table is the code table of a KindCode field.
	Table    codes.Table
	Key      KeySource
	KeyField string

	// Family and Selector pick the nested shape of a KindTemplate field:
	// Selector names the field holding the template number.
	Family   Family
	Selector string

	// Expected is an advisory whitelist checked only when validation is on.
	Expected     []int64
	ExpectedText string

	When Condition
}

// Variable reports whether the field runs to the end of its container.
func (f Field) Variable() bool {
	return f.Length < 0
}

// Shape is the ordered field layout of a section or template.
type Shape struct {
	Name     string
	Section  int
	Family   Family
	Template int // -1 for section shapes
	Fields   []Field
}

// FirstOffset returns the octet offset of the first field.
func (s *Shape) FirstOffset() int {
	if len(s.Fields) == 0 {
		return 1
	}
	return s.Fields[0].Offset
}

// Length returns the fixed length in octets from FirstOffset, or -1 when
// the last field is variable.
func (s *Shape) Length() int {
	if len(s.Fields) == 0 {
		return 0
	}
	last := s.Fields[len(s.Fields)-1]
	if last.Variable() {
		return -1
	}
	return last.Offset + last.Length - s.FirstOffset()
}

// Field returns the field with the given name.
func (s *Shape) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s *Shape) String() string {
	if s.Template >= 0 {
		return fmt.Sprintf("%s(%d.%d)", s.Name, s.Section, s.Template)
	}
	return fmt.Sprintf("%s(%d)", s.Name, s.Section)
}

// Check verifies that the fields of s are contiguous: each offset equals
// the previous offset plus the previous length, and only the last field may
// be variable.
func Check(s *Shape) error {
	for i := 1; i < len(s.Fields); i++ {
		prev, cur := s.Fields[i-1], s.Fields[i]
		if prev.Variable() {
			return fmt.Errorf("%w: %s: variable field %q is not last", ErrNotContiguous, s, prev.Name)
		}
		if want := prev.Offset + prev.Length; cur.Offset != want {
			return fmt.Errorf("%w: %s: field %q at octet %d, expected %d",
				ErrNotContiguous, s, cur.Name, cur.Offset, want)
		}
	}
	return nil
}

var (
	sections  = map[int]*Shape{}
	templates = map[Family]map[int]*Shape{}
)

func registerSection(s *Shape) {
	s.Template = -1
	sections[s.Section] = s
}

func registerTemplate(s *Shape) {
	m, ok := templates[s.Family]
	if !ok {
		m = map[int]*Shape{}
		templates[s.Family] = m
	}
	m[s.Template] = s
}

// Section returns the shape of a section.
func Section(number int) (*Shape, error) {
	s, ok := sections[number]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSection, number)
	}
	return s, nil
}

// Template returns the template shape registered for (family, number).
func Template(family Family, number int) (*Shape, bool) {
	s, ok := templates[family][number]
	return s, ok
}

// Templates lists the registered template numbers of a family in order.
func Templates(family Family) []int {
	out := make([]int, 0, len(templates[family]))
	for n := range templates[family] {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// All returns every registered shape, sections first.
func All() []*Shape {
	var out []*Shape
	for n := 0; n <= SectionEnd; n++ {
		if s, ok := sections[n]; ok {
			out = append(out, s)
		}
	}
	for _, f := range []Family{FamilyGrid, FamilyProduct, FamilyData} {
		for _, n := range Templates(f) {
			out = append(out, templates[f][n])
		}
	}
	return out
}
