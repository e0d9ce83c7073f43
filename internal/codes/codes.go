// Package codes holds the GRIB2 code tables the decoder resolves values
// against.
//
// Most tables are keyed by a single value. Parameter category (table 4.1) is
// keyed by discipline and parameter number (table 4.2) by discipline and
// category; both are addressed through an outer key, see [LookupIn].
package codes

import (
	"fmt"
	"sort"
)

// Table identifies a GRIB2 code table.
type Table int

// Code tables known to the decoder.
const (
	TableNone               Table = iota
	TableDiscipline                      // 0.0
	TableReferenceTime                   // 1.2
	TableProductionStatus                // 1.3
	TableDataType                        // 1.4
	TableGridTemplate                    // 3.1
	TableEarthShape                      // 3.2
	TableProductTemplate                 // 4.0
	TableParameterCategory               // 4.1
	TableParameterNumber                 // 4.2
	TableGeneratingProcess               // 4.3
	TableTimeUnit                        // 4.4
	TableSurface                         // 4.5
	TableEnsembleType                    // 4.6
	TableDerivedForecast                 // 4.7
	TableStatisticalProcess              // 4.10
	TableTimeIncrement                   // 4.11
	TableDataTemplate                    // 5.0
	TableFieldValueType                  // 5.1
	TableBitmapIndicator                 // 6.0
)

var tableNumbers = map[Table]string{
	TableDiscipline:         "0.0",
	TableReferenceTime:      "1.2",
	TableProductionStatus:   "1.3",
	TableDataType:           "1.4",
	TableGridTemplate:       "3.1",
	TableEarthShape:         "3.2",
	TableProductTemplate:    "4.0",
	TableParameterCategory:  "4.1",
	TableParameterNumber:    "4.2",
	TableGeneratingProcess:  "4.3",
	TableTimeUnit:           "4.4",
	TableSurface:            "4.5",
	TableEnsembleType:       "4.6",
	TableDerivedForecast:    "4.7",
	TableStatisticalProcess: "4.10",
	TableTimeIncrement:      "4.11",
	TableDataTemplate:       "5.0",
	TableFieldValueType:     "5.1",
	TableBitmapIndicator:    "6.0",
}

// String returns the WMO table number, e.g. "4.2".
func (t Table) String() string {
	if s, ok := tableNumbers[t]; ok {
		return s
	}
	return fmt.Sprintf("Table(%d)", int(t))
}

// Composite reports whether the table is keyed by an outer value as well.
func (t Table) Composite() bool {
	return t == TableParameterCategory || t == TableParameterNumber
}

// Entry is one named value of a code table. Description is free text used
// when describing a product, such as the surface wording of table 4.5.
type Entry struct {
	Value       int
	Name        string
	Abbrev      string
	Unit        string
	Description string
}

// Code is a decoded code table value. A value missing from the catalog is
// still a valid Code; it is reported as unknown and carries the raw number.
type Code struct {
	Table Table
	Outer int
	Value int
	entry *Entry
}

// Known reports whether the value resolved to a catalog entry.
func (c Code) Known() bool { return c.entry != nil }

// Name returns the entry name, or "" when unknown.
func (c Code) Name() string {
	if c.entry == nil {
		return ""
	}
	return c.entry.Name
}

// Abbrev returns the entry abbreviation, or "" when unknown.
func (c Code) Abbrev() string {
	if c.entry == nil {
		return ""
	}
	return c.entry.Abbrev
}

// Unit returns the entry unit, or "" when unknown or unitless.
func (c Code) Unit() string {
	if c.entry == nil {
		return ""
	}
	return c.entry.Unit
}

// Description returns the entry description.
func (c Code) Description() string {
	if c.entry == nil {
		return ""
	}
	return c.entry.Description
}

// Is reports whether c is the known value v of the same table.
func (c Code) Is(v int) bool {
	return c.entry != nil && c.Value == v
}

func (c Code) String() string {
	switch {
	case c.entry == nil:
		return fmt.Sprintf("UNKNOWN(%d)", c.Value)
	case c.entry.Abbrev != "":
		return c.entry.Abbrev
	default:
		return c.entry.Name
	}
}

type key struct {
	table Table
	outer int
	value int
}

var catalog = map[key]*Entry{}

func register(t Table, outer int, entries []Entry) {
	for i := range entries {
		e := &entries[i]
		catalog[key{t, outer, e.Value}] = e
	}
}

// Lookup resolves v in a single-keyed table. The returned Code is always
// usable; ok is false when v is not in the catalog.
func Lookup(t Table, v int) (Code, bool) {
	return LookupIn(t, 0, v)
}

// LookupIn resolves v in a table keyed by an outer value. For table 4.1
// the outer value is the discipline; for table 4.2 use [ParameterKey].
func LookupIn(t Table, outer, v int) (Code, bool) {
	e, ok := catalog[key{t, outer, v}]
	return Code{Table: t, Outer: outer, Value: v, entry: e}, ok
}

// ParameterKey builds the outer key of table 4.2 from a discipline and a
// parameter category.
func ParameterKey(discipline, category int) int {
	return discipline<<8 | category&0xFF
}

// Values returns the known values of a table under the given outer key,
// in ascending order.
func Values(t Table, outer int) []int {
	var out []int
	for k := range catalog {
		if k.table == t && k.outer == outer {
			out = append(out, k.value)
		}
	}
	sort.Ints(out)
	return out
}
