package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnown(t *testing.T) {
	c, ok := Lookup(TableTimeUnit, TimeUnitHour)
	require.True(t, ok)
	assert.True(t, c.Known())
	assert.Equal(t, "Hour", c.Name())
	assert.Equal(t, "hour", c.String())
	assert.True(t, c.Is(TimeUnitHour))
}

func TestLookupUnknown(t *testing.T) {
	c, ok := Lookup(TableTimeUnit, 99)
	assert.False(t, ok)
	assert.False(t, c.Known())
	assert.Equal(t, 99, c.Value)
	assert.Equal(t, "UNKNOWN(99)", c.String())
	assert.Empty(t, c.Name())
	assert.False(t, c.Is(99))
}

func TestParameterCategoryByDiscipline(t *testing.T) {
	tests := []struct {
		name       string
		discipline int
		category   int
		want       string
		known      bool
	}{
		{"meteorological temperature", DisciplineMeteorological, 0, "Temperature", true},
		{"oceanographic waves", DisciplineOceanographic, 0, "Waves", true},
		{"oceanographic has no cloud", DisciplineOceanographic, 6, "", false},
		{"unknown discipline", 3, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := LookupIn(TableParameterCategory, tt.discipline, tt.category)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.want, c.Name())
		})
	}
}

func TestParameterNumberByCategory(t *testing.T) {
	tests := []struct {
		discipline, category, number int
		abbrev, unit                 string
	}{
		{DisciplineMeteorological, 0, 0, "TMP", "K"},
		{DisciplineMeteorological, 1, 1, "RH", "%"},
		{DisciplineMeteorological, 2, 2, "UGRD", "m/s"},
		{DisciplineMeteorological, 3, 5, "HGT", "gpm"},
		{DisciplineMeteorological, 6, 1, "TCDC", "%"},
		{DisciplineOceanographic, 0, 3, "HTSGW", "m"},
		{DisciplineOceanographic, 0, 11, "PERPW", "s"},
	}
	for _, tt := range tests {
		t.Run(tt.abbrev, func(t *testing.T) {
			c, ok := LookupIn(TableParameterNumber, ParameterKey(tt.discipline, tt.category), tt.number)
			require.True(t, ok)
			assert.Equal(t, tt.abbrev, c.Abbrev())
			assert.Equal(t, tt.unit, c.Unit())
		})
	}

	// Same number, different category.
	c, ok := LookupIn(TableParameterNumber, ParameterKey(DisciplineMeteorological, 3), 0)
	require.True(t, ok)
	assert.Equal(t, "PRES", c.Abbrev())

	_, ok = LookupIn(TableParameterNumber, ParameterKey(DisciplineOceanographic, 0), 0)
	assert.False(t, ok)
}

func TestTableString(t *testing.T) {
	assert.Equal(t, "4.2", TableParameterNumber.String())
	assert.Equal(t, "4.10", TableStatisticalProcess.String())
	assert.Equal(t, "Table(99)", Table(99).String())
	assert.True(t, TableParameterCategory.Composite())
	assert.False(t, TableSurface.Composite())
}

func TestValues(t *testing.T) {
	assert.Equal(t, []int{0, 10}, Values(TableDiscipline, 0))
	assert.Equal(t, []int{3, 10, 11}, Values(TableParameterNumber, ParameterKey(DisciplineOceanographic, 0)))
}
