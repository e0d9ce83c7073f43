package schema

import "github.com/techlier/wgpv/internal/codes"

// header returns the length and section number fields shared by sections 1
// to 7.
func header(number int) []Field {
	return []Field{
		{Name: "length", Offset: 1, Length: 4, Kind: KindInt},
		{Name: "number", Offset: 5, Length: 1, Kind: KindInt, Expected: []int64{int64(number)}},
	}
}

func section(name string, number int, fields ...Field) *Shape {
	return &Shape{Name: name, Section: number, Fields: append(header(number), fields...)}
}

func init() {
	registerSection(&Shape{
		Name:    "indicator",
		Section: SectionIndicator,
		Fields: []Field{
			{Name: "marker", Offset: 1, Length: 4, Kind: KindString, ExpectedText: IndicatorMarker},
			{Name: "reserved", Offset: 5, Length: 2, Kind: KindInt, Expected: []int64{-1}},
			{Name: "discipline", Offset: 7, Length: 1, Kind: KindCode, Table: codes.TableDiscipline,
				Expected: []int64{codes.DisciplineMeteorological, codes.DisciplineOceanographic}},
			{Name: "edition", Offset: 8, Length: 1, Kind: KindInt, Expected: []int64{2}},
			{Name: "totalLength", Offset: 9, Length: 8, Kind: KindInt},
		},
	})

	registerSection(section("identification", SectionIdentification,
		Field{Name: "centre", Offset: 6, Length: 2, Kind: KindInt, Expected: []int64{34}},
		Field{Name: "subCentre", Offset: 8, Length: 2, Kind: KindInt, Expected: []int64{0}},
		Field{Name: "masterVersion", Offset: 10, Length: 1, Kind: KindInt, Expected: []int64{2, 4, 5}},
		Field{Name: "localVersion", Offset: 11, Length: 1, Kind: KindInt, Expected: []int64{1}},
		Field{Name: "referenceTimeSignificance", Offset: 12, Length: 1, Kind: KindCode,
			Table: codes.TableReferenceTime, Expected: []int64{1}},
		Field{Name: "year", Offset: 13, Length: 2, Kind: KindInt},
		Field{Name: "month", Offset: 15, Length: 1, Kind: KindInt},
		Field{Name: "day", Offset: 16, Length: 1, Kind: KindInt},
		Field{Name: "hour", Offset: 17, Length: 1, Kind: KindInt},
		Field{Name: "minute", Offset: 18, Length: 1, Kind: KindInt},
		Field{Name: "second", Offset: 19, Length: 1, Kind: KindInt},
		Field{Name: "productionStatus", Offset: 20, Length: 1, Kind: KindCode,
			Table: codes.TableProductionStatus, Expected: []int64{0}},
		Field{Name: "dataType", Offset: 21, Length: 1, Kind: KindCode,
			Table: codes.TableDataType, Expected: []int64{1, 5}},
		Field{Name: "reserved", Offset: 22, Length: -1, Kind: KindBytes},
	))

	registerSection(section("gridDefinition", SectionGridDefinition,
		Field{Name: "source", Offset: 6, Length: 1, Kind: KindInt, Expected: []int64{0}},
		Field{Name: "numPoints", Offset: 7, Length: 4, Kind: KindInt},
		Field{Name: "numOptional", Offset: 11, Length: 1, Kind: KindInt, Expected: []int64{0}},
		Field{Name: "interpretation", Offset: 12, Length: 1, Kind: KindInt, Expected: []int64{0}},
		Field{Name: "templateNumber", Offset: 13, Length: 2, Kind: KindCode,
			Table: codes.TableGridTemplate, Expected: []int64{codes.GridLatLon}},
		Field{Name: "template", Offset: 15, Length: -1, Kind: KindTemplate,
			Family: FamilyGrid, Selector: "templateNumber"},
	))

	registerSection(section("productDefinition", SectionProductDefinition,
		Field{Name: "numCoordinateValues", Offset: 6, Length: 2, Kind: KindInt, Expected: []int64{0}},
		Field{Name: "templateNumber", Offset: 8, Length: 2, Kind: KindCode, Table: codes.TableProductTemplate},
		Field{Name: "template", Offset: 10, Length: -1, Kind: KindTemplate,
			Family: FamilyProduct, Selector: "templateNumber"},
	))

	registerSection(section("dataRepresentation", SectionDataRepresentation,
		Field{Name: "numDataPoints", Offset: 6, Length: 4, Kind: KindInt},
		Field{Name: "templateNumber", Offset: 10, Length: 2, Kind: KindCode,
			Table: codes.TableDataTemplate, Expected: []int64{codes.DataSimplePacking}},
		Field{Name: "template", Offset: 12, Length: -1, Kind: KindTemplate,
			Family: FamilyData, Selector: "templateNumber"},
	))

	registerSection(section("bitmap", SectionBitmap,
		Field{Name: "indicator", Offset: 6, Length: 1, Kind: KindCode, Table: codes.TableBitmapIndicator},
		Field{Name: "bitmap", Offset: 7, Length: -1, Kind: KindBytes,
			When: Condition{Field: "indicator", Value: 0}},
	))

	registerSection(section("data", SectionData,
		Field{Name: "data", Offset: 6, Length: -1, Kind: KindBytes},
	))

	registerSection(&Shape{
		Name:    "end",
		Section: SectionEnd,
		Fields: []Field{
			{Name: "marker", Offset: 1, Length: 4, Kind: KindString, ExpectedText: EndMarker},
		},
	})
}
