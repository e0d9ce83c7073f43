package schema

import "github.com/techlier/wgpv/internal/codes"

func template(name string, section int, family Family, number int, fields ...Field) *Shape {
	return &Shape{Name: name, Section: section, Family: family, Template: number, Fields: fields}
}

// extend returns a copy of base's fields followed by more.
func extend(base *Shape, more ...Field) []Field {
	out := make([]Field, 0, len(base.Fields)+len(more))
	out = append(out, base.Fields...)
	return append(out, more...)
}

func intField(name string, offset, length int, expected ...int64) Field {
	return Field{Name: name, Offset: offset, Length: length, Kind: KindInt, Expected: expected}
}

func codeField(name string, offset, length int, table codes.Table, expected ...int64) Field {
	return Field{Name: name, Offset: offset, Length: length, Kind: KindCode, Table: table, Expected: expected}
}

// latLonFields is the layout shared by grid templates 3.0 and 3.40. The
// two differ only in the meaning of octets 68-71.
func latLonFields(last string) []Field {
	return []Field{
		codeField("shapeOfEarth", 15, 1, codes.TableEarthShape, 6),
		intField("scaleFactorOfRadius", 16, 1, -1),
		intField("scaledValueOfRadius", 17, 4, -1),
		intField("scaleFactorOfMajorAxis", 21, 1, -1),
		intField("scaledValueOfMajorAxis", 22, 4, -1),
		intField("scaleFactorOfMinorAxis", 26, 1, -1),
		intField("scaledValueOfMinorAxis", 27, 4, -1),
		intField("ni", 31, 4),
		intField("nj", 35, 4),
		intField("basicAngle", 39, 4, 0),
		intField("subdivisions", 43, 4, -1),
		intField("la1", 47, 4),
		intField("lo1", 51, 4),
		{Name: "resolutionFlags", Offset: 55, Length: 1, Kind: KindFlags, Expected: []int64{0x30}},
		intField("la2", 56, 4),
		intField("lo2", 60, 4),
		intField("di", 64, 4),
		intField(last, 68, 4),
		{Name: "scanningMode", Offset: 72, Length: 1, Kind: KindFlags, Expected: []int64{0}},
	}
}

// intervalFields describes the end of the overall time interval and the
// outermost time range, starting at octet start.
func intervalFields(start int) []Field {
	return []Field{
		intField("endYear", start, 2),
		intField("endMonth", start+2, 1),
		intField("endDay", start+3, 1),
		intField("endHour", start+4, 1),
		intField("endMinute", start+5, 1),
		intField("endSecond", start+6, 1),
		intField("numTimeRanges", start+7, 1),
		intField("numMissing", start+8, 4),
		codeField("statisticalProcess", start+12, 1, codes.TableStatisticalProcess),
		codeField("timeIncrementType", start+13, 1, codes.TableTimeIncrement),
		codeField("rangeUnit", start+14, 1, codes.TableTimeUnit),
		intField("rangeLength", start+15, 4),
		codeField("incrementUnit", start+19, 1, codes.TableTimeUnit),
		intField("increment", start+20, 4),
	}
}

func init() {
	registerTemplate(template("latLon", SectionGridDefinition, FamilyGrid, codes.GridLatLon,
		latLonFields("dj")...))
	registerTemplate(template("gaussian", SectionGridDefinition, FamilyGrid, codes.GridGaussian,
		latLonFields("parallels")...))

	forecast := template("forecast", SectionProductDefinition, FamilyProduct, codes.ProductForecast,
		Field{Name: "parameterCategory", Offset: 10, Length: 1, Kind: KindCode,
			Table: codes.TableParameterCategory, Key: KeyDiscipline},
		Field{Name: "parameterNumber", Offset: 11, Length: 1, Kind: KindCode,
			Table: codes.TableParameterNumber, Key: KeyCategory, KeyField: "parameterCategory"},
		codeField("generatingProcess", 12, 1, codes.TableGeneratingProcess),
		intField("backgroundProcess", 13, 1),
		intField("forecastProcess", 14, 1, -1),
		intField("cutoffHours", 15, 2),
		intField("cutoffMinutes", 17, 1),
		codeField("timeUnit", 18, 1, codes.TableTimeUnit),
		intField("forecastTime", 19, 4),
		codeField("firstSurfaceType", 23, 1, codes.TableSurface),
		intField("firstSurfaceScaleFactor", 24, 1),
		intField("firstSurfaceScaledValue", 25, 4),
		intField("secondSurfaceType", 29, 1, -1),
		intField("secondSurfaceScaleFactor", 30, 1, -1),
		intField("secondSurfaceScaledValue", 31, 4, -1),
	)
	registerTemplate(forecast)

	ensemble := template("ensemble", SectionProductDefinition, FamilyProduct, codes.ProductEnsemble,
		extend(forecast,
			codeField("ensembleType", 35, 1, codes.TableEnsembleType),
			intField("perturbationNumber", 36, 1),
			intField("numForecasts", 37, 1),
		)...)
	registerTemplate(ensemble)

	derived := template("derivedEnsemble", SectionProductDefinition, FamilyProduct, codes.ProductDerivedEnsemble,
		extend(forecast,
			codeField("derivedForecast", 35, 1, codes.TableDerivedForecast),
			intField("numForecasts", 36, 1),
		)...)
	registerTemplate(derived)

	registerTemplate(template("statistical", SectionProductDefinition, FamilyProduct, codes.ProductStatistical,
		extend(forecast, intervalFields(35)...)...))
	registerTemplate(template("intervalEnsemble", SectionProductDefinition, FamilyProduct, codes.ProductIntervalEnsemble,
		extend(ensemble, intervalFields(38)...)...))
	registerTemplate(template("derivedIntervalEnsemble", SectionProductDefinition, FamilyProduct, codes.ProductDerivedIntervalEnsemble,
		extend(derived, intervalFields(37)...)...))

	registerTemplate(template("simplePacking", SectionDataRepresentation, FamilyData, codes.DataSimplePacking,
		Field{Name: "referenceValue", Offset: 12, Length: 4, Kind: KindFloat},
		intField("binaryScale", 16, 2),
		intField("decimalScale", 18, 2),
		intField("numBits", 20, 1, 12, 16),
		codeField("fieldValueType", 21, 1, codes.TableFieldValueType, 0),
	))
}
