package codes

// Discipline (table 0.0).
const (
	DisciplineMeteorological = 0
	DisciplineOceanographic  = 10
)

// Generating process (table 4.3).
const (
	ProcessInitialization = 1
	ProcessForecast       = 2
	ProcessEnsemble       = 4
)

// Unit of time range (table 4.4).
const (
	TimeUnitHour     = 1
	TimeUnitDay      = 2
	TimeUnitSixHours = 11
)

// Fixed surface type (table 4.5).
const (
	SurfaceGround            = 1
	SurfaceIsobaric          = 100
	SurfaceMeanSeaLevel      = 101
	SurfaceHeightAboveGround = 103
)

// Template numbers (tables 3.1, 4.0, 5.0).
const (
	GridLatLon   = 0
	GridGaussian = 40

	ProductForecast                = 0
	ProductEnsemble                = 1
	ProductDerivedEnsemble         = 2
	ProductStatistical             = 8
	ProductIntervalEnsemble        = 11
	ProductDerivedIntervalEnsemble = 12

	DataSimplePacking = 0
)

// BitmapNone is the table 6.0 indicator for "no bitmap applies".
const BitmapNone = 255

func init() {
	register(TableDiscipline, 0, []Entry{
		{Value: 0, Name: "Meteorological products"},
		{Value: 10, Name: "Oceanographic products"},
	})
	register(TableReferenceTime, 0, []Entry{
		{Value: 0, Name: "Analysis"},
		{Value: 1, Name: "Start of forecast"},
		{Value: 2, Name: "Verifying time of forecast"},
		{Value: 3, Name: "Observation time"},
	})
	register(TableProductionStatus, 0, []Entry{
		{Value: 0, Name: "Operational products"},
		{Value: 1, Name: "Operational test products"},
		{Value: 2, Name: "Research products"},
	})
	register(TableDataType, 0, []Entry{
		{Value: 0, Name: "Analysis products"},
		{Value: 1, Name: "Forecast products"},
		{Value: 2, Name: "Analysis and forecast products"},
		{Value: 3, Name: "Control forecast products"},
		{Value: 4, Name: "Perturbed forecast products"},
		{Value: 5, Name: "Control and perturbed forecast products"},
	})
	register(TableGridTemplate, 0, []Entry{
		{Value: GridLatLon, Name: "Latitude/longitude"},
		{Value: GridGaussian, Name: "Gaussian latitude/longitude"},
	})
	register(TableEarthShape, 0, []Entry{
		{Value: 0, Name: "Spherical, radius 6367470.0 m"},
		{Value: 1, Name: "Spherical, radius specified by data producer"},
		{Value: 4, Name: "Oblate spheroid as defined in IAG-GRS80"},
		{Value: 6, Name: "Spherical, radius 6371229.0 m"},
	})
	register(TableProductTemplate, 0, []Entry{
		{Value: ProductForecast, Name: "Analysis or forecast at a point in time"},
		{Value: ProductEnsemble, Name: "Individual ensemble forecast at a point in time"},
		{Value: ProductDerivedEnsemble, Name: "Derived forecast based on all ensemble members at a point in time"},
		{Value: ProductStatistical, Name: "Average, accumulation or extreme over a time interval"},
		{Value: ProductIntervalEnsemble, Name: "Individual ensemble forecast over a time interval"},
		{Value: ProductDerivedIntervalEnsemble, Name: "Derived ensemble forecast over a time interval"},
	})

	register(TableParameterCategory, DisciplineMeteorological, []Entry{
		{Value: 0, Name: "Temperature"},
		{Value: 1, Name: "Moisture"},
		{Value: 2, Name: "Momentum"},
		{Value: 3, Name: "Mass"},
		{Value: 6, Name: "Cloud"},
	})
	register(TableParameterCategory, DisciplineOceanographic, []Entry{
		{Value: 0, Name: "Waves"},
	})

	met := DisciplineMeteorological
	register(TableParameterNumber, ParameterKey(met, 0), []Entry{
		{Value: 0, Name: "Temperature", Abbrev: "TMP", Unit: "K"},
		{Value: 9, Name: "Temperature anomaly", Abbrev: "TMPA", Unit: "K"},
	})
	register(TableParameterNumber, ParameterKey(met, 1), []Entry{
		{Value: 1, Name: "Relative humidity", Abbrev: "RH", Unit: "%"},
		{Value: 8, Name: "Total precipitation", Abbrev: "TP", Unit: "kg/m^2"},
	})
	register(TableParameterNumber, ParameterKey(met, 2), []Entry{
		{Value: 2, Name: "U-component of wind", Abbrev: "UGRD", Unit: "m/s"},
		{Value: 3, Name: "V-component of wind", Abbrev: "VGRD", Unit: "m/s"},
		{Value: 8, Name: "Vertical velocity (pressure)", Abbrev: "VVEL", Unit: "Pa/s"},
	})
	register(TableParameterNumber, ParameterKey(met, 3), []Entry{
		{Value: 0, Name: "Pressure", Abbrev: "PRES", Unit: "Pa"},
		{Value: 1, Name: "Pressure reduced to MSL", Abbrev: "PRMSL", Unit: "Pa"},
		{Value: 5, Name: "Geopotential height", Abbrev: "HGT", Unit: "gpm"},
		{Value: 8, Name: "Pressure anomaly", Abbrev: "PRESA", Unit: "Pa"},
		{Value: 9, Name: "Geopotential height anomaly", Abbrev: "HGTA", Unit: "gpm"},
	})
	register(TableParameterNumber, ParameterKey(met, 6), []Entry{
		{Value: 1, Name: "Total cloud cover", Abbrev: "TCDC", Unit: "%"},
		{Value: 3, Name: "Low cloud cover", Abbrev: "LCDC", Unit: "%"},
		{Value: 4, Name: "Medium cloud cover", Abbrev: "MCDC", Unit: "%"},
		{Value: 5, Name: "High cloud cover", Abbrev: "HCDC", Unit: "%"},
	})
	register(TableParameterNumber, ParameterKey(DisciplineOceanographic, 0), []Entry{
		{Value: 3, Name: "Significant height of combined wind waves and swell", Abbrev: "HTSGW", Unit: "m"},
		{Value: 10, Name: "Primary wave direction", Abbrev: "DIRPW", Unit: "degree true"},
		{Value: 11, Name: "Primary wave mean period", Abbrev: "PERPW", Unit: "s"},
	})

	register(TableGeneratingProcess, 0, []Entry{
		{Value: 0, Name: "Analysis"},
		{Value: ProcessInitialization, Name: "Initialization"},
		{Value: ProcessForecast, Name: "Forecast"},
		{Value: ProcessEnsemble, Name: "Ensemble forecast"},
	})
	register(TableTimeUnit, 0, []Entry{
		{Value: 0, Name: "Minute", Abbrev: "min"},
		{Value: TimeUnitHour, Name: "Hour", Abbrev: "hour"},
		{Value: TimeUnitDay, Name: "Day", Abbrev: "day"},
		{Value: TimeUnitSixHours, Name: "6 hours", Abbrev: "6hour"},
	})
	register(TableSurface, 0, []Entry{
		{Value: SurfaceGround, Name: "Ground or water surface", Description: "surface"},
		{Value: SurfaceIsobaric, Name: "Isobaric surface", Unit: "Pa"},
		{Value: SurfaceMeanSeaLevel, Name: "Mean sea level", Description: "mean sea level"},
		{Value: SurfaceHeightAboveGround, Name: "Specified height level above ground", Unit: "m", Description: "above ground"},
	})
	register(TableEnsembleType, 0, []Entry{
		{Value: 0, Name: "Unperturbed high-resolution control forecast"},
		{Value: 1, Name: "Unperturbed low-resolution control forecast"},
		{Value: 2, Name: "Negatively perturbed forecast"},
		{Value: 3, Name: "Positively perturbed forecast"},
		{Value: 4, Name: "Multi-model forecast"},
		{Value: 5, Name: "Reserved"},
	})
	register(TableDerivedForecast, 0, []Entry{
		{Value: 0, Name: "Unweighted mean of all members"},
		{Value: 1, Name: "Weighted mean of all members"},
		{Value: 2, Name: "Standard deviation with respect to cluster mean"},
		{Value: 3, Name: "Standard deviation with respect to cluster mean, normalized"},
		{Value: 4, Name: "Spread of all members"},
	})
	register(TableStatisticalProcess, 0, []Entry{
		{Value: 0, Name: "Average"},
		{Value: 1, Name: "Accumulation"},
		{Value: 2, Name: "Maximum"},
		{Value: 3, Name: "Minimum"},
	})
	register(TableTimeIncrement, 0, []Entry{
		{Value: 1, Name: "Successive times processed have same forecast time, start time of forecast is incremented"},
		{Value: 2, Name: "Successive times processed have same start time of forecast, forecast time is incremented"},
	})
	register(TableDataTemplate, 0, []Entry{
		{Value: DataSimplePacking, Name: "Grid point data - simple packing"},
	})
	register(TableFieldValueType, 0, []Entry{
		{Value: 0, Name: "Floating point"},
		{Value: 1, Name: "Integer"},
	})
	register(TableBitmapIndicator, 0, []Entry{
		{Value: 0, Name: "A bitmap applies to this product"},
		{Value: 254, Name: "A bitmap previously defined in the same message applies"},
		{Value: BitmapNone, Name: "A bitmap does not apply to this product"},
	})
}
