package domain

// Source column names, exactly as they appear in the dataset header.
const (
	ColumnCountry        = "Country"
	ColumnYear           = "Year"
	ColumnCO2            = "CO2 Emissions (Tons/Capita)"
	ColumnRainfall       = "Rainfall (mm)"
	ColumnPopulation     = "Population"
	ColumnRenewable      = "Renewable Energy (%)"
	ColumnForest         = "Forest Area (%)"
	ColumnAvgTemperature = "Avg Temperature (°C)"
)

// FeatureCount is the number of predictors in a FeatureVector.
const FeatureCount = 6

const numericColumnCount = FeatureCount + 1

// NumericColumns lists the numeric columns in feature order, target last.
var NumericColumns = [numericColumnCount]string{
	ColumnYear,
	ColumnCO2,
	ColumnRainfall,
	ColumnPopulation,
	ColumnRenewable,
	ColumnForest,
	ColumnAvgTemperature,
}

// FeatureNames returns the feature column names in FeatureVector order.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	copy(names, NumericColumns[:FeatureCount])
	return names
}

// Table is a header row plus data rows as read from a tabular source.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell is a numeric value that may be absent in the source.
type Cell struct {
	Value float64
	Valid bool
}

// RawRecord is one dataset row before imputation. Numeric is indexed like
// NumericColumns. An empty Country is missing.
type RawRecord struct {
	Country string
	Numeric [numericColumnCount]Cell
}

// ClimateRecord is one cleaned row of the historical dataset.
type ClimateRecord struct {
	Country                string  `json:"country"`
	Year                   float64 `json:"year"`
	CO2EmissionsPerCapita  float64 `json:"co2_emissions_per_capita"`
	RainfallMM             float64 `json:"rainfall_mm"`
	Population             float64 `json:"population"`
	RenewableEnergyPercent float64 `json:"renewable_energy_percent"`
	ForestAreaPercent      float64 `json:"forest_area_percent"`
	AvgTemperature         float64 `json:"avg_temperature"`
}

// Features returns the record's predictors in FeatureVector order.
func (r ClimateRecord) Features() FeatureVector {
	return FeatureVector{
		r.Year,
		r.CO2EmissionsPerCapita,
		r.RainfallMM,
		r.Population,
		r.RenewableEnergyPercent,
		r.ForestAreaPercent,
	}
}

// Raw converts a cleaned record back into a fully populated RawRecord.
func (r ClimateRecord) Raw() RawRecord {
	raw := RawRecord{Country: r.Country}
	for i, v := range r.values() {
		raw.Numeric[i] = Cell{Value: v, Valid: true}
	}
	return raw
}

func (r ClimateRecord) values() [numericColumnCount]float64 {
	return [numericColumnCount]float64{
		r.Year,
		r.CO2EmissionsPerCapita,
		r.RainfallMM,
		r.Population,
		r.RenewableEnergyPercent,
		r.ForestAreaPercent,
		r.AvgTemperature,
	}
}

func recordFromValues(country string, v [numericColumnCount]float64) ClimateRecord {
	return ClimateRecord{
		Country:                country,
		Year:                   v[0],
		CO2EmissionsPerCapita:  v[1],
		RainfallMM:             v[2],
		Population:             v[3],
		RenewableEnergyPercent: v[4],
		ForestAreaPercent:      v[5],
		AvgTemperature:         v[6],
	}
}

// FeatureVector is an ordered tuple of predictors for one year:
// Year, CO2EmissionsPerCapita, RainfallMM, Population, RenewableEnergyPercent,
// ForestAreaPercent.
type FeatureVector []float64

// NewFeatureVector builds a FeatureVector in the canonical order.
func NewFeatureVector(year, co2, rainfallMM, population, renewablePct, forestPct float64) FeatureVector {
	return FeatureVector{year, co2, rainfallMM, population, renewablePct, forestPct}
}

// Year returns the first feature, or 0 for an empty vector.
func (v FeatureVector) Year() float64 {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

// Sample pairs a feature vector with its observed temperature.
type Sample struct {
	Features FeatureVector `json:"features"`
	Target   float64       `json:"target"`
}

// TrainingSplit is a disjoint train/test partition of samples.
type TrainingSplit struct {
	Train []Sample
	Test  []Sample
}

// ForecastInput holds projected feature vectors for future years.
type ForecastInput []FeatureVector
