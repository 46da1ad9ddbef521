// Package scenario loads forecast projections from a YAML file.
//
// A scenario file lists one entry per projected year:
//
//	projections:
//	  - year: 2026
//	    co2_emissions_per_capita: 7.0
//	    rainfall_mm: 1000
//	    population: 7800000000
//	    renewable_energy_percent: 20
//	    forest_area_percent: 30
package scenario

import (
	"fmt"
	"os"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"gopkg.in/yaml.v2"
)

type file struct {
	Projections []projection `yaml:"projections"`
}

// Pointer fields distinguish an omitted value from an explicit zero.
type projection struct {
	Year              *float64 `yaml:"year"`
	CO2PerCapita      *float64 `yaml:"co2_emissions_per_capita"`
	RainfallMM        *float64 `yaml:"rainfall_mm"`
	Population        *float64 `yaml:"population"`
	RenewablePercent  *float64 `yaml:"renewable_energy_percent"`
	ForestAreaPercent *float64 `yaml:"forest_area_percent"`
}

// Load reads and parses the scenario file at path.
func Load(path string) (domain.ForecastInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read scenario file: %w", domain.ErrConfig, err)
	}
	return Parse(data)
}

// Parse decodes a scenario document. Unknown keys and omitted fields are
// rejected; the result is validated with domain.ValidateForecastInput.
func Parse(data []byte) (domain.ForecastInput, error) {
	var f file
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse scenario: %w", domain.ErrConfig, err)
	}

	input := make(domain.ForecastInput, 0, len(f.Projections))
	for i, p := range f.Projections {
		v, err := p.vector()
		if err != nil {
			return nil, fmt.Errorf("%w: projection %d: %w", domain.ErrConfig, i, err)
		}
		input = append(input, v)
	}

	if err := domain.ValidateForecastInput(input); err != nil {
		return nil, err
	}
	return input, nil
}

func (p projection) vector() (domain.FeatureVector, error) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"year", p.Year},
		{"co2_emissions_per_capita", p.CO2PerCapita},
		{"rainfall_mm", p.RainfallMM},
		{"population", p.Population},
		{"renewable_energy_percent", p.RenewablePercent},
		{"forest_area_percent", p.ForestAreaPercent},
	}
	for _, f := range fields {
		if f.v == nil {
			return nil, fmt.Errorf("missing %s", f.name)
		}
	}
	return domain.NewFeatureVector(*p.Year, *p.CO2PerCapita, *p.RainfallMM,
		*p.Population, *p.RenewablePercent, *p.ForestAreaPercent), nil
}

// Marshal encodes input in the scenario file format.
func Marshal(input domain.ForecastInput) ([]byte, error) {
	f := file{Projections: make([]projection, len(input))}
	for i, v := range input {
		if len(v) != domain.FeatureCount {
			return nil, fmt.Errorf("%w: projection %d has %d features, want %d",
				domain.ErrDimension, i, len(v), domain.FeatureCount)
		}
		vals := append([]float64(nil), v...)
		f.Projections[i] = projection{
			Year:              &vals[0],
			CO2PerCapita:      &vals[1],
			RainfallMM:        &vals[2],
			Population:        &vals[3],
			RenewablePercent:  &vals[4],
			ForestAreaPercent: &vals[5],
		}
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode scenario: %w", err)
	}
	return data, nil
}
