package domain

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Imputation describes the fill values Clean applied.
type Imputation struct {
	// ColumnMeans holds the mean of the observed values per numeric column.
	ColumnMeans map[string]float64 `json:"column_means"`
	// CountryMode is the most frequent observed Country.
	CountryMode string `json:"country_mode"`
	// Filled counts the missing cells filled per column.
	Filled map[string]int `json:"filled"`
}

// FilledCells returns the total number of cells Clean filled.
func (im Imputation) FilledCells() int {
	n := 0
	for _, c := range im.Filled {
		n += c
	}
	return n
}

// Clean imputes every missing cell. Each numeric column is filled with the
// mean of its own observed values; Country with its most frequent observed
// value, ties broken by first appearance. Cleaning clean records is a no-op.
func Clean(raw []RawRecord) ([]ClimateRecord, Imputation, error) {
	im := Imputation{
		ColumnMeans: make(map[string]float64, numericColumnCount),
		Filled:      make(map[string]int, numericColumnCount+1),
	}

	var means [numericColumnCount]float64
	for c, col := range NumericColumns {
		observed := make([]float64, 0, len(raw))
		for i := range raw {
			if cell := raw[i].Numeric[c]; cell.Valid {
				observed = append(observed, cell.Value)
			}
		}
		if len(observed) == 0 {
			return nil, Imputation{}, fmt.Errorf("%w: column %q has no values to impute from", ErrInsufficientData, col)
		}
		means[c] = stat.Mean(observed, nil)
		im.ColumnMeans[col] = means[c]
	}

	mode, ok := countryMode(raw)
	if !ok {
		return nil, Imputation{}, fmt.Errorf("%w: column %q has no values to impute from", ErrInsufficientData, ColumnCountry)
	}
	im.CountryMode = mode

	records := make([]ClimateRecord, len(raw))
	for i := range raw {
		country := raw[i].Country
		if country == "" {
			country = mode
			im.Filled[ColumnCountry]++
		}
		var v [numericColumnCount]float64
		for c, cell := range raw[i].Numeric {
			if cell.Valid {
				v[c] = cell.Value
				continue
			}
			v[c] = means[c]
			im.Filled[NumericColumns[c]]++
		}
		records[i] = recordFromValues(country, v)
	}
	return records, im, nil
}

func countryMode(raw []RawRecord) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for i := range raw {
		c := raw[i].Country
		if c == "" {
			continue
		}
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best, true
}
