package domain

import (
	"fmt"
	"math"
	"time"
)

// ForecastEntry is the forecast for one projected year.
type ForecastEntry struct {
	Year                 int      `json:"year"`
	PredictedTemperature float64  `json:"predicted_temperature"`
	Tier                 Tier     `json:"tier"`
	Advisories           []string `json:"advisories"`
}

// ForecastResult is index-aligned with the ForecastInput it was built from.
type ForecastResult []ForecastEntry

// BuildResult zips projected years with their predictions and classifies each.
func BuildResult(input ForecastInput, predictions []float64) (ForecastResult, error) {
	if len(input) != len(predictions) {
		return nil, fmt.Errorf("%w: %d projections but %d predictions", ErrDimension, len(input), len(predictions))
	}
	result := make(ForecastResult, len(input))
	for i, v := range input {
		at := tierFor(predictions[i])
		result[i] = ForecastEntry{
			Year:                 int(math.Round(v.Year())),
			PredictedTemperature: predictions[i],
			Tier:                 at.tier,
			Advisories:           cloneStrings(at.advisories),
		}
	}
	return result, nil
}

// Years returns the entry years in order.
func (r ForecastResult) Years() []int {
	out := make([]int, len(r))
	for i, e := range r {
		out[i] = e.Year
	}
	return out
}

// Summary carries run diagnostics that downstream renderers do not depend on.
type Summary struct {
	Records      int                `json:"records"`
	TrainRows    int                `json:"train_rows"`
	TestRows     int                `json:"test_rows"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
	Imputed      map[string]int     `json:"imputed"`

	// Energy mix of the projected years.
	MeanRenewablePercent float64 `json:"mean_renewable_percent"`
	MeanFossilPercent    float64 `json:"mean_fossil_percent"`
}

// ForecastRun wraps one pipeline run for publication.
type ForecastRun struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Result      ForecastResult `json:"result"`
	Evaluation  Evaluation     `json:"evaluation"`
	Summary     Summary        `json:"summary"`
}
