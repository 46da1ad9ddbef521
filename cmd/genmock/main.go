// Command genmock writes a reproducible synthetic climate dataset for local
// runs and tests. Temperature is a fixed linear function of the indicators
// plus seeded noise; a share of the indicator cells is blanked so the
// cleaner has something to impute.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/climate_change_dataset.csv \
//	  -rows 1000 -seed 42 -blank 0.02 \
//	  -scenario-out data/scenario.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/couchcryptid/climate-forecast/internal/adapter/dataset"
	"github.com/couchcryptid/climate-forecast/internal/adapter/scenario"
	"github.com/couchcryptid/climate-forecast/internal/domain"
)

var countries = []string{
	"Australia", "Brazil", "Canada", "China", "France", "Germany", "India",
	"Indonesia", "Japan", "Mexico", "Russia", "South Africa", "UK", "USA",
}

var header = []string{
	domain.ColumnYear,
	domain.ColumnCountry,
	domain.ColumnAvgTemperature,
	domain.ColumnCO2,
	"Sea Level Rise (mm)",
	domain.ColumnRainfall,
	domain.ColumnPopulation,
	domain.ColumnRenewable,
	"Extreme Weather Events",
	domain.ColumnForest,
}

// blankable lists header positions that may be left empty. The target and
// the unused columns are always filled.
var blankable = []int{0, 1, 3, 5, 6, 7, 9}

// options controls dataset generation.
type options struct {
	rows  int
	seed  uint64
	blank float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output dataset path (.csv or .xlsx)")
	rows := flag.Int("rows", 1000, "number of data rows")
	seed := flag.Uint64("seed", domain.DefaultSeed, "random seed")
	blank := flag.Float64("blank", 0.02, "fraction of indicator cells left empty, in [0,1)")
	scenarioOut := flag.String("scenario-out", "", "optional path for the default forecast scenario YAML")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	opts := options{rows: *rows, seed: *seed, blank: *blank}
	if err := opts.validate(); err != nil {
		return err
	}

	tbl := generate(opts)
	if err := dataset.WriteFile(*out, tbl); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	log.Printf("wrote %d rows to %s", len(tbl.Rows), *out)

	if *scenarioOut != "" {
		data, err := scenario.Marshal(domain.DefaultForecastInput())
		if err != nil {
			return err
		}
		if err := os.WriteFile(*scenarioOut, data, 0o644); err != nil {
			return fmt.Errorf("writing scenario: %w", err)
		}
		log.Printf("wrote default scenario to %s", *scenarioOut)
	}
	return nil
}

func (o options) validate() error {
	if o.rows < 2 {
		return fmt.Errorf("-rows must be at least 2, got %d", o.rows)
	}
	if o.blank < 0 || o.blank >= 1 {
		return fmt.Errorf("-blank must be in [0,1), got %v", o.blank)
	}
	return nil
}

// generate builds the dataset table. The same options always give the same table.
func generate(o options) domain.Table {
	rng := rand.New(rand.NewPCG(o.seed, o.seed))
	rows := make([][]string, o.rows)

	for i := range rows {
		year := float64(2000 + rng.IntN(24))
		co2 := uniform(rng, 0.5, 20)
		rain := uniform(rng, 500, 3000)
		pop := float64(1_000_000 + rng.IntN(1_400_000_000))
		renew := uniform(rng, 1, 80)
		forest := uniform(rng, 5, 70)
		v := domain.NewFeatureVector(year, co2, rain, pop, renew, forest)

		row := []string{
			formatFloat(year, 0),
			countries[rng.IntN(len(countries))],
			formatFloat(temperature(v)+rng.NormFloat64()*0.8, 1),
			formatFloat(co2, 1),
			formatFloat(uniform(rng, 1, 10), 1),
			formatFloat(rain, 0),
			formatFloat(pop, 0),
			formatFloat(renew, 1),
			strconv.Itoa(rng.IntN(15)),
			formatFloat(forest, 1),
		}
		for _, c := range blankable {
			if rng.Float64() < o.blank {
				row[c] = ""
			}
		}
		rows[i] = row
	}
	return domain.Table{Header: append([]string(nil), header...), Rows: rows}
}

// temperature is the generating relation for Avg Temperature (°C).
func temperature(v domain.FeatureVector) float64 {
	return -40 + 0.025*v[0] + 0.3*v[1] - 0.002*v[2] + 1e-9*v[3] - 0.05*v[4] - 0.04*v[5]
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
