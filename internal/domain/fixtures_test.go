package domain

// linearTemp is the exact generating function for the synthetic fixtures.
func linearTemp(v FeatureVector) float64 {
	return -30 + 0.015*v[0] + 0.4*v[1] - 0.001*v[2] + 2e-7*v[3] - 0.03*v[4] + 0.02*v[5]
}

// linearFixture returns ten records whose temperature is exactly linear in
// the features. Forest area of the first nine rows averages 30.
func linearFixture() []ClimateRecord {
	co2 := []float64{4.1, 5.3, 3.8, 6.2, 4.9, 5.7, 3.5, 6.8, 4.4, 5.1}
	rain := []float64{820, 1010, 760, 1190, 905, 1075, 690, 1230, 860, 980}
	pop := []float64{1.2e6, 3.4e6, 2.1e6, 5.6e6, 1.9e6, 4.3e6, 2.8e6, 6.1e6, 1.5e6, 3.9e6}
	renew := []float64{12, 25, 8, 31, 18, 22, 5, 35, 15, 27}
	forest := []float64{30, 31, 29, 32, 28, 30.5, 29.5, 31.5, 28.5, 30}
	countries := []string{"Norway", "Chile", "Norway", "Kenya", "Chile", "Norway", "Kenya", "Chile", "Norway", "Kenya"}

	out := make([]ClimateRecord, len(co2))
	for i := range co2 {
		v := NewFeatureVector(float64(2000+i), co2[i], rain[i], pop[i], renew[i], forest[i])
		out[i] = ClimateRecord{
			Country:                countries[i],
			Year:                   v[0],
			CO2EmissionsPerCapita:  v[1],
			RainfallMM:             v[2],
			Population:             v[3],
			RenewableEnergyPercent: v[4],
			ForestAreaPercent:      v[5],
			AvgTemperature:         linearTemp(v),
		}
	}
	return out
}

func samplesOf(records []ClimateRecord) []Sample {
	out := make([]Sample, len(records))
	for i, r := range records {
		out[i] = Sample{Features: r.Features(), Target: r.AvgTemperature}
	}
	return out
}
