// Package domain models the climate indicator dataset and the forecast that is
// derived from it.
//
// # Dataset
//
// Each row of the historical dataset describes one country-year:
//
//	Country, Year, CO2 Emissions (Tons/Capita), Rainfall (mm), Population,
//	Renewable Energy (%), Forest Area (%), Avg Temperature (°C)
//
// Header names must match exactly (surrounding whitespace and a leading UTF-8
// BOM are ignored). Column order is free. Extra columns are ignored.
//
// Missing cells:
//
//	An empty cell, or one of NA, N/A, NaN, nan, null, NULL, None, #N/A, is
//	missing. Any other numeric cell that does not parse as a finite float is
//	malformed and rejects the dataset with ErrSchema.
//
// Year and Population are integral in the source but carried as float64 so
// an imputed column mean is kept exact.
//
// # Imputation
//
// Numeric columns are filled independently with the mean of the values
// present in that column. Country is filled with its most frequent value;
// ties go to the value seen first in row order. See [Clean].
//
// # Features
//
// A [FeatureVector] is ordered as
//
//	Year, CO2EmissionsPerCapita, RainfallMM, Population,
//	RenewableEnergyPercent, ForestAreaPercent
//
// and AvgTemperature is the regression target. The same order is used when
// fitting and when predicting.
//
// # Split
//
// [Frame] shuffles record indices with a PCG generator seeded from the
// configured seed. The first ceil(n*ratio) shuffled indices form the test
// split, the rest the training split. Each side always holds at least one
// record.
//
// # Model
//
// [Fit] is ordinary least squares with an intercept. Features and target are
// centered on their training means, the centered system is solved with a thin
// SVD (minimum-norm solution when rank deficient) and the intercept is
// recovered from the means.
//
// # Advisory tiers
//
// Predicted temperatures are classified top-down, first match wins:
//
//	t > 3        urgent     5 advisories
//	2 <= t <= 3  critical   5 advisories
//	1 <= t < 2   important  4 advisories
//	otherwise    positive   3 advisories
//
// Exactly 3 and exactly 2 are critical, exactly 1 is important. A NaN
// temperature matches no bound and falls through to positive.
package domain
