package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRun_ValidDataset(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), &out, settings{
		dataPath: filepath.Join("testdata", "linear.csv"),
		ratio:    domain.DefaultSplitRatio,
		seed:     domain.DefaultSeed,
		maxMAE:   0.01,
	})

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "All validations passed.")
	assert.Contains(t, out.String(), "Rows: 10 in table, 10 parsed")
	assert.Contains(t, out.String(), `Imputed: 1 cells in "Forest Area (%)"`)
}

func TestValidateCompleteness_ReturnsCleanedRecords(t *testing.T) {
	raw := []domain.RawRecord{
		{Country: "Norway", Numeric: filledCells(1)},
		{Numeric: filledCells(3)},
	}

	var out bytes.Buffer
	p, records := validateCompleteness(&out, raw)
	assert.True(t, p.passed())
	assert.Len(t, records, 2)
	assert.Equal(t, "Norway", records[1].Country)
	assert.Contains(t, out.String(), `Imputed: 1 cells in "Country"`)
}

func TestValidateCompleteness_EmptyColumn(t *testing.T) {
	raw := []domain.RawRecord{{Country: "Norway"}}

	p, records := validateCompleteness(&bytes.Buffer{}, raw)
	assert.False(t, p.passed())
	assert.Nil(t, records)
}

func filledCells(v float64) [7]domain.Cell {
	var cells [7]domain.Cell
	for i := range cells {
		cells[i] = domain.Cell{Value: v, Valid: true}
	}
	return cells
}

func TestRun_MissingColumns(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), &out, settings{
		dataPath: filepath.Join("testdata", "missing_columns.csv"),
		ratio:    domain.DefaultSplitRatio,
		seed:     domain.DefaultSeed,
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "missing columns")
	assert.Contains(t, out.String(), "Validation FAILED.")
}

func TestRun_UnreadableDataset(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), &out, settings{dataPath: filepath.Join(t.TempDir(), "absent.csv")})

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FATAL")
}

func TestValidateAdvisories(t *testing.T) {
	assert.True(t, validateAdvisories().passed())
}

func TestValidateSplit_BadRatio(t *testing.T) {
	p := validateSplit(make([]domain.ClimateRecord, 4), 1.5, 1)
	assert.False(t, p.passed())
}
