package dataset_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/climate-forecast/internal/adapter/dataset"
	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path     string
		expected dataset.Format
		wantErr  bool
	}{
		{"data/climate.csv", dataset.FormatCSV, false},
		{"DATA.CSV", dataset.FormatCSV, false},
		{"book.xlsx", dataset.FormatXLSX, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := dataset.FormatFor(tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrSchema)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFile_ReadTable_CSV(t *testing.T) {
	tbl, err := dataset.NewFile(filepath.Join("testdata", "linear.csv")).ReadTable(context.Background())
	require.NoError(t, err)

	assert.Len(t, tbl.Header, 10)
	assert.Equal(t, "Year", tbl.Header[0])
	require.Len(t, tbl.Rows, 10)
	assert.Equal(t, "Kenya", tbl.Rows[9][1])
	assert.Equal(t, "", tbl.Rows[9][9])

	raw, err := domain.ParseTable(tbl)
	require.NoError(t, err)
	require.Len(t, raw, 10)
	assert.False(t, raw[9].Numeric[5].Valid, "blank forest cell is missing")
}

func TestFile_ReadTable_MissingFile(t *testing.T) {
	_, err := dataset.NewFile(filepath.Join(t.TempDir(), "absent.csv")).ReadTable(context.Background())
	require.ErrorIs(t, err, domain.ErrSchema)
	assert.Contains(t, err.Error(), "open dataset")
}

func TestFile_ReadTable_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dataset.NewFile(filepath.Join("testdata", "linear.csv")).ReadTable(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "other", domain.ErrorKind(err))
}

func TestFile_ReadTable_SchemaErrors(t *testing.T) {
	for _, name := range []string{"missing_columns.csv", "malformed.csv"} {
		t.Run(name, func(t *testing.T) {
			tbl, err := dataset.NewFile(filepath.Join("testdata", name)).ReadTable(context.Background())
			require.NoError(t, err)

			_, err = domain.ParseTable(tbl)
			require.ErrorIs(t, err, domain.ErrSchema)
		})
	}
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := dataset.ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, domain.ErrSchema)
}

func TestReadCSV_RaggedRows(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader("a,b,c\n1,2\n1,2,3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"1", "2", "3", "4"}}, tbl.Rows)
}

func TestCSVRoundTrip(t *testing.T) {
	in := sampleTable()

	var buf bytes.Buffer
	require.NoError(t, dataset.WriteCSV(&buf, in))

	out, err := dataset.ReadCSV(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("csv round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	in := sampleTable()

	var buf bytes.Buffer
	require.NoError(t, dataset.WriteXLSX(&buf, in))

	out, err := dataset.ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, in.Header, out.Header)
	require.Len(t, out.Rows, len(in.Rows))

	raw, err := domain.ParseTable(out)
	require.NoError(t, err)
	require.Len(t, raw, 2)
	assert.Equal(t, "Norway", raw[0].Country)
	assert.Equal(t, 2001.0, raw[1].Numeric[0].Value)
	assert.False(t, raw[1].Numeric[5].Valid, "blank cell stays missing")
}

func TestReadXLSX_StyledNumbersReadRaw(t *testing.T) {
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	const sheet = "Sheet1"
	header := []interface{}{
		domain.ColumnCountry, domain.ColumnYear, domain.ColumnCO2, domain.ColumnRainfall,
		domain.ColumnPopulation, domain.ColumnRenewable, domain.ColumnForest, domain.ColumnAvgTemperature,
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"Norway", 2000, 4.123456, 820.5, 7800000000, 12.25, 30.125, 14.375}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	twoDecimals := "0.00"
	grouped := "#,##0"
	decimalStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &twoDecimals})
	require.NoError(t, err)
	groupedStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &grouped})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C2", "D2", decimalStyle))
	require.NoError(t, f.SetCellStyle(sheet, "E2", "E2", groupedStyle))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	tbl, err := dataset.ReadXLSX(&buf)
	require.NoError(t, err)

	raw, err := domain.ParseTable(tbl)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, 4.123456, raw[0].Numeric[1].Value)
	assert.Equal(t, 820.5, raw[0].Numeric[2].Value)
	assert.Equal(t, 7800000000.0, raw[0].Numeric[3].Value)
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := dataset.ReadXLSX(strings.NewReader("Year,Country\n"))
	require.ErrorIs(t, err, domain.ErrSchema)
}

func TestWriteFile_ReadBack(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.csv", "out.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, dataset.WriteFile(path, sampleTable()))

			tbl, err := dataset.NewFile(path).ReadTable(context.Background())
			require.NoError(t, err)
			assert.Equal(t, sampleTable().Header, tbl.Header)
			assert.Len(t, tbl.Rows, 2)
		})
	}
}

func TestWriteFile_UnsupportedExtension(t *testing.T) {
	err := dataset.WriteFile(filepath.Join(t.TempDir(), "out.json"), sampleTable())
	require.ErrorIs(t, err, domain.ErrSchema)
}

func sampleTable() domain.Table {
	return domain.Table{
		Header: []string{
			domain.ColumnYear, domain.ColumnCountry, domain.ColumnAvgTemperature,
			domain.ColumnCO2, domain.ColumnRainfall, domain.ColumnForest,
			domain.ColumnPopulation, domain.ColumnRenewable,
		},
		Rows: [][]string{
			{"2000", "Norway", "14.5", "4.1", "820", "30", "1200000", "12"},
			{"2001", "Chile", "15.1", "5.3", "1010", "", "3400000", "25"},
		},
	}
}
