package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// ReadCSV decodes a comma-separated dataset. Rows may be shorter or longer
// than the header; column alignment is resolved by domain.ParseTable.
func ReadCSV(r io.Reader) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: read csv: %w", domain.ErrSchema, err)
	}
	return splitTable(records)
}

// WriteCSV encodes the table with its header as the first row.
func WriteCSV(w io.Writer, t domain.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
