package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// missingTokens are cell values treated as absent, in addition to the empty string.
var missingTokens = map[string]struct{}{
	"NA": {}, "N/A": {}, "NaN": {}, "nan": {}, "null": {}, "NULL": {}, "None": {}, "#N/A": {},
}

// ParseTable maps a table onto raw records. All required columns must be
// present in the header; data cells may be missing but not malformed.
func ParseTable(t Table) ([]RawRecord, error) {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	required := append([]string{ColumnCountry}, NumericColumns[:]...)
	var absent []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			absent = append(absent, col)
		}
	}
	if len(absent) > 0 {
		return nil, fmt.Errorf("%w: missing columns %q", ErrSchema, absent)
	}

	records := make([]RawRecord, 0, len(t.Rows))
	for r, row := range t.Rows {
		if isBlankRow(row) {
			continue
		}
		rec := RawRecord{}
		if v, ok := cellAt(row, idx[ColumnCountry]); ok {
			rec.Country = v
		}
		for c, col := range NumericColumns {
			raw, ok := cellAt(row, idx[col])
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
				// Data rows are numbered from 1 after the header.
				return nil, fmt.Errorf("%w: row %d column %q: malformed number %q", ErrSchema, r+1, col, raw)
			}
			rec.Numeric[c] = Cell{Value: v, Valid: true}
		}
		records = append(records, rec)
	}
	return records, nil
}

// cellAt returns the trimmed cell at i and whether it holds a value.
func cellAt(row []string, i int) (string, bool) {
	if i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	if v == "" {
		return "", false
	}
	if _, missing := missingTokens[v]; missing {
		return "", false
	}
	return v, true
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
