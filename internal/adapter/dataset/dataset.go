// Package dataset reads and writes the tabular climate dataset as CSV or XLSX.
package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// Format identifies a dataset file encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFor returns the dataset format implied by the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: unsupported dataset extension %q", domain.ErrSchema, filepath.Ext(path))
	}
}

// File is a dataset stored on the local filesystem.
// It implements pipeline.Extractor.
type File struct {
	path string
}

// NewFile returns an extractor for the dataset at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// ReadTable opens the dataset and decodes it according to its extension.
func (f *File) ReadTable(ctx context.Context) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}

	format, err := FormatFor(f.path)
	if err != nil {
		return domain.Table{}, err
	}

	fh, err := os.Open(f.path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: open dataset: %w", domain.ErrSchema, err)
	}
	defer fh.Close()

	switch format {
	case FormatXLSX:
		return ReadXLSX(fh)
	default:
		return ReadCSV(fh)
	}
}

// WriteFile encodes the table to path using the format implied by its extension.
func WriteFile(path string, t domain.Table) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}

	switch format {
	case FormatXLSX:
		err = WriteXLSX(fh, t)
	default:
		err = WriteCSV(fh, t)
	}
	if err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

func splitTable(records [][]string) (domain.Table, error) {
	if len(records) == 0 {
		return domain.Table{}, fmt.Errorf("%w: dataset has no header row", domain.ErrSchema)
	}
	return domain.Table{Header: records[0], Rows: records[1:]}, nil
}
