// Package csvfile reads the expense ledger from a local CSV file with the
// standard column contract.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"matumizi/internal/source"
)

type Reader struct {
	path string
}

func New(path string) *Reader {
	return &Reader{path: path}
}

// ReadRows reads the whole file. The first record is the header; missing
// required columns are a fatal error.
func (r *Reader) ReadRows(ctx context.Context) ([]source.Row, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // row length enforced against the header instead
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input %s is empty", r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		records = append(records, rec)
	}
	return source.FromTable(header, records)
}
