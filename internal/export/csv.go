package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/belegflow/backend/internal/record"
)

// WriteCSV renders the records as UTF-8 CSV with the same column derivation
// as the XLSX export.
func WriteCSV(records []record.AccountingRecord) ([]byte, error) {
	columns := Columns(records)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(columns))
	for i := range records {
		for j, column := range columns {
			row[j] = cellString(&records[i], column)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
