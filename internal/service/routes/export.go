package routes

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jszwec/csvutil"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
)

// ExportCSV serializes the table as header-less CSV, one line per record in
// table order. No bit-exactness is promised beyond the column order matching
// the record's field order.
func ExportCSV(table *models.EvaluationTable) ([]byte, error) {
	if table == nil {
		return nil, fmt.Errorf("table is nil")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	enc := csvutil.NewEncoder(w)
	enc.AutoHeader = false

	for _, rec := range table.Records {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("encode record %s: %w", rec.Model, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
