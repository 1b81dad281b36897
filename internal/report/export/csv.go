package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/custodio78/termsuite-core/internal/report"
)

// utf8BOM lets spreadsheet applications detect the encoding.
const utf8BOM = "\ufeff"

// EncodeCSV writes a header row and one record per row, prefixed with a BOM.
func EncodeCSV(w io.Writer, t report.Table) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(report.Labels(t.Columns)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			record[i] = cellText(c.Value(r))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", r.Rank, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
