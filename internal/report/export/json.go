package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodio78/termsuite-core/internal/report"
)

// EncodeJSON writes an array of objects keyed by column label, keys in
// column order.
func EncodeJSON(w io.Writer, t report.Table) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("[")
	for i, r := range t.Rows {
		if i > 0 {
			bw.WriteString(",")
		}
		bw.WriteString("\n  {")
		for j, c := range t.Columns {
			if j > 0 {
				bw.WriteString(", ")
			}
			key, err := json.Marshal(c.Label)
			if err != nil {
				return fmt.Errorf("encode key %q: %w", c.Label, err)
			}
			val, err := json.Marshal(c.Value(r))
			if err != nil {
				return fmt.Errorf("encode %s of row %d: %w", c.Key, r.Rank, err)
			}
			bw.Write(key)
			bw.WriteString(": ")
			bw.Write(val)
		}
		bw.WriteString("}")
	}
	if len(t.Rows) > 0 {
		bw.WriteString("\n")
	}
	bw.WriteString("]\n")
	return bw.Flush()
}
