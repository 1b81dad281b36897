// Package export encodes report tables as spreadsheets, CSV or JSON.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodio78/termsuite-core/internal/domain"
	"github.com/custodio78/termsuite-core/internal/report"
)

// Format is an output encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts a format name; "" and "excel" mean xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return "", domain.NewValidationError("format", fmt.Sprintf("unsupported value %q", s))
}

func (f Format) String() string { return string(f) }

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// Extension is the file extension of f, without the dot.
func (f Format) Extension() string { return string(f) }

// Encode writes t to w in format f.
func Encode(w io.Writer, f Format, t report.Table) error {
	switch f {
	case FormatCSV:
		return EncodeCSV(w, t)
	case FormatJSON:
		return EncodeJSON(w, t)
	case FormatXLSX:
		return EncodeXLSX(w, t)
	}
	return domain.NewValidationError("format", fmt.Sprintf("unsupported value %q", f))
}

// cellText renders a cell value for text encodings.
func cellText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
