package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jonathan/vendor-insights/internal/analytics"
)

// ContentTypeCSV is the media type of WriteCSV output
const ContentTypeCSV = "text/csv; charset=utf-8"

// WriteCSV writes the report's vendor table.
func WriteCSV(w io.Writer, r *analytics.Report) error {
	t := vendorTable(r)

	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprint(x)
	}
}
