package export

import (
	"fmt"
	"io"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/xuri/excelize/v2"
)

// columnWidth is the width applied to every exported column
const columnWidth = 18

// ContentTypeXLSX is the media type of WriteXLSX output
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes the report as a workbook with one sheet per table.
func WriteXLSX(w io.Writer, r *analytics.Report) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, table := range Tables(r) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", table.Name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", table.Name, err)
		}

		if err := writeSheet(f, table, headerStyle); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", table.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, t Table, headerStyle int) error {
	if err := f.SetSheetRow(t.Name, "A1", &t.Header); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Name, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(t.Name, "A", lastCol, columnWidth); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
