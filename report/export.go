package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// WriteCSV writes headers and rows to a CSV file at path.
func WriteCSV(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create csv file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		f.Close()
		return fmt.Errorf("csv header write error: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("csv row write error: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("csv flush error: %w", err)
	}
	return f.Close()
}

// Sheet is one worksheet of an Excel export.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// WriteExcel writes the sheets to an xlsx workbook at path, in order.
func WriteExcel(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write to %q", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		// Reuse the default sheet for the first entry, renamed.
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("sheet rename error: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("sheet %q creation error: %w", sheet.Name, err)
			}
		}

		header := make([]any, len(sheet.Headers))
		for c, h := range sheet.Headers {
			header[c] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("sheet %q header write error: %w", sheet.Name, err)
		}
		for r, row := range sheet.Rows {
			cellRef, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.Name, cellRef, &row); err != nil {
				return fmt.Errorf("sheet %q row write error: %w", sheet.Name, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save workbook %q: %w", path, err)
	}
	return nil
}

// WriteText writes a plain-text report body to path.
func WriteText(path, body string) error {
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("could not write text report %q: %w", path, err)
	}
	return nil
}
