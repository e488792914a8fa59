// Package xlsx builds Excel workbooks for the portal's export endpoints and
// reads uploaded workbooks back into domain rows.
package xlsx

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"portos/internal/domain"
)

const dotationSheet = "Dotation"

var dotationHeader = []string{"Nom", "Grade", "RUN", "Facture", "Vente", "CA Total", "Salaire", "Prime"}

// WriteDotation renders a dotation report and its rows as an xlsx workbook.
func WriteDotation(w io.Writer, report *domain.DotationReport, rows []domain.DotationRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(dotationSheet)
	if err != nil {
		return fmt.Errorf("xlsx.WriteDotation: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, label := range dotationHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(dotationSheet, cell, label); err != nil {
			return fmt.Errorf("xlsx.WriteDotation: %w", err)
		}
	}

	for i, r := range rows {
		values := []any{r.EmployeeName, r.Grade, r.Run, r.Facture, r.Vente, r.CATotal, r.Salaire, r.Prime}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(dotationSheet, cell, v); err != nil {
				return fmt.Errorf("xlsx.WriteDotation: %w", err)
			}
		}
	}

	totalRow := len(rows) + 2
	totals := []any{"TOTAL", "", "", "", "", report.TotalCA, report.TotalSalaries, report.TotalBonuses}
	for col, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(col+1, totalRow)
		if err := f.SetCellValue(dotationSheet, cell, v); err != nil {
			return fmt.Errorf("xlsx.WriteDotation: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx.WriteDotation: %w", err)
	}
	return nil
}

// ReadDotationRows parses an uploaded workbook into raw dotation rows. The
// first sheet is read; the first row is treated as a header when its cells
// carry no numbers. Derived fields are left zero for the caller to compute.
func ReadDotationRows(r io.Reader) ([]domain.DotationRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx.ReadDotationRows: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrFormat
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx.ReadDotationRows: %w", err)
	}

	var rows []domain.DotationRow
	for i, rec := range cells {
		if len(rec) < 4 {
			continue
		}
		if i == 0 && !hasNumericCell(rec) {
			continue
		}
		row := domain.DotationRow{EmployeeName: rec[0]}
		if _, err := strconv.ParseFloat(rec[1], 64); err == nil {
			// Compact layout: name, run, facture, vente.
			row.Run = cellNumber(rec, 1)
			row.Facture = cellNumber(rec, 2)
			row.Vente = cellNumber(rec, 3)
		} else {
			// Export layout carries the grade in the second column.
			if len(rec) < 5 {
				continue
			}
			row.Grade = rec[1]
			row.Run = cellNumber(rec, 2)
			row.Facture = cellNumber(rec, 3)
			row.Vente = cellNumber(rec, 4)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, domain.ErrFormat
	}
	return rows, nil
}

func hasNumericCell(rec []string) bool {
	for _, c := range rec {
		if _, err := strconv.ParseFloat(c, 64); err == nil {
			return true
		}
	}
	return false
}

func cellNumber(rec []string, idx int) float64 {
	if idx >= len(rec) {
		return 0
	}
	v, err := strconv.ParseFloat(rec[idx], 64)
	if err != nil {
		return 0
	}
	return v
}
