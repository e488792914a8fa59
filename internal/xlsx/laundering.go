package xlsx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"portos/internal/domain"
)

const launderingSheet = "Blanchiment"

var launderingHeader = []string{
	"Statut", "Date reçu", "Date rendu", "Durée (jours)", "Groupe",
	"Employé", "Donneur", "Récepteur", "Somme", "% Entreprise", "% Groupe",
}

const dateLayout = "2006-01-02"

// WriteLaundering renders the laundering ledger as an xlsx workbook.
func WriteLaundering(w io.Writer, rows []domain.LaunderingRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(launderingSheet)
	if err != nil {
		return fmt.Errorf("xlsx.WriteLaundering: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, label := range launderingHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(launderingSheet, cell, label); err != nil {
			return fmt.Errorf("xlsx.WriteLaundering: %w", err)
		}
	}

	for i, r := range rows {
		values := []any{
			string(r.Status),
			formatDate(r.DateReceived),
			formatDate(r.DateReturned),
			formatDuration(r.DurationDays),
			r.Group,
			r.Employee,
			r.GiverID,
			r.ReceiverID,
			r.Amount,
			r.PercEnterprise,
			r.PercGroup,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(launderingSheet, cell, v); err != nil {
				return fmt.Errorf("xlsx.WriteLaundering: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx.WriteLaundering: %w", err)
	}
	return nil
}

// ReadLedgerBlock flattens the first sheet of an uploaded workbook into a
// tab-delimited block suitable for the paste ingest pipeline, which handles
// header aliasing and row validation.
func ReadLedgerBlock(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("xlsx.ReadLedgerBlock: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", domain.ErrFormat
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("xlsx.ReadLedgerBlock: %w", err)
	}

	var b strings.Builder
	for _, rec := range cells {
		b.WriteString(strings.Join(rec, "\t"))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatDuration(d *int) any {
	if d == nil {
		return ""
	}
	return *d
}
