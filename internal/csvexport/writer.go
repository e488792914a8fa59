// Package csvexport renders dotation reports as CSV for download.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"

	"portos/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Nom",
	"Grade",
	"RUN",
	"Facture",
	"Vente",
	"CA Total",
	"Salaire",
	"Prime",
}

// Writer wraps csv.Writer for exporting dotation rows as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts dotation rows to CSV records and writes them.
func (w *Writer) WriteRows(rows []domain.DotationRow) error {
	for i := range rows {
		if err := w.csv.Write(rowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteTotals appends the report aggregates as a trailing row.
func (w *Writer) WriteTotals(report *domain.DotationReport) error {
	return w.csv.Write([]string{
		"TOTAL",
		"",
		"",
		"",
		"",
		amount(report.TotalCA),
		amount(report.TotalSalaries),
		amount(report.TotalBonuses),
	})
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func rowToRecord(r *domain.DotationRow) []string {
	return []string{
		r.EmployeeName,
		r.Grade,
		amount(r.Run),
		amount(r.Facture),
		amount(r.Vente),
		amount(r.CATotal),
		amount(r.Salaire),
		amount(r.Prime),
	}
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
