// Package export renders finance views as spreadsheets for accounting.
package export

import (
	"fmt"
	"time"

	"mimo_finance/internal/domain/aggregator"

	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	SheetWeeks    = "Weeks"
	SheetPartners = "Partners"
)

// MonthWorkbook writes the month overview (one row per business week plus a
// totals row) and the month's partner ranking into an XLSX file.
func MonthWorkbook(mo aggregator.MonthOverview, partners []aggregator.PartnerSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetWeeks); err != nil {
		return nil, err
	}
	if err := writeWeeks(f, mo); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetPartners); err != nil {
		return nil, err
	}
	if err := writePartners(f, partners); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName is the download name of a month workbook.
func FileName(year int, month time.Month) string {
	return fmt.Sprintf("finance-%04d-%02d.xlsx", year, int(month))
}

func writeWeeks(f *excelize.File, mo aggregator.MonthOverview) error {
	rows := [][]any{{"Week", "Start", "End", "Payments", "Services", "Earned"}}
	for _, w := range mo.Weeks {
		rows = append(rows, []any{
			w.Week.Key,
			w.Week.Start.Format("2006-01-02"),
			w.Week.End.Format("2006-01-02"),
			w.PaymentCount,
			w.ServiceCount,
			w.Total.InexactFloat64(),
		})
	}
	rows = append(rows,
		[]any{"Earned", "", "", "", "", mo.Earned.InexactFloat64()},
		[]any{"Paid", "", "", mo.PaidCount, "", mo.Paid.InexactFloat64()},
	)
	return writeRows(f, SheetWeeks, rows)
}

func writePartners(f *excelize.File, partners []aggregator.PartnerSummary) error {
	rows := [][]any{{"Partner", "Partner ID", "Payments", "Services", "Revenue"}}
	for _, p := range partners {
		rows = append(rows, []any{p.DisplayName, p.PartnerID, p.PaymentCount, p.ServiceCount, p.Revenue.InexactFloat64()})
	}
	return writeRows(f, SheetPartners, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
