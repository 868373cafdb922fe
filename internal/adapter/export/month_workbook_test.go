package export

import (
	"bytes"
	"testing"
	"time"

	"mimo_finance/internal/domain/aggregator"
	"mimo_finance/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestMonthWorkbook(t *testing.T) {
	start := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	mo := aggregator.MonthOverview{
		Year:  2024,
		Month: time.June,
		Weeks: []aggregator.WeekTotal{
			{Week: entities.BusinessWeek{Start: start, End: start.AddDate(0, 0, 6), Key: "2024-W24"}, PaymentCount: 2, ServiceCount: 3, Total: decimal.NewFromInt(150)},
		},
		Earned:    decimal.NewFromInt(150),
		Paid:      decimal.NewFromInt(50),
		PaidCount: 1,
	}
	partners := []aggregator.PartnerSummary{{PartnerID: "p1", DisplayName: "Ana Lima", PaymentCount: 1, ServiceCount: 2, Revenue: decimal.NewFromInt(100)}}

	b, err := MonthWorkbook(mo, partners)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer f.Close()

	checks := []struct {
		sheet, cell, want string
	}{
		{SheetWeeks, "A1", "Week"},
		{SheetWeeks, "A2", "2024-W24"},
		{SheetWeeks, "B2", "2024-06-12"},
		{SheetWeeks, "F2", "150"},
		{SheetWeeks, "A3", "Earned"},
		{SheetWeeks, "F4", "50"},
		{SheetPartners, "A2", "Ana Lima"},
		{SheetPartners, "E2", "100"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("%s!%s: %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Fatalf("%s!%s: expected %q, got %q", c.sheet, c.cell, c.want, got)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(2024, time.June); got != "finance-2024-06.xlsx" {
		t.Fatalf("unexpected name: %s", got)
	}
}
