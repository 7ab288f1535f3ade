package expense_test

import (
	"math"
	"testing"

	"VarejoOpsSaas/api/expense"
)

func expenseAt(month, year int, amount float64, status, chart string) expense.Expense {
	return expense.Expense{
		Branch: "A", Vendor: "X", Title: "T", ChartOfAccounts: chart,
		Group: "-", Subgroup: "-", CostCenter: "-",
		Amount: amount, Status: status, RefMonth: month, RefYear: year,
	}
}

func TestRangeBoundaryAcrossYears(t *testing.T) {
	e := expenseAt(12, 2024, 100, "Pago", "Energia")

	if !expense.InRange(e, expense.Period{Month: 11, Year: 2024}, expense.Period{Month: 1, Year: 2025}) {
		t.Fatal("12/2024 excluded from 11/2024..1/2025, want included")
	}
	if expense.InRange(e, expense.Period{Month: 1, Year: 2025}, expense.Period{Month: 12, Year: 2025}) {
		t.Fatal("12/2024 included in 1/2025..12/2025, want excluded")
	}
}

func TestAnalyzeKPIs(t *testing.T) {
	rows := []expense.Expense{
		expenseAt(1, 2024, 100, "Pago", "Energia"),
		expenseAt(1, 2024, 300, "Aberto", "Aluguel"),
		expenseAt(2, 2024, 200, "Pago", "Energia"),
	}
	a := expense.Analyze(rows, expense.Filters{},
		expense.Period{Month: 1, Year: 2024}, expense.Period{Month: 2, Year: 2024})

	if got, want := a.KPIs.TotalPago, 300.0; got != want {
		t.Fatalf("TotalPago=%v, want %v", got, want)
	}
	if got, want := a.KPIs.TotalAberto, 300.0; got != want {
		t.Fatalf("TotalAberto=%v, want %v", got, want)
	}
	if a.KPIs.MaxExpense == nil || a.KPIs.MaxExpense.Amount != 300 {
		t.Fatalf("MaxExpense=%+v, want amount 300", a.KPIs.MaxExpense)
	}
	// Energia 300 vs Aluguel 300: first-encountered wins the tie
	if got, want := a.KPIs.TopCategory.Name, "Energia"; got != want {
		t.Fatalf("TopCategory=%q, want %q", got, want)
	}
	if got, want := a.KPIs.TopCategory.Pct, 50.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("TopCategory.Pct=%v, want %v", got, want)
	}
}

func TestAnalyzeTopCategorySkipsSentinel(t *testing.T) {
	rows := []expense.Expense{
		expenseAt(1, 2024, 900, "Pago", "-"),
		expenseAt(1, 2024, 100, "Pago", "Energia"),
	}
	a := expense.Analyze(rows, expense.Filters{},
		expense.Period{Month: 1, Year: 2024}, expense.Period{Month: 1, Year: 2024})

	if a.KPIs.TopCategory == nil || a.KPIs.TopCategory.Name != "Energia" {
		t.Fatalf("TopCategory=%+v, want Energia (unmapped rows must not win)", a.KPIs.TopCategory)
	}
	// Unmapped rows still count toward the paid total
	if got, want := a.KPIs.TotalPago, 1000.0; got != want {
		t.Fatalf("TotalPago=%v, want %v", got, want)
	}
}

func TestAnalyzeSeriesZeroBuckets(t *testing.T) {
	rows := []expense.Expense{
		expenseAt(11, 2024, 50, "Pago", "Energia"),
		expenseAt(1, 2025, 70, "Pago", "Energia"),
		expenseAt(12, 2024, 40, "Aberto", "Energia"),
	}
	a := expense.Analyze(rows, expense.Filters{},
		expense.Period{Month: 11, Year: 2024}, expense.Period{Month: 1, Year: 2025})

	if got, want := len(a.Series), 3; got != want {
		t.Fatalf("len(Series)=%d, want %d", got, want)
	}
	// Open amounts stay out of the paid series; December stays present at 0
	wantTotals := []float64{50, 0, 70}
	for i, want := range wantTotals {
		if got := a.Series[i].Total; got != want {
			t.Fatalf("Series[%d].Total=%v, want %v", i, got, want)
		}
	}
	if got, want := a.Series[1].Month, 12; got != want {
		t.Fatalf("Series[1].Month=%d, want %d", got, want)
	}
	if got, want := a.Series[2].Year, 2025; got != want {
		t.Fatalf("Series[2].Year=%d, want %d", got, want)
	}
}

func TestAnalyzePivot(t *testing.T) {
	rows := []expense.Expense{
		expenseAt(1, 2024, 100, "Pago", "Energia"),
		expenseAt(2, 2024, 50, "Aberto", "Energia"),
		expenseAt(1, 2024, 400, "Pago", "Aluguel"),
		expenseAt(1, 2024, 30, "Pago", "-"),
	}
	a := expense.Analyze(rows, expense.Filters{},
		expense.Period{Month: 1, Year: 2024}, expense.Period{Month: 2, Year: 2024})

	if got, want := len(a.Pivot.Rows), 2; got != want {
		t.Fatalf("len(Pivot.Rows)=%d, want %d (sentinel category must be excluded)", got, want)
	}
	// Sorted descending by row total: Aluguel 400 before Energia 150
	if got, want := a.Pivot.Rows[0].Category, "Aluguel"; got != want {
		t.Fatalf("Rows[0].Category=%q, want %q", got, want)
	}
	if got, want := a.Pivot.Rows[1].Total, 150.0; got != want {
		t.Fatalf("Rows[1].Total=%v, want %v", got, want)
	}
	if got, want := a.Pivot.ColumnTotals[0], 500.0; got != want {
		t.Fatalf("ColumnTotals[0]=%v, want %v", got, want)
	}
	if got, want := a.Pivot.GrandTotal, 550.0; got != want {
		t.Fatalf("GrandTotal=%v, want %v", got, want)
	}
}

func TestAnalyzeFilters(t *testing.T) {
	rows := []expense.Expense{
		expenseAt(1, 2024, 100, "Pago", "Energia"),
		expenseAt(1, 2024, 200, "Pago", "Energia"),
	}
	rows[1].Vendor = "Y"

	a := expense.Analyze(rows, expense.Filters{Vendor: "Y"},
		expense.Period{Month: 1, Year: 2024}, expense.Period{Month: 1, Year: 2024})

	if got, want := len(a.Filtered), 1; got != want {
		t.Fatalf("len(Filtered)=%d, want %d", got, want)
	}
	if got, want := a.KPIs.TotalPago, 200.0; got != want {
		t.Fatalf("TotalPago=%v, want %v", got, want)
	}
}

func TestDistinctValuesSortedWithoutSentinel(t *testing.T) {
	rows := []expense.Expense{
		expenseAt(1, 2024, 10, "Pago", "Energia"),
		expenseAt(1, 2024, 20, "Pago", "-"),
		expenseAt(1, 2024, 30, "Pago", "Aluguel"),
	}
	rows[0].Branch, rows[0].Group = "B", "Moda"
	rows[1].Branch, rows[1].Group = "A", "-"
	rows[2].Branch, rows[2].Group = "A", "Bazar"

	opts := expense.DistinctValues(rows)

	if got := opts["filial"]; len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("filial=%v, want [A B]", got)
	}
	if got := opts["grupo"]; len(got) != 2 || got[0] != "Bazar" || got[1] != "Moda" {
		t.Fatalf("grupo=%v, want [Bazar Moda]", got)
	}
	if got := opts["plano_contas"]; len(got) != 2 || got[0] != "Aluguel" || got[1] != "Energia" {
		t.Fatalf("plano_contas=%v, want [Aluguel Energia]", got)
	}
	// Cost center has no mapped fallback of its own to hide
	if got := opts["centro_custo"]; len(got) != 1 || got[0] != "-" {
		t.Fatalf("centro_custo=%v, want [-]", got)
	}
}

func TestMonthExpensesSortedDescending(t *testing.T) {
	rows := []expense.Expense{
		expenseAt(1, 2024, 10, "Pago", "Energia"),
		expenseAt(1, 2024, 500, "Aberto", "Aluguel"),
		expenseAt(2, 2024, 999, "Pago", "Energia"),
	}
	got := expense.MonthExpenses(rows, expense.Filters{}, expense.Period{Month: 1, Year: 2024})

	if len(got) != 2 {
		t.Fatalf("len=%d, want 2", len(got))
	}
	if got[0].Amount != 500 || got[1].Amount != 10 {
		t.Fatalf("amounts=[%v %v], want [500 10]", got[0].Amount, got[1].Amount)
	}
}
