package expense

import (
	"fmt"
	"sort"

	"VarejoOpsSaas/api/constants"
)

// TopCategory is the chart-of-accounts entry with the largest summed amount
// and its share of the period total.
type TopCategory struct {
	Name   string  `json:"nome"`
	Amount float64 `json:"valor"`
	Pct    float64 `json:"percentual"`
}

// KPIs are the headline numbers for the selected range.
type KPIs struct {
	TotalPago   float64      `json:"total_pago"`
	TotalAberto float64      `json:"total_aberto"`
	MaxExpense  *Expense     `json:"maior_despesa,omitempty"`
	TopCategory *TopCategory `json:"top_plano_contas,omitempty"`
}

// SeriesPoint is one calendar-month bucket of the time series.
type SeriesPoint struct {
	Label string  `json:"label"`
	Month int     `json:"mes"`
	Year  int     `json:"ano"`
	Total float64 `json:"total"`
}

// PivotRow is one chart-of-accounts row of the pivot, cells aligned with the
// series buckets plus a trailing total.
type PivotRow struct {
	Category string    `json:"plano_contas"`
	Cells    []float64 `json:"valores"`
	Total    float64   `json:"total"`
}

// Pivot is the category-by-month matrix with total row and column.
type Pivot struct {
	Columns      []string   `json:"colunas"`
	Rows         []PivotRow `json:"linhas"`
	ColumnTotals []float64  `json:"totais_coluna"`
	GrandTotal   float64    `json:"total_geral"`
}

// Analysis is the full view-ready aggregation of one filter/range request.
type Analysis struct {
	Filtered []Expense     `json:"despesas"`
	KPIs     KPIs          `json:"kpis"`
	Series   []SeriesPoint `json:"serie_mensal"`
	Pivot    Pivot         `json:"pivot"`
}

// rangeBuckets expands an inclusive period range into one bucket per
// calendar month, wrapping year boundaries.
func rangeBuckets(start, end Period) []Period {
	if start.Linearize() > end.Linearize() {
		return nil
	}
	var buckets []Period
	m, y := start.Month, start.Year
	for {
		buckets = append(buckets, Period{Month: m, Year: y})
		if y == end.Year && m == end.Month {
			break
		}
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return buckets
}

// InRange reports whether the expense's reference period falls inside the
// inclusive range.
func InRange(e Expense, start, end Period) bool {
	lin := Period{Month: e.RefMonth, Year: e.RefYear}.Linearize()
	return lin >= start.Linearize() && lin <= end.Linearize()
}

func bucketLabel(p Period) string {
	return fmt.Sprintf("%s/%d", constants.MonthNamesBR[p.Month-1], p.Year)
}

// Analyze filters the entity set by category and period, then computes the
// KPI cards, the paid-amount time series and the chart-of-accounts pivot.
func Analyze(entities []Expense, f Filters, start, end Period) Analysis {
	buckets := rangeBuckets(start, end)

	filtered := make([]Expense, 0, len(entities))
	for _, e := range entities {
		if f.Matches(e) && InRange(e, start, end) {
			filtered = append(filtered, e)
		}
	}

	return Analysis{
		Filtered: filtered,
		KPIs:     computeKPIs(filtered),
		Series:   computeSeries(filtered, buckets),
		Pivot:    computePivot(filtered, buckets),
	}
}

func computeKPIs(filtered []Expense) KPIs {
	var k KPIs
	catOrder := []string{}
	catTotals := map[string]float64{}

	for i := range filtered {
		e := filtered[i]
		if e.Status == constants.StatusAberto {
			k.TotalAberto += e.Amount
		} else {
			k.TotalPago += e.Amount
		}
		// strict > keeps the first-encountered row on ties
		if k.MaxExpense == nil || e.Amount > k.MaxExpense.Amount {
			max := e
			k.MaxExpense = &max
		}
		if e.ChartOfAccounts == constants.UnknownCategory {
			continue
		}
		if _, seen := catTotals[e.ChartOfAccounts]; !seen {
			catOrder = append(catOrder, e.ChartOfAccounts)
		}
		catTotals[e.ChartOfAccounts] += e.Amount
	}

	var top *TopCategory
	for _, name := range catOrder {
		if top == nil || catTotals[name] > top.Amount {
			top = &TopCategory{Name: name, Amount: catTotals[name]}
		}
	}
	if top != nil {
		if grand := k.TotalPago + k.TotalAberto; grand > 0 {
			top.Pct = top.Amount / grand * 100
		}
		k.TopCategory = top
	}
	return k
}

// computeSeries buckets paid amounts per calendar month. Months without any
// expense stay present with a zero total.
func computeSeries(filtered []Expense, buckets []Period) []SeriesPoint {
	series := make([]SeriesPoint, len(buckets))
	for i, b := range buckets {
		series[i] = SeriesPoint{Label: bucketLabel(b), Month: b.Month, Year: b.Year}
	}
	for _, e := range filtered {
		if e.Status != constants.StatusPago {
			continue
		}
		for i, b := range buckets {
			if e.RefMonth == b.Month && e.RefYear == b.Year {
				series[i].Total += e.Amount
				break
			}
		}
	}
	return series
}

func computePivot(filtered []Expense, buckets []Period) Pivot {
	p := Pivot{
		Columns:      make([]string, len(buckets)),
		ColumnTotals: make([]float64, len(buckets)),
	}
	for i, b := range buckets {
		p.Columns[i] = bucketLabel(b)
	}

	rowIdx := map[string]int{}
	for _, e := range filtered {
		if e.ChartOfAccounts == constants.UnknownCategory {
			continue
		}
		idx, ok := rowIdx[e.ChartOfAccounts]
		if !ok {
			idx = len(p.Rows)
			rowIdx[e.ChartOfAccounts] = idx
			p.Rows = append(p.Rows, PivotRow{
				Category: e.ChartOfAccounts,
				Cells:    make([]float64, len(buckets)),
			})
		}
		for i, b := range buckets {
			if e.RefMonth == b.Month && e.RefYear == b.Year {
				p.Rows[idx].Cells[i] += e.Amount
				p.Rows[idx].Total += e.Amount
				p.ColumnTotals[i] += e.Amount
				p.GrandTotal += e.Amount
				break
			}
		}
	}

	sort.SliceStable(p.Rows, func(i, j int) bool {
		return p.Rows[i].Total > p.Rows[j].Total
	})
	return p
}

// MonthExpenses lists the filtered expenses attributed to one month, largest
// first, for the drill-down view under the chart.
func MonthExpenses(entities []Expense, f Filters, p Period) []Expense {
	out := make([]Expense, 0)
	for _, e := range entities {
		if f.Matches(e) && e.RefMonth == p.Month && e.RefYear == p.Year {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}

// DistinctValues collects the sorted dropdown options per filter dimension
// from the currently loaded rows. The mapping dimensions that fall back to
// the "-" sentinel keep it out of their dropdowns.
func DistinctValues(entities []Expense) map[string][]string {
	dims := map[string]func(Expense) string{
		"filial":       func(e Expense) string { return e.Branch },
		"grupo":        func(e Expense) string { return e.Group },
		"subgrupo":     func(e Expense) string { return e.Subgroup },
		"centro_custo": func(e Expense) string { return e.CostCenter },
		"plano_contas": func(e Expense) string { return e.ChartOfAccounts },
		"fornecedor":   func(e Expense) string { return e.Vendor },
	}
	noSentinel := map[string]bool{"grupo": true, "subgrupo": true, "plano_contas": true}
	out := make(map[string][]string, len(dims))
	for name, get := range dims {
		seen := map[string]struct{}{}
		var vals []string
		for _, e := range entities {
			v := get(e)
			if v == "" {
				continue
			}
			if noSentinel[name] && v == constants.UnknownCategory {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			vals = append(vals, v)
		}
		sort.Strings(vals)
		out[name] = vals
	}
	return out
}
