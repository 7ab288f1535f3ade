package goals

import (
	"fmt"
	"strings"

	"VarejoOpsSaas/api/expense"
)

// Recognized header keywords for the hierarchy dimensions, in priority order.
var (
	branchKeywords     = []string{"Filial", "Unidade", "Loja"}
	sectorKeywords     = []string{"Setor", "Categoria"}
	departmentKeywords = []string{"Departamento", "Depto"}
	sectionKeywords    = []string{"Seção", "Secao", "Item", "Produto"}
	salesKeywords      = []string{"Venda", "Total", "Valor", "Realizado", "Liquido"}
)

// resolveSalesAmount scans for the sales value column, exact match first,
// then substring. Headers containing "data" are skipped so the substring
// pass never lands on a date column.
func resolveSalesAmount(rec expense.RawRecord) interface{} {
	for _, kw := range salesKeywords {
		for _, h := range rec.Headers {
			if strings.EqualFold(strings.TrimSpace(h), kw) {
				return rec.Cells[h]
			}
		}
	}
	for _, kw := range salesKeywords {
		lkw := strings.ToLower(kw)
		for _, h := range rec.Headers {
			lh := strings.ToLower(h)
			if strings.Contains(lh, lkw) && !strings.Contains(lh, "data") {
				return rec.Cells[h]
			}
		}
	}
	return nil
}

func resolveText(rec expense.RawRecord, keywords []string, fallback string) string {
	v, ok := expense.ResolveColumn(rec, keywords)
	if !ok {
		return fallback
	}
	s := strings.TrimSpace(expense.CellText(v))
	if s == "" {
		return fallback
	}
	return s
}

// MapSalesRow turns one decoded row of a period's sales file into a sales
// entry. Sentinels mirror the expense mapper so grouping never sees empty
// keys.
func MapSalesRow(rec expense.RawRecord, rowIndex int) SalesEntry {
	return SalesEntry{
		Branch:     resolveText(rec, branchKeywords, "Desconhecido"),
		Sector:     resolveText(rec, sectorKeywords, "-"),
		Department: resolveText(rec, departmentKeywords, "-"),
		Section:    resolveText(rec, sectionKeywords, fmt.Sprintf("Item %d", rowIndex)),
		Amount:     expense.ParseAmount(resolveSalesAmount(rec)),
	}
}

// MergeSalesPeriods folds the three time-offset sales imports into one row
// per identity. Each period's amounts land in their own slot; an identity
// missing from a period keeps zero there. Later periods may introduce
// identities the earlier ones never had, so the result is the union.
// After merging, every row starts with zero growth so its projected goal
// equals the reference-month sales.
func MergeSalesPeriods(minus2, minus1, ref []SalesEntry) []HierarchyRow {
	var rows []HierarchyRow
	index := map[string]int{}

	fold := func(entries []SalesEntry, assign func(*HierarchyRow, float64)) {
		for _, s := range entries {
			key := identityKey(s.Branch, s.Sector, s.Department, s.Section)
			idx, ok := index[key]
			if !ok {
				idx = len(rows)
				index[key] = idx
				rows = append(rows, HierarchyRow{
					ID:         fmt.Sprintf("temp-%d", idx),
					Branch:     s.Branch,
					Sector:     s.Sector,
					Department: s.Department,
					Section:    s.Section,
				})
			}
			assign(&rows[idx], s.Amount)
		}
	}

	fold(minus2, func(r *HierarchyRow, v float64) { r.SalesMonthMinus2 += v })
	fold(minus1, func(r *HierarchyRow, v float64) { r.SalesMonthMinus1 += v })
	fold(ref, func(r *HierarchyRow, v float64) { r.SalesRefMonth += v })

	for i := range rows {
		rows[i].SetGrowth(0)
	}
	return rows
}
