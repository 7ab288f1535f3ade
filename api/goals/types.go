package goals

import (
	"fmt"
	"strings"
)

// HierarchyRow is one merchandising category aligned across the three
// imported sales periods, carrying its goal projection.
type HierarchyRow struct {
	ID               string  `json:"id"`
	Branch           string  `json:"filial"`
	Sector           string  `json:"setor"`
	Department       string  `json:"departamento"`
	Section          string  `json:"secao"`
	SalesMonthMinus2 float64 `json:"vendas_mes_menos2"`
	SalesMonthMinus1 float64 `json:"vendas_mes_menos1"`
	SalesRefMonth    float64 `json:"vendas_mes_ref"`
	GrowthPct        float64 `json:"crescimento_pct"`
	ProjectedGoal    float64 `json:"meta_projetada"`
}

// IdentityKey aligns the same category across separately imported periods.
func (r HierarchyRow) IdentityKey() string {
	return identityKey(r.Branch, r.Sector, r.Department, r.Section)
}

func identityKey(branch, sector, department, section string) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		strings.TrimSpace(branch), strings.TrimSpace(sector),
		strings.TrimSpace(department), strings.TrimSpace(section))
}

// SalesEntry is one mapped row of a single period's sales file.
type SalesEntry struct {
	Branch     string
	Sector     string
	Department string
	Section    string
	Amount     float64
}

// HierarchyFilters are conjunctive equality constraints over the hierarchy
// dimensions; empty string means no constraint.
type HierarchyFilters struct {
	Branch     string `json:"filial"`
	Sector     string `json:"setor"`
	Department string `json:"departamento"`
}

func (f HierarchyFilters) Matches(r HierarchyRow) bool {
	if f.Branch != "" && r.Branch != f.Branch {
		return false
	}
	if f.Sector != "" && r.Sector != f.Sector {
		return false
	}
	if f.Department != "" && r.Department != f.Department {
		return false
	}
	return true
}
