package goals

// SetGrowth makes growth the driving field: the projected goal is recomputed
// from the reference-month sales.
func (r *HierarchyRow) SetGrowth(pct float64) {
	r.GrowthPct = pct
	r.ProjectedGoal = r.SalesRefMonth * (1 + pct/100)
}

// SetGoal makes the goal the driving field: growth is back-computed, or held
// at zero when the reference month has no sales.
func (r *HierarchyRow) SetGoal(goal float64) {
	r.ProjectedGoal = goal
	if r.SalesRefMonth == 0 {
		r.GrowthPct = 0
		return
	}
	r.GrowthPct = (goal/r.SalesRefMonth - 1) * 100
}

// ApplyAdditionalPct adds a growth delta to every row passing the active
// filters, recomputing each affected row's goal. Rows outside the filter are
// untouched.
func ApplyAdditionalPct(rows []HierarchyRow, f HierarchyFilters, delta float64) {
	for i := range rows {
		if f.Matches(rows[i]) {
			rows[i].SetGrowth(rows[i].GrowthPct + delta)
		}
	}
}

// Aggregates are the summary-strip numbers for the filtered hierarchy.
// GroupGoal always covers every loaded row; the narrower level totals are
// only present when the matching filter level is active.
type Aggregates struct {
	TotalMinus2    float64       `json:"total_mes_menos2"`
	TotalMinus1    float64       `json:"total_mes_menos1"`
	TotalRef       float64       `json:"total_mes_ref"`
	TotalGoal      float64       `json:"total_meta"`
	AvgGrowthPct   float64       `json:"crescimento_medio_pct"`
	GrowthVsMinus1 float64       `json:"crescimento_vs_menos1_pct"`
	GroupGoal      float64       `json:"meta_grupo"`
	BranchGoal     *float64      `json:"meta_filial,omitempty"`
	SectorGoal     *float64      `json:"meta_setor,omitempty"`
	DepartmentGoal *float64      `json:"meta_departamento,omitempty"`
	BestPerformer  *HierarchyRow `json:"melhor_desempenho,omitempty"`
	WorstPerformer *HierarchyRow `json:"pior_desempenho,omitempty"`
}

// ComputeAggregates sums the filtered rows and blends their growth as
// (total goal / total reference sales - 1) * 100. That weighting is not the
// arithmetic mean of per-row growth: large rows count for more. Best and
// worst performers are picked by signed growth, first-encountered on ties.
func ComputeAggregates(rows []HierarchyRow, f HierarchyFilters) Aggregates {
	var agg Aggregates
	var branchGoal, sectorGoal, deptGoal float64
	for i := range rows {
		r := rows[i]
		agg.GroupGoal += r.ProjectedGoal
		if r.Branch == f.Branch {
			branchGoal += r.ProjectedGoal
			if r.Sector == f.Sector {
				sectorGoal += r.ProjectedGoal
				if r.Department == f.Department {
					deptGoal += r.ProjectedGoal
				}
			}
		}
		if !f.Matches(r) {
			continue
		}
		agg.TotalMinus2 += r.SalesMonthMinus2
		agg.TotalMinus1 += r.SalesMonthMinus1
		agg.TotalRef += r.SalesRefMonth
		agg.TotalGoal += r.ProjectedGoal
		if agg.BestPerformer == nil || r.GrowthPct > agg.BestPerformer.GrowthPct {
			best := r
			agg.BestPerformer = &best
		}
		if agg.WorstPerformer == nil || r.GrowthPct < agg.WorstPerformer.GrowthPct {
			worst := r
			agg.WorstPerformer = &worst
		}
	}
	if f.Branch != "" {
		agg.BranchGoal = &branchGoal
	}
	if f.Sector != "" {
		agg.SectorGoal = &sectorGoal
	}
	if f.Department != "" {
		agg.DepartmentGoal = &deptGoal
	}
	if agg.TotalRef > 0 {
		agg.AvgGrowthPct = (agg.TotalGoal/agg.TotalRef - 1) * 100
	}
	if agg.TotalMinus1 > 0 {
		agg.GrowthVsMinus1 = (agg.TotalGoal/agg.TotalMinus1 - 1) * 100
	}
	return agg
}
