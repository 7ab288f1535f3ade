package expense

// Merge reconciles freshly mapped rows against already-persisted ones.
// Persisted rows are never removed or mutated; an incoming row survives only
// when its dedup key is not present among the persisted keys. Surviving rows
// are flagged new, persisted rows stay not-new.
func Merge(persisted []Expense, incoming []Expense) []Expense {
	existing := make(map[string]struct{}, len(persisted))
	merged := make([]Expense, 0, len(persisted)+len(incoming))
	for _, e := range persisted {
		e.IsNew = false
		existing[e.DedupKey] = struct{}{}
		merged = append(merged, e)
	}
	for _, e := range incoming {
		if e.DedupKey == "" {
			e.DedupKey = DedupKey(e)
		}
		if _, dup := existing[e.DedupKey]; dup {
			continue
		}
		e.IsNew = true
		merged = append(merged, e)
	}
	return merged
}

// CountNew reports how many rows in the set are still unsynced.
func CountNew(rows []Expense) int {
	n := 0
	for _, e := range rows {
		if e.IsNew {
			n++
		}
	}
	return n
}
