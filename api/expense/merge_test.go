package expense_test

import (
	"testing"

	"VarejoOpsSaas/api/expense"
)

func mapped(branch, vendor, title string, amount float64) expense.Expense {
	e := expense.Expense{
		Branch: branch, Vendor: vendor, Title: title, Amount: amount,
		DateText: "01/01/2024", RefMonth: 1, RefYear: 2024,
	}
	e.DedupKey = expense.DedupKey(e)
	return e
}

func TestMergeAgainstEmptyPersisted(t *testing.T) {
	incoming := []expense.Expense{
		mapped("A", "X", "T1", 100),
		mapped("A", "Y", "T2", 200),
	}
	merged := expense.Merge(nil, incoming)

	if got, want := len(merged), 2; got != want {
		t.Fatalf("len(merged)=%d, want %d", got, want)
	}
	for i, e := range merged {
		if !e.IsNew {
			t.Fatalf("merged[%d].IsNew=false, want true", i)
		}
	}
}

func TestMergeSkipsPersistedDuplicates(t *testing.T) {
	persisted := []expense.Expense{mapped("A", "X", "T1", 100)}
	persisted[0].ID = "42"
	incoming := []expense.Expense{
		mapped("A", "X", "T1", 100),
		mapped("A", "Y", "T2", 200),
	}
	merged := expense.Merge(persisted, incoming)

	if got, want := len(merged), 2; got != want {
		t.Fatalf("len(merged)=%d, want %d", got, want)
	}
	if merged[0].IsNew {
		t.Fatal("persisted row flagged new")
	}
	if got, want := merged[0].ID, "42"; got != want {
		t.Fatalf("persisted ID=%q, want %q", got, want)
	}
	if got, want := expense.CountNew(merged), 1; got != want {
		t.Fatalf("CountNew=%d, want %d", got, want)
	}
}

func TestMergeIdempotence(t *testing.T) {
	incoming := []expense.Expense{
		mapped("A", "X", "T1", 100),
		mapped("A", "Y", "T2", 200),
	}
	first := expense.Merge(nil, incoming)
	second := expense.Merge(first, incoming)

	if got, want := len(second), len(first); got != want {
		t.Fatalf("second merge grew: len=%d, want %d", got, want)
	}
	for i, e := range second {
		if e.IsNew {
			t.Fatalf("second[%d].IsNew=true after re-merge, want false", i)
		}
	}
}

func TestMergeDoesNotMutatePersisted(t *testing.T) {
	persisted := []expense.Expense{mapped("A", "X", "T1", 100)}
	persisted[0].IsNew = false
	before := persisted[0]

	expense.Merge(persisted, []expense.Expense{mapped("A", "Y", "T2", 200)})

	if persisted[0] != before {
		t.Fatalf("persisted[0] mutated: %+v, want %+v", persisted[0], before)
	}
}
