package expense_test

import (
	"testing"

	"VarejoOpsSaas/api/expense"
)

func record(headers []string, cells map[string]interface{}) expense.RawRecord {
	return expense.RawRecord{Headers: headers, Cells: cells}
}

func TestResolveColumnExactBeatsSubstring(t *testing.T) {
	rec := record(
		[]string{"Valor Total Geral", "Total"},
		map[string]interface{}{
			"Valor Total Geral": "999",
			"Total":             "123",
		},
	)

	// "Valor" has no exact match anywhere, so the exact pass falls through
	// to "Total", which must win over the substring hit on the first header.
	v, ok := expense.ResolveColumn(rec, []string{"Valor", "Total"})
	if !ok {
		t.Fatal("ResolveColumn returned absent, want match")
	}
	if got, want := v.(string), "123"; got != want {
		t.Fatalf("ResolveColumn=%q, want %q", got, want)
	}
}

func TestResolveColumnCaseInsensitiveExact(t *testing.T) {
	rec := record(
		[]string{"FORNECEDOR"},
		map[string]interface{}{"FORNECEDOR": "ACME"},
	)
	v, ok := expense.ResolveColumn(rec, []string{"Fornecedor"})
	if !ok {
		t.Fatal("ResolveColumn returned absent, want match")
	}
	if got, want := v.(string), "ACME"; got != want {
		t.Fatalf("ResolveColumn=%q, want %q", got, want)
	}
}

func TestResolveColumnSubstringFallback(t *testing.T) {
	rec := record(
		[]string{"Data de Vencimento"},
		map[string]interface{}{"Data de Vencimento": "01/02/2024"},
	)
	v, ok := expense.ResolveColumn(rec, []string{"Data", "Vencimento"})
	if !ok {
		t.Fatal("ResolveColumn returned absent, want substring match")
	}
	if got, want := v.(string), "01/02/2024"; got != want {
		t.Fatalf("ResolveColumn=%q, want %q", got, want)
	}
}

func TestResolveColumnAbsent(t *testing.T) {
	rec := record(
		[]string{"Observacao"},
		map[string]interface{}{"Observacao": "x"},
	)
	if _, ok := expense.ResolveColumn(rec, []string{"Fornecedor", "Vendor"}); ok {
		t.Fatal("ResolveColumn matched, want absent")
	}
}

func TestResolveColumnKeywordOrderWins(t *testing.T) {
	// Both keywords match exactly; the earlier keyword must be preferred.
	rec := record(
		[]string{"Vendor", "Fornecedor"},
		map[string]interface{}{
			"Vendor":     "B",
			"Fornecedor": "A",
		},
	)
	v, ok := expense.ResolveColumn(rec, []string{"Fornecedor", "Vendor"})
	if !ok {
		t.Fatal("ResolveColumn returned absent, want match")
	}
	if got, want := v.(string), "A"; got != want {
		t.Fatalf("ResolveColumn=%q, want %q", got, want)
	}
}
