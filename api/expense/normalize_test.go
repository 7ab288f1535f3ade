package expense_test

import (
	"math"
	"testing"

	"VarejoOpsSaas/api/expense"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"brazilian thousands", "1.234,56", 1234.56},
		{"plain decimal", "1234.56", 1234.56},
		{"currency symbol", "R$ 50", 50},
		{"comma decimal", "100,00", 100},
		{"large brazilian", "R$ 1.234.567,89", 1234567.89},
		{"numeric passthrough", 987.65, 987.65},
		{"integer passthrough", 42, 42},
		{"empty string", "", 0},
		{"nil cell", nil, 0},
		{"garbage", "abc", 0},
		{"dot-last ambiguous", "1,234.56", 1234.56},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := expense.ParseAmount(tc.in)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("ParseAmount(%v)=%v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseDateValueSerial(t *testing.T) {
	if got, want := expense.ParseDateValue(float64(45000)), "15/03/2023"; got != want {
		t.Fatalf("ParseDateValue(45000)=%q, want %q", got, want)
	}
	// Unix epoch boundary
	if got, want := expense.ParseDateValue(float64(25569)), "01/01/1970"; got != want {
		t.Fatalf("ParseDateValue(25569)=%q, want %q", got, want)
	}
}

func TestParseDateValueStringPassthrough(t *testing.T) {
	if got, want := expense.ParseDateValue(" 05/07/2024 "), "05/07/2024"; got != want {
		t.Fatalf("ParseDateValue=%q, want %q", got, want)
	}
	if got, want := expense.ParseDateValue("sem data"), "sem data"; got != want {
		t.Fatalf("ParseDateValue=%q, want %q", got, want)
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{"Aberto", "Aberto"},
		{"EM ABERTO", "Aberto"},
		{"pendente", "Aberto"},
		{"Pago", "Pago"},
		{"Liquidado", "Pago"},
		{"", "Pago"},
		{nil, "Pago"},
	}
	for _, tc := range cases {
		if got := expense.ParseStatus(tc.in); got != tc.want {
			t.Fatalf("ParseStatus(%v)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got, want := expense.FormatAmount(100), "100"; got != want {
		t.Fatalf("FormatAmount(100)=%q, want %q", got, want)
	}
	if got, want := expense.FormatAmount(1234.56), "1234.56"; got != want {
		t.Fatalf("FormatAmount(1234.56)=%q, want %q", got, want)
	}
}
