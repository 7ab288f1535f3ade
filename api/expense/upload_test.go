package expense_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"VarejoOpsSaas/api/expense"
)

func TestDecodeSpreadsheetCSV(t *testing.T) {
	csvData := []byte("Filial,Fornecedor,Valor,Data\nA,X,\"100,00\",45000\n,,,\n")

	records, ext, err := expense.DecodeSpreadsheet(csvData)
	if err != nil {
		t.Fatalf("DecodeSpreadsheet: %v", err)
	}
	if got, want := ext, ".csv"; got != want {
		t.Fatalf("ext=%q, want %q", got, want)
	}
	if got, want := len(records), 1; got != want {
		t.Fatalf("len(records)=%d, want %d (blank row must be dropped)", got, want)
	}
	rec := records[0]
	if got, want := rec.Cells["Fornecedor"].(string), "X"; got != want {
		t.Fatalf("Fornecedor=%q, want %q", got, want)
	}
	// Numeric-looking cells become numbers so serial dates survive
	if got, want := rec.Cells["Data"].(float64), float64(45000); got != want {
		t.Fatalf("Data=%v, want %v", got, want)
	}
	if _, isString := rec.Cells["Valor"].(string); !isString {
		t.Fatalf("Valor=%T, want string (comma decimal is not float-parseable)", rec.Cells["Valor"])
	}
}

func TestDecodeSpreadsheetXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Fornecedor")
	f.SetCellValue(sheet, "B1", "Valor")
	f.SetCellValue(sheet, "A2", "ACME")
	f.SetCellValue(sheet, "B2", 123.45)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()

	records, ext, err := expense.DecodeSpreadsheet(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeSpreadsheet: %v", err)
	}
	if got, want := ext, ".xlsx"; got != want {
		t.Fatalf("ext=%q, want %q", got, want)
	}
	if got, want := len(records), 1; got != want {
		t.Fatalf("len(records)=%d, want %d", got, want)
	}
	if got, want := records[0].Cells["Fornecedor"].(string), "ACME"; got != want {
		t.Fatalf("Fornecedor=%q, want %q", got, want)
	}
	if got, want := records[0].Cells["Valor"].(float64), 123.45; got != want {
		t.Fatalf("Valor=%v, want %v", got, want)
	}
}

func TestDecodeSpreadsheetNoDataRows(t *testing.T) {
	if _, _, err := expense.DecodeSpreadsheet([]byte("Filial,Valor\n")); err == nil {
		t.Fatal("DecodeSpreadsheet accepted header-only file, want error")
	}
}

func TestDecodeThenMapEndToEnd(t *testing.T) {
	csvData := []byte("Filial,Fornecedor,Valor,Titulo,Data\nA,X,\"100,00\",T1,01/01/2024\n")
	records, _, err := expense.DecodeSpreadsheet(csvData)
	if err != nil {
		t.Fatalf("DecodeSpreadsheet: %v", err)
	}

	period := expense.Period{Month: 1, Year: 2024}
	incoming := make([]expense.Expense, 0, len(records))
	for i, rec := range records {
		incoming = append(incoming, expense.MapRow(rec, i, period))
	}
	merged := expense.Merge(nil, incoming)

	if got, want := len(merged), 1; got != want {
		t.Fatalf("len(merged)=%d, want %d", got, want)
	}
	e := merged[0]
	if e.Amount != 100 || e.Status != "Pago" || !e.IsNew {
		t.Fatalf("merged[0]={Amount:%v Status:%q IsNew:%v}, want {100 Pago true}", e.Amount, e.Status, e.IsNew)
	}

	// A second pass over the same file against the first merge stays flat
	again := expense.Merge(merged, incoming)
	if got, want := expense.CountNew(again), 0; got != want {
		t.Fatalf("CountNew after re-import=%d, want %d", got, want)
	}
}
