package expense

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"

	"VarejoOpsSaas/api/constants"
)

// Helper function for consistent error responses
func respondWithError(w http.ResponseWriter, status int, errMsg string) {
	log.Printf("[ERROR] %s", errMsg)
	w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   errMsg,
	})
}

func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
	json.NewEncoder(w).Encode(payload)
}

func parsePeriodField(r *http.Request, monthField, yearField string) (Period, error) {
	month, err := strconv.Atoi(r.FormValue(monthField))
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid %s", monthField)
	}
	year, err := strconv.Atoi(r.FormValue(yearField))
	if err != nil || year < 2000 || year > 2100 {
		return Period{}, fmt.Errorf("invalid %s", yearField)
	}
	return Period{Month: month, Year: year}, nil
}

// UploadExpensesHandler ingests one spreadsheet for a reporting period,
// maps its rows to canonical expenses and reconciles them against the rows
// already persisted for that year. Nothing is written yet; the caller
// reviews the merged set and triggers sync separately.
func UploadExpensesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		period, err := parsePeriodField(r, "mes", "ano")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrNoFile)
			return
		}
		defer file.Close()
		fileBytes, err := io.ReadAll(file)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "failed to read file")
			return
		}

		records, fileExt, err := DecodeSpreadsheet(fileBytes)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		incoming := make([]Expense, 0, len(records))
		for i, rec := range records {
			incoming = append(incoming, MapRow(rec, i, period))
		}

		persisted, err := FetchExpenses(r.Context(), pool, period.Year, period.Year)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		merged := Merge(persisted, incoming)

		batchID := uuid.New().String()
		if isS3Enabled() {
			if key, err := ArchiveUpload(r.Context(), batchID, fileBytes, fileExt); err != nil {
				log.Printf("[ExpenseUpload] S3 archive failed for batch %s: %v", batchID, err)
			} else {
				log.Printf("[ExpenseUpload] archived batch %s at %s", batchID, key)
			}
		}

		newCount := CountNew(merged)
		respondJSON(w, map[string]interface{}{
			"success":        true,
			"batch_id":       batchID,
			"despesas":       merged,
			"total":          len(merged),
			"novas":          newCount,
			"duplicadas":     len(incoming) - newCount,
			"linhas_arquivo": len(records),
			"mes":            period.Month,
			"ano":            period.Year,
			"message":        fmt.Sprintf(constants.SuccessUploaded, len(records)),
		})
	}
}

// SyncExpensesHandler persists the still-new rows of a reviewed merge.
// Requires at least one new row; duplicate hashes are skipped silently by
// the store.
func SyncExpensesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			BatchID string    `json:"batch_id"`
			Rows    []Expense `json:"despesas"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if req.BatchID == "" {
			req.BatchID = uuid.New().String()
		}
		if CountNew(req.Rows) == 0 {
			respondWithError(w, http.StatusBadRequest, constants.ErrNoNewRows)
			return
		}
		inserted, err := SyncNewExpenses(r.Context(), pool, req.BatchID, req.Rows)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		respondJSON(w, map[string]interface{}{
			"success":  true,
			"batch_id": req.BatchID,
			"inserted": inserted,
			"message":  fmt.Sprintf(constants.SuccessSynced, inserted),
		})
	}
}

type analysisRequest struct {
	Filters Filters `json:"filtros"`
	Start   Period  `json:"inicio"`
	End     Period  `json:"fim"`
}

func (req analysisRequest) validate() error {
	for _, p := range []Period{req.Start, req.End} {
		if p.Month < 1 || p.Month > 12 || p.Year < 2000 || p.Year > 2100 {
			return fmt.Errorf("invalid period %d/%d", p.Month, p.Year)
		}
	}
	if req.Start.Linearize() > req.End.Linearize() {
		return fmt.Errorf("start period after end period")
	}
	return nil
}

// AnalysisHandler computes the KPI cards, monthly series and pivot for an
// inclusive period range under the given filters.
func AnalysisHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req analysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if err := req.validate(); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		persisted, err := FetchExpenses(r.Context(), pool, req.Start.Year, req.End.Year)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		analysis := Analyze(persisted, req.Filters, req.Start, req.End)
		respondJSON(w, map[string]interface{}{
			"success":  true,
			"analysis": analysis,
		})
	}
}

// MonthDetailHandler lists the expenses behind one bucket of the series.
func MonthDetailHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			Filters Filters `json:"filtros"`
			Month   int     `json:"mes"`
			Year    int     `json:"ano"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if req.Month < 1 || req.Month > 12 {
			respondWithError(w, http.StatusBadRequest, "invalid mes")
			return
		}
		persisted, err := FetchExpenses(r.Context(), pool, req.Year, req.Year)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		rows := MonthExpenses(persisted, req.Filters, Period{Month: req.Month, Year: req.Year})
		respondJSON(w, map[string]interface{}{
			"success":  true,
			"despesas": rows,
			"total":    len(rows),
		})
	}
}

// FilterOptionsHandler returns the distinct values per dimension for the
// dropdowns, scoped to one year of persisted rows.
func FilterOptionsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			Year int `json:"ano"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		persisted, err := FetchExpenses(r.Context(), pool, req.Year, req.Year)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		respondJSON(w, map[string]interface{}{
			"success": true,
			"options": DistinctValues(persisted),
		})
	}
}

// ExportAnalysisHandler renders the pivot of an analysis request as an xlsx
// download.
func ExportAnalysisHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req analysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if err := req.validate(); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		persisted, err := FetchExpenses(r.Context(), pool, req.Start.Year, req.End.Year)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		analysis := Analyze(persisted, req.Filters, req.Start, req.End)

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)

		header := append([]string{"Plano de Contas"}, analysis.Pivot.Columns...)
		header = append(header, "Total")
		for col, val := range header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, val)
		}
		rowNum := 2
		for _, row := range analysis.Pivot.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			f.SetCellValue(sheet, cell, row.Category)
			for i, v := range row.Cells {
				cell, _ = excelize.CoordinatesToCellName(i+2, rowNum)
				f.SetCellValue(sheet, cell, v)
			}
			cell, _ = excelize.CoordinatesToCellName(len(row.Cells)+2, rowNum)
			f.SetCellValue(sheet, cell, row.Total)
			rowNum++
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		f.SetCellValue(sheet, cell, "Total")
		for i, v := range analysis.Pivot.ColumnTotals {
			cell, _ = excelize.CoordinatesToCellName(i+2, rowNum)
			f.SetCellValue(sheet, cell, v)
		}
		cell, _ = excelize.CoordinatesToCellName(len(analysis.Pivot.ColumnTotals)+2, rowNum)
		f.SetCellValue(sheet, cell, analysis.Pivot.GrandTotal)

		filename := fmt.Sprintf("despesas_%d%02d_%d%02d.xlsx",
			req.Start.Year, req.Start.Month, req.End.Year, req.End.Month)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		if err := f.Write(w); err != nil {
			log.Printf("[ExpenseExport] write xlsx: %v", err)
		}
	}
}
