package goals

import (
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"VarejoOpsSaas/api/constants"
	"VarejoOpsSaas/api/expense"
	"VarejoOpsSaas/api/utils"
)

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

func salesEntriesFromUpload(r *http.Request, field string) ([]SalesEntry, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	records, _, err := expense.DecodeSpreadsheet(fileBytes)
	if err != nil {
		return nil, err
	}
	entries := make([]SalesEntry, 0, len(records))
	for i, rec := range records {
		entries = append(entries, MapSalesRow(rec, i))
	}
	return entries, nil
}

// ProcessGoalsHandler takes the three time-offset sales files and returns
// the merged hierarchy with zeroed growth plus its aggregates. All three
// files are required; a missing one is a user error, not a parse failure.
func ProcessGoalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		fields := []string{"arquivo_mes_menos2", "arquivo_mes_menos1", "arquivo_mes_ref"}
		datasets := make([][]SalesEntry, len(fields))
		for i, field := range fields {
			entries, err := salesEntriesFromUpload(r, field)
			if err != nil {
				respondWithError(w, http.StatusBadRequest,
					constants.ErrMissingSalesFiles+" ("+field+": "+err.Error()+")")
				return
			}
			datasets[i] = entries
		}

		rows := MergeSalesPeriods(datasets[0], datasets[1], datasets[2])
		respondJSON(w, map[string]interface{}{
			"success":   true,
			"linhas":    rows,
			"total":     len(rows),
			"agregados": ComputeAggregates(rows, HierarchyFilters{}),
		})
	}
}

type editRequest struct {
	Rows    []HierarchyRow   `json:"linhas"`
	Filters HierarchyFilters `json:"filtros"`
	Growth  *struct {
		ID    string  `json:"id"`
		Value float64 `json:"valor"`
	} `json:"crescimento,omitempty"`
	Goal *struct {
		ID    string  `json:"id"`
		Value float64 `json:"valor"`
	} `json:"meta,omitempty"`
	AdditionalPct *float64 `json:"pct_adicional,omitempty"`
}

// RecalcHandler applies one edit to the hierarchy and returns the rows with
// growth and goal kept mutually consistent, plus refreshed aggregates.
// A growth edit drives the goal, a goal edit back-computes growth, and the
// bulk percentage only touches rows passing the active filters.
func RecalcHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req editRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}

		if req.Growth != nil {
			for i := range req.Rows {
				if req.Rows[i].ID == req.Growth.ID {
					req.Rows[i].SetGrowth(req.Growth.Value)
					break
				}
			}
		}
		if req.Goal != nil {
			for i := range req.Rows {
				if req.Rows[i].ID == req.Goal.ID {
					req.Rows[i].SetGoal(req.Goal.Value)
					break
				}
			}
		}
		if req.AdditionalPct != nil {
			ApplyAdditionalPct(req.Rows, req.Filters, *req.AdditionalPct)
		}

		respondJSON(w, map[string]interface{}{
			"success":   true,
			"linhas":    req.Rows,
			"agregados": ComputeAggregates(req.Rows, req.Filters),
		})
	}
}

// SaveHistoryHandler stores the current projection as a draft.
func SaveHistoryHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			Name     string         `json:"nome"`
			RefMonth int            `json:"mes_ref"`
			RefYear  int            `json:"ano_ref"`
			Rows     []HierarchyRow `json:"linhas"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if req.RefMonth < 1 || req.RefMonth > 12 {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidPeriod)
			return
		}
		if req.Name == "" || len(req.Rows) == 0 {
			respondWithError(w, http.StatusBadRequest, constants.ErrEmptyProjectionRows)
			return
		}
		id, err := SaveHistory(r.Context(), db, req.Name, req.RefMonth, req.RefYear, req.Rows)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, map[string]interface{}{
			"success": true,
			"id":      id,
			"status":  StatusRascunho,
		})
	}
}

// ListHistoryHandler returns one page of saved projections without their
// payloads.
func ListHistoryHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pagination, err := utils.ExtractPagination(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		total, err := utils.CountTotal(db, `SELECT COUNT(*) FROM metas_historico`)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		pagination.SetPaginationStats(total)

		entries, err := ListHistory(r.Context(), db, pagination.Limit, pagination.Offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, map[string]interface{}{
			"success":    true,
			"historico":  entries,
			"pagination": pagination,
		})
	}
}

// GetHistoryHandler returns one saved projection with its rows.
func GetHistoryHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid id")
			return
		}
		entry, err := GetHistory(r.Context(), db, id)
		if err != nil {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondJSON(w, map[string]interface{}{
			"success":  true,
			"projecao": entry,
		})
	}
}

func statusTransitionHandler(db *sql.DB, status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondWithError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
			return
		}
		var req struct {
			ID int64 `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if err := UpdateHistoryStatus(r.Context(), db, req.ID, status); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, map[string]interface{}{
			"success": true,
			"id":      req.ID,
			"status":  status,
		})
	}
}

// PublishHistoryHandler marks a draft as published.
func PublishHistoryHandler(db *sql.DB) http.HandlerFunc {
	return statusTransitionHandler(db, StatusPublicada)
}

// ArchiveHistoryHandler retires a projection.
func ArchiveHistoryHandler(db *sql.DB) http.HandlerFunc {
	return statusTransitionHandler(db, StatusArquivada)
}
