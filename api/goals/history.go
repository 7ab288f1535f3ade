package goals

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Goal projection lifecycle states.
const (
	StatusRascunho  = "Rascunho"
	StatusPublicada = "Publicada"
	StatusArquivada = "Arquivada"
)

// HistoryEntry is one saved goal projection, draft or published.
type HistoryEntry struct {
	ID        int64          `json:"id"`
	Name      string         `json:"nome"`
	RefMonth  int            `json:"mes_ref"`
	RefYear   int            `json:"ano_ref"`
	Status    string         `json:"status"`
	Rows      []HierarchyRow `json:"linhas,omitempty"`
	CreatedAt time.Time      `json:"criado_em"`
	UpdatedAt time.Time      `json:"atualizado_em"`
}

func pqUserFriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return err.Error()
	}
	switch pqErr.Code {
	case "23505":
		return "A projection with this name already exists for this period."
	case "23503":
		return "Some referenced data was not found (please refresh and try again)."
	case "23514":
		return "Some fields have invalid values. Please check and try again."
	default:
		return "Database error while processing the request. Please try again."
	}
}

// SaveHistory stores a projection draft and returns its identifier.
func SaveHistory(ctx context.Context, db *sql.DB, name string, refMonth, refYear int, rows []HierarchyRow) (int64, error) {
	payload, err := json.Marshal(rows)
	if err != nil {
		return 0, fmt.Errorf("encode projection rows: %w", err)
	}
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO metas_historico (nome, mes_ref, ano_ref, status, payload, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id`,
		name, refMonth, refYear, StatusRascunho, payload).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s", pqUserFriendlyMessage(err))
	}
	return id, nil
}

// ListHistory returns one page of saved projections newest first, without
// their row payloads.
func ListHistory(ctx context.Context, db *sql.DB, limit, offset int) ([]HistoryEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, nome, mes_ref, ano_ref, status, criado_em, atualizado_em
		FROM metas_historico
		ORDER BY criado_em DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s", pqUserFriendlyMessage(err))
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(&h.ID, &h.Name, &h.RefMonth, &h.RefYear, &h.Status, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// GetHistory loads one saved projection including its rows.
func GetHistory(ctx context.Context, db *sql.DB, id int64) (*HistoryEntry, error) {
	var h HistoryEntry
	var payload []byte
	err := db.QueryRowContext(ctx, `
		SELECT id, nome, mes_ref, ano_ref, status, payload, criado_em, atualizado_em
		FROM metas_historico WHERE id = $1`, id).
		Scan(&h.ID, &h.Name, &h.RefMonth, &h.RefYear, &h.Status, &payload, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("projection %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s", pqUserFriendlyMessage(err))
	}
	if err := json.Unmarshal(payload, &h.Rows); err != nil {
		return nil, fmt.Errorf("decode projection rows: %w", err)
	}
	return &h, nil
}

// UpdateHistoryStatus transitions a saved projection to a new lifecycle
// state.
func UpdateHistoryStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	if status != StatusRascunho && status != StatusPublicada && status != StatusArquivada {
		return fmt.Errorf("invalid status %q", status)
	}
	res, err := db.ExecContext(ctx, `
		UPDATE metas_historico SET status = $1, atualizado_em = now() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("%s", pqUserFriendlyMessage(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("projection %d not found", id)
	}
	return nil
}
