package expense

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"VarejoOpsSaas/internal/config"
	"VarejoOpsSaas/internal/logger"
)

const expenseColumns = `id, filial, grupo, subgrupo, centro_custo, plano_contas,
	fornecedor, titulo, data_texto, valor, status, mes, ano, hash_id`

// FetchExpenses reads every persisted row whose reference year falls in
// [startYear, endYear], paging until a short page signals completion. The
// store predicate is year-only on purpose; month filtering happens in memory
// where the period linearization lives.
func FetchExpenses(ctx context.Context, pool *pgxpool.Pool, startYear, endYear int) ([]Expense, error) {
	var all []Expense
	offset := 0
	for {
		rows, err := pool.Query(ctx, fmt.Sprintf(`
			SELECT %s FROM despesas
			WHERE ano BETWEEN $1 AND $2
			ORDER BY ano, mes, id
			LIMIT $3 OFFSET $4`, expenseColumns),
			startYear, endYear, config.FetchPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch expenses page at offset %d: %w", offset, err)
		}
		page, err := scanExpenses(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < config.FetchPageSize {
			return all, nil
		}
		offset += config.FetchPageSize
	}
}

func scanExpenses(rows pgx.Rows) ([]Expense, error) {
	defer rows.Close()
	var out []Expense
	for rows.Next() {
		var e Expense
		err := rows.Scan(&e.ID, &e.Branch, &e.Group, &e.Subgroup, &e.CostCenter,
			&e.ChartOfAccounts, &e.Vendor, &e.Title, &e.DateText, &e.Amount,
			&e.Status, &e.RefMonth, &e.RefYear, &e.DedupKey)
		if err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		e.IsNew = false
		out = append(out, e)
	}
	return out, rows.Err()
}

// SyncNewExpenses upserts the still-unsynced rows keyed on their dedup hash.
// Conflicting keys are skipped silently, never overwritten, so re-syncing
// the same import is harmless. Returns the number of rows actually written.
func SyncNewExpenses(ctx context.Context, pool *pgxpool.Pool, batchID string, rows []Expense) (int, error) {
	pending := make([]Expense, 0, len(rows))
	for _, e := range rows {
		if e.IsNew {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO despesas
		(filial, grupo, subgrupo, centro_custo, plano_contas, fornecedor,
		 titulo, data_texto, valor, status, mes, ano, hash_id, batch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (hash_id) DO NOTHING`
	for _, e := range pending {
		batch.Queue(query, e.Branch, e.Group, e.Subgroup, e.CostCenter,
			e.ChartOfAccounts, e.Vendor, e.Title, e.DateText, e.Amount,
			e.Status, e.RefMonth, e.RefYear, e.DedupKey, batchID)
	}

	br := pool.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for i := 0; i < len(pending); i++ {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("sync expense %d of %d: %w", i+1, len(pending), err)
		}
		inserted += int(tag.RowsAffected())
	}

	msg := fmt.Sprintf("batch %s synced %d of %d pending rows", batchID, inserted, len(pending))
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogIngest(msg)
	} else {
		log.Printf("[INGEST] %s", msg)
	}
	return inserted, nil
}
