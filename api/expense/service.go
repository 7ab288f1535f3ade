package expense

import (
	"VarejoOpsSaas/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewExpenseService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &ExpenseService{config: cfg, pool: pool}
}

func (s *ExpenseService) Name() string {
	return "expense"
}

func (s *ExpenseService) Start() error {
	go StartExpenseService(s.pool)
	return nil
}

func (s *ExpenseService) Stop() error {
	return nil
}
