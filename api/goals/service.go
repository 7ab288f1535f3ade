package goals

import (
	"database/sql"

	"VarejoOpsSaas/internal/serviceiface"
)

type GoalsService struct {
	config map[string]interface{}
	db     *sql.DB
}

func NewGoalsService(cfg map[string]interface{}, db *sql.DB) serviceiface.Service {
	return &GoalsService{config: cfg, db: db}
}

func (s *GoalsService) Name() string {
	return "goals"
}

func (s *GoalsService) Start() error {
	go StartGoalsService(s.db)
	return nil
}

func (s *GoalsService) Stop() error {
	return nil
}
