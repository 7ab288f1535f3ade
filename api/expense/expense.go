package expense

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

func StartExpenseService(pool *pgxpool.Pool) {
	mux := http.NewServeMux()

	mux.HandleFunc("/expense/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Expense Service is active"))
	})

	mux.HandleFunc("/expense/upload", UploadExpensesHandler(pool))
	mux.HandleFunc("/expense/sync", SyncExpensesHandler(pool))
	mux.HandleFunc("/expense/analysis", AnalysisHandler(pool))
	mux.HandleFunc("/expense/month-detail", MonthDetailHandler(pool))
	mux.HandleFunc("/expense/filter-options", FilterOptionsHandler(pool))
	mux.HandleFunc("/expense/export", ExportAnalysisHandler(pool))

	log.Println("Expense Service started on :6143")
	err := http.ListenAndServe(":6143", mux)
	if err != nil {
		log.Fatalf("Expense Service failed: %v", err)
	}
}
