package goals

import (
	"database/sql"
	"log"
	"net/http"
)

func StartGoalsService(db *sql.DB) {
	mux := http.NewServeMux()

	mux.HandleFunc("/goals/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Goals Service is active"))
	})

	mux.HandleFunc("/goals/process", ProcessGoalsHandler())
	mux.HandleFunc("/goals/recalc", RecalcHandler())
	mux.HandleFunc("/goals/history/save", SaveHistoryHandler(db))
	mux.HandleFunc("/goals/history/list", ListHistoryHandler(db))
	mux.HandleFunc("/goals/history/get", GetHistoryHandler(db))
	mux.HandleFunc("/goals/history/publish", PublishHistoryHandler(db))
	mux.HandleFunc("/goals/history/archive", ArchiveHistoryHandler(db))

	log.Println("Goals Service started on :4143")
	err := http.ListenAndServe(":4143", mux)
	if err != nil {
		log.Fatalf("Goals Service failed: %v", err)
	}
}
