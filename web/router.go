// Package web serves the assembled ledger and reconciliation state over
// HTTP, for the operator's dashboard and for spreadsheet imports.
package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/valops/vacct"
	"github.com/valops/vacct/renderer"
)

// Reporter builds a report on demand. The serve command wires this to the
// store-backed pipeline; tests wire canned data.
type Reporter interface {
	Report(year int) (*vacct.Report, error)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(reporter Reporter, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}).Handler)

	h := &handler{reporter: reporter}
	r.Route("/api", func(r chi.Router) {
		r.Get("/ledger", h.ledger)
		r.Get("/ledger.csv", h.ledgerCSV)
		r.Get("/reconciliation", h.reconciliation)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}

type handler struct {
	reporter Reporter
}

// report runs the pipeline for the request's optional year filter.
func (h *handler) report(w http.ResponseWriter, r *http.Request) *vacct.Report {
	year := 0
	if q := r.URL.Query().Get("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return nil
		}
		year = y
	}
	rep, err := h.reporter.Report(year)
	if err != nil {
		log.Printf("report failed: %v", err)
		http.Error(w, "report failed", http.StatusInternalServerError)
		return nil
	}
	return rep
}

func (h *handler) ledger(w http.ResponseWriter, r *http.Request) {
	rep := h.report(w, r)
	if rep == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rep); err != nil {
		log.Printf("encode failed: %v", err)
	}
}

func (h *handler) ledgerCSV(w http.ResponseWriter, r *http.Request) {
	rep := h.report(w, r)
	if rep == nil {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)
	if err := renderer.LedgerCSV(w, rep.Entries); err != nil {
		log.Printf("csv write failed: %v", err)
	}
}

func (h *handler) reconciliation(w http.ResponseWriter, r *http.Request) {
	rep := h.report(w, r)
	if rep == nil {
		return
	}
	if rep.Reconciliation == nil {
		http.Error(w, "no balance snapshot available", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rep.Reconciliation); err != nil {
		log.Printf("encode failed: %v", err)
	}
}
