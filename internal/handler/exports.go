package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mazoon-pos/api/internal/enum"
	"github.com/mazoon-pos/api/internal/middleware"
	"github.com/mazoon-pos/api/internal/model"
	"github.com/mazoon-pos/api/internal/pdf"
	"github.com/mazoon-pos/api/internal/store"
)

// ExportStore defines the store methods needed by export handlers.
// Satisfied by *store.Store; narrow interface for testability.
type ExportStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error)
	ListOrders(ctx context.Context, f store.OrderFilter) ([]model.Order, error)
}

// ExportHandler renders order PDFs over HTTP.
type ExportHandler struct {
	store    ExportStore
	renderer *pdf.Renderer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(store ExportStore, renderer *pdf.Renderer) *ExportHandler {
	return &ExportHandler{store: store, renderer: renderer}
}

// RegisterRoutes registers export endpoints on the given Chi router.
// Expected to be mounted inside an authenticated subrouter: /exports.
// The per-order receipt route lives under /orders and is registered by
// the router alongside the order CRUD routes.
func (h *ExportHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRole(enum.UserRoleReception)).Get("/orders.pdf", h.Report)
}

// Report handles GET /exports/orders.pdf. It renders the same filtered
// list GET /orders would return, without pagination.
func (h *ExportHandler) Report(w http.ResponseWriter, r *http.Request) {
	filter := store.OrderFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date format, use YYYY-MM-DD"})
			return
		}
		filter.From = t
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date format, use YYYY-MM-DD"})
			return
		}
		// end_date covers the whole day
		filter.To = t.AddDate(0, 0, 1)
	}

	orders, err := h.store.ListOrders(r.Context(), filter)
	if err != nil {
		log.Printf("ERROR: list orders for export: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	opts := pdf.ReportOptions{
		Title: r.URL.Query().Get("title"),
		Lang:  r.URL.Query().Get("lang"),
	}
	if s := r.URL.Query().Get("summary"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			opts.IncludeSummary = v
		}
	}
	if s := r.URL.Query().Get("footer"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			opts.IncludeFooter = v
		}
	}

	records := make([]pdf.OrderRecord, len(orders))
	for i, o := range orders {
		records[i] = pdf.RecordFromOrder(o)
	}

	servePDF(w, r, h.renderer.Report(records, opts))
}

// Receipt handles GET /orders/{id}/receipt.pdf.
func (h *ExportHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order for receipt: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	opts := pdf.ReceiptOptions{
		Lang: r.URL.Query().Get("lang"),
	}

	servePDF(w, r, h.renderer.Receipt(pdf.RecordFromOrder(order), opts))
}

// servePDF streams doc as a download, or as a JSON data URI when the
// request carries ?format=datauri (the dashboard's inline preview).
func servePDF(w http.ResponseWriter, r *http.Request, doc *pdf.Document) {
	if r.URL.Query().Get("format") == "datauri" {
		uri, err := doc.DataURI()
		if err != nil {
			log.Printf("ERROR: render pdf: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"file_name": doc.FileName(),
			"data_uri":  uri,
		})
		return
	}

	b, err := doc.Bytes()
	if err != nil {
		log.Printf("ERROR: render pdf: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		log.Printf("ERROR: write pdf response: %v", err)
	}
}
