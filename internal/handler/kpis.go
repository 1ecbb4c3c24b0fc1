package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mazoon-pos/api/internal/enum"
	"github.com/mazoon-pos/api/internal/middleware"
	"github.com/mazoon-pos/api/internal/model"
	"github.com/mazoon-pos/api/internal/store"
)

// KPIStore defines the store methods needed by the KPI handler.
// Satisfied by *store.Store; narrow interface for testability.
type KPIStore interface {
	ListOrders(ctx context.Context, f store.OrderFilter) ([]model.Order, error)
}

// KPIHandler serves the dashboard summary numbers.
type KPIHandler struct {
	store KPIStore
}

// NewKPIHandler creates a new KPIHandler.
func NewKPIHandler(store KPIStore) *KPIHandler {
	return &KPIHandler{store: store}
}

// RegisterRoutes registers KPI endpoints on the given Chi router.
// Expected to be mounted inside an authenticated subrouter: /kpis.
func (h *KPIHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRole(enum.UserRoleReception)).Get("/", h.Summary)
}

// --- Response types ---

type kpiResponse struct {
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	TotalOrders    int            `json:"total_orders"`
	PaidOrders     int            `json:"paid_orders"`
	UnpaidOrders   int            `json:"unpaid_orders"`
	TotalRevenue   string         `json:"total_revenue"`
	TotalAdvance   string         `json:"total_advance"`
	TotalBalance   string         `json:"total_balance"`
	AverageOrder   string         `json:"average_order"`
	StatusCounts   map[string]int `json:"status_counts"`
	PaymentCounts  map[string]int `json:"payment_counts"`
	DeliveryCounts map[string]int `json:"delivery_counts"`
}

// --- Handlers ---

// Summary handles GET /kpis. Without a date range it covers today.
func (h *KPIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseKPIDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	orders, err := h.store.ListOrders(r.Context(), store.OrderFilter{
		From: startDate,
		To:   endDate,
	})
	if err != nil {
		log.Printf("ERROR: list orders for kpis: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, summarizeOrders(orders, startDate, endDate))
}

func summarizeOrders(orders []model.Order, startDate, endDate time.Time) kpiResponse {
	resp := kpiResponse{
		StartDate:      startDate.Format("2006-01-02"),
		EndDate:        endDate.AddDate(0, 0, -1).Format("2006-01-02"),
		TotalOrders:    len(orders),
		StatusCounts:   make(map[string]int),
		PaymentCounts:  make(map[string]int),
		DeliveryCounts: make(map[string]int),
	}

	revenue := decimal.Zero
	advance := decimal.Zero
	balance := decimal.Zero
	priced := 0

	for _, o := range orders {
		if o.Paid {
			resp.PaidOrders++
		} else {
			resp.UnpaidOrders++
		}
		resp.StatusCounts[o.CookStatus]++
		if o.PaymentType != "" {
			resp.PaymentCounts[o.PaymentType]++
		}
		if o.DeliveryType != "" {
			resp.DeliveryCounts[o.DeliveryType]++
		}

		// Money fields are operator strings; unparseable values stay
		// out of the totals rather than failing the whole summary.
		if d, err := decimal.NewFromString(o.Total); err == nil {
			revenue = revenue.Add(d)
			priced++
		}
		if d, err := decimal.NewFromString(o.AdvancePayment); err == nil {
			advance = advance.Add(d)
		}
		if d, err := decimal.NewFromString(o.BalanceDue); err == nil {
			balance = balance.Add(d)
		}
	}

	resp.TotalRevenue = revenue.StringFixed(3)
	resp.TotalAdvance = advance.StringFixed(3)
	resp.TotalBalance = balance.StringFixed(3)
	if priced > 0 {
		resp.AverageOrder = revenue.Div(decimal.NewFromInt(int64(priced))).StringFixed(3)
	} else {
		resp.AverageOrder = "N/A"
	}
	return resp
}

// --- Helpers ---

// parseKPIDateRange parses start_date and end_date query params in the
// restaurant's timezone (Asia/Muscat). Defaults to today.
// Returns (startDate, endDate, error) where endDate is exclusive (next day midnight).
func parseKPIDateRange(r *http.Request) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	loc, err := time.LoadLocation("Asia/Muscat")
	if err != nil {
		// Fallback to FixedZone if LoadLocation fails
		loc = time.FixedZone("GST", 4*3600)
	}

	now := time.Now().In(loc)

	// Default: today (midnight to next midnight in local time)
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	endDate := startDate.AddDate(0, 0, 1)

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		startDate = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		// Make end_date exclusive by adding 1 day
		endDate = t.AddDate(0, 0, 1)
	}

	if !startDate.Before(endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be before end_date")
	}

	return startDate, endDate, nil
}
