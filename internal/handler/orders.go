package handler

import (
	"context"
	"encoding/json"
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
	"github.com/mazoon-pos/api/internal/store"
	"github.com/mazoon-pos/api/internal/ws"
)

// OrderStore defines the store methods needed by order handlers.
// Satisfied by *store.Store; narrow interface for testability.
type OrderStore interface {
	CreateOrder(ctx context.Context, order model.Order) (model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error)
	ListOrders(ctx context.Context, f store.OrderFilter) ([]model.Order, error)
	UpdateOrder(ctx context.Context, order model.Order) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, oldStatus, newStatus string) (model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

// Broadcaster pushes order events to connected dashboard clients.
// Satisfied by *ws.Hub; narrow interface for testability.
type Broadcaster interface {
	Broadcast(event ws.Event)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	store OrderStore
	hub   Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, hub Broadcaster) *OrderHandler {
	return &OrderHandler{store: store, hub: hub}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted inside an authenticated subrouter: /orders.
// Cook status changes only flow through PATCH /{id}/status so the
// transition rules cannot be bypassed by a plain edit.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.With(middleware.RequireRole(enum.UserRoleStaff, enum.UserRoleReception)).Post("/", h.Create)
	r.With(middleware.RequireRole(enum.UserRoleStaff, enum.UserRoleReception)).Put("/{id}", h.Update)
	r.With(middleware.RequireRole(enum.UserRoleKitchen, enum.UserRoleStaff)).Patch("/{id}/status", h.UpdateStatus)
	r.With(middleware.RequireRole(enum.UserRoleAdmin)).Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type createOrderRequest struct {
	ReceiptNo      string `json:"receipt_no"`
	CustomerName   string `json:"customer_name"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	OrderDetails   string `json:"order_details"`
	DeliveryType   string `json:"delivery_type"`
	PaymentType    string `json:"payment_type"`
	Total          string `json:"total"`
	AdvancePayment string `json:"advance_payment"`
	BalanceDue     string `json:"balance_due"`
	Discount       string `json:"discount"`
	Paid           bool   `json:"paid"`
	Date           string `json:"date"`
	Time           string `json:"time"`
}

type updateOrderRequest struct {
	ReceiptNo      string `json:"receipt_no"`
	CustomerName   string `json:"customer_name"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	OrderDetails   string `json:"order_details"`
	DeliveryType   string `json:"delivery_type"`
	PaymentType    string `json:"payment_type"`
	Total          string `json:"total"`
	AdvancePayment string `json:"advance_payment"`
	BalanceDue     string `json:"balance_due"`
	Discount       string `json:"discount"`
	Paid           bool   `json:"paid"`
	Date           string `json:"date"`
	Time           string `json:"time"`
}

type updateStatusRequest struct {
	CookStatus string `json:"cook_status"`
}

type orderListResponse struct {
	Orders []model.Order `json:"orders"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// --- Handlers ---

// Create handles POST /orders. New orders always start PENDING.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.CustomerName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_name is required"})
		return
	}
	if req.DeliveryType != "" && !enum.ValidDeliveryType(req.DeliveryType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid delivery_type"})
		return
	}
	if req.PaymentType != "" && !enum.ValidPaymentType(req.PaymentType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payment_type"})
		return
	}

	order, err := h.store.CreateOrder(r.Context(), model.Order{
		ReceiptNo:      req.ReceiptNo,
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		Location:       req.Location,
		OrderDetails:   req.OrderDetails,
		DeliveryType:   req.DeliveryType,
		PaymentType:    req.PaymentType,
		Total:          req.Total,
		AdvancePayment: req.AdvancePayment,
		BalanceDue:     req.BalanceDue,
		Discount:       req.Discount,
		Paid:           req.Paid,
		CookStatus:     enum.CookStatusPending,
		Date:           req.Date,
		Time:           req.Time,
		CreatedBy:      claims.UserID,
	})
	if err != nil {
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastOrder(ws.EventOrderCreated, order)
	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	// Parse pagination
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	filter := store.OrderFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
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
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: orders,
		Limit:  limit,
		Offset: offset,
	})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Update handles PUT /orders/{id}. It replaces the editable fields and
// preserves the current cook status.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.CustomerName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_name is required"})
		return
	}
	if req.DeliveryType != "" && !enum.ValidDeliveryType(req.DeliveryType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid delivery_type"})
		return
	}
	if req.PaymentType != "" && !enum.ValidPaymentType(req.PaymentType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payment_type"})
		return
	}

	current, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order for update: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	updated := current
	updated.ReceiptNo = req.ReceiptNo
	updated.CustomerName = req.CustomerName
	updated.Phone = req.Phone
	updated.Location = req.Location
	updated.OrderDetails = req.OrderDetails
	updated.DeliveryType = req.DeliveryType
	updated.PaymentType = req.PaymentType
	updated.Total = req.Total
	updated.AdvancePayment = req.AdvancePayment
	updated.BalanceDue = req.BalanceDue
	updated.Discount = req.Discount
	updated.Paid = req.Paid
	updated.Date = req.Date
	updated.Time = req.Time

	order, err := h.store.UpdateOrder(r.Context(), updated)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: update order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastOrder(ws.EventOrderUpdated, order)
	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if !enum.ValidCookStatus(req.CookStatus) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cook_status"})
		return
	}

	current, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order for status update: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := validateStatusTransition(current.CookStatus, req.CookStatus); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	order, err := h.store.UpdateOrderStatus(r.Context(), orderID, current.CookStatus, req.CookStatus)
	if err != nil {
		if errors.Is(err, store.ErrStaleStatus) {
			// Status changed between our read and write (race with another screen)
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order status changed, please retry"})
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastOrder(ws.EventOrderStatus, order)
	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	if err := h.store.DeleteOrder(r.Context(), orderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: delete order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastOrder(ws.EventOrderDeleted, model.Order{ID: orderID})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *OrderHandler) broadcastOrder(eventType string, order model.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		log.Printf("ERROR: marshal %s event: %v", eventType, err)
		return
	}
	h.hub.Broadcast(ws.Event{Type: eventType, Payload: payload})
}

// allowedTransitions defines valid cook status transitions.
// Key is current status, value is the set of statuses it can move to.
// Any state before COMPLETED may jump straight to COMPLETED.
var allowedTransitions = map[string][]string{
	enum.CookStatusPending:   {enum.CookStatusPreparing, enum.CookStatusCompleted},
	enum.CookStatusPreparing: {enum.CookStatusReady, enum.CookStatusCompleted},
	enum.CookStatusReady:     {enum.CookStatusDelivered, enum.CookStatusCompleted},
	enum.CookStatusDelivered: {enum.CookStatusCompleted},
}

// validateStatusTransition checks if the transition from current to next is allowed.
func validateStatusTransition(current, next string) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("cannot transition from %s", current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("cannot transition from %s to %s", current, next)
}
