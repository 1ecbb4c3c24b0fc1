package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mazoon-pos/api/internal/enum"
	"github.com/mazoon-pos/api/internal/handler"
	"github.com/mazoon-pos/api/internal/middleware"
	"github.com/mazoon-pos/api/internal/model"
	"github.com/mazoon-pos/api/internal/pdf"
	"github.com/mazoon-pos/api/internal/store"
)

// The export tests run the real renderer; only the store is mocked.
// The embedded registry carries no fonts in the repository, which is
// exactly the degraded-but-valid mode the renderer guarantees.
func setupExportRouter(st *mockOrderStore) *chi.Mux {
	h := handler.NewExportHandler(st, pdf.DefaultRenderer())
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(testJWTSecret))
	r.Route("/exports", h.RegisterRoutes)
	r.Route("/orders", func(r chi.Router) {
		r.Get("/{id}/receipt.pdf", h.Receipt)
	})
	return r
}

func TestExportReport_StreamsPDF(t *testing.T) {
	st := &mockOrderStore{
		listOrdersFn: func(ctx context.Context, f store.OrderFilter) ([]model.Order, error) {
			return []model.Order{
				testStoredOrder(enum.CookStatusPending),
				testStoredOrder(enum.CookStatusReady),
			}, nil
		},
	}
	router := setupExportRouter(st)

	rr := doAuthRequest(t, router, http.MethodGet, "/exports/orders.pdf?title=Daily+Sales&summary=true", nil, receptionClaims())

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type: got %q", ct)
	}
	cd := rr.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="daily-sales-`) || !strings.HasSuffix(cd, `.pdf"`) {
		t.Errorf("content disposition: got %q", cd)
	}
	if !strings.HasPrefix(rr.Body.String(), "%PDF") {
		t.Errorf("body does not start with %%PDF")
	}
}

func TestExportReport_DataURI(t *testing.T) {
	st := &mockOrderStore{
		listOrdersFn: func(ctx context.Context, f store.OrderFilter) ([]model.Order, error) {
			return []model.Order{testStoredOrder(enum.CookStatusPending)}, nil
		},
	}
	router := setupExportRouter(st)

	rr := doAuthRequest(t, router, http.MethodGet, "/exports/orders.pdf?format=datauri", nil, receptionClaims())

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp["data_uri"], "data:application/pdf;base64,") {
		t.Errorf("data_uri prefix: got %.40q", resp["data_uri"])
	}
	if !strings.HasSuffix(resp["file_name"], ".pdf") {
		t.Errorf("file_name: got %q", resp["file_name"])
	}
}

func TestExportReport_FilterPassthrough(t *testing.T) {
	var captured store.OrderFilter
	st := &mockOrderStore{
		listOrdersFn: func(ctx context.Context, f store.OrderFilter) ([]model.Order, error) {
			captured = f
			return []model.Order{}, nil
		},
	}
	router := setupExportRouter(st)

	rr := doAuthRequest(t, router, http.MethodGet, "/exports/orders.pdf?status=READY&search=salim", nil, receptionClaims())

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if captured.Status != enum.CookStatusReady || captured.Search != "salim" {
		t.Errorf("filter: got %+v", captured)
	}
	// The export is never paginated
	if captured.Limit != 0 || captured.Offset != 0 {
		t.Errorf("pagination leaked into export: %+v", captured)
	}
}

func TestExportReport_InvalidDate(t *testing.T) {
	router := setupExportRouter(&mockOrderStore{})

	rr := doAuthRequest(t, router, http.MethodGet, "/exports/orders.pdf?end_date=bad", nil, receptionClaims())

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestExportReport_StaffForbidden(t *testing.T) {
	router := setupExportRouter(&mockOrderStore{})

	rr := doAuthRequest(t, router, http.MethodGet, "/exports/orders.pdf", nil, staffClaims())

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestReceiptExport_StreamsPDF(t *testing.T) {
	order := testStoredOrder(enum.CookStatusCompleted)
	st := &mockOrderStore{
		getOrderFn: func(ctx context.Context, id uuid.UUID) (model.Order, error) {
			if id != order.ID {
				return model.Order{}, store.ErrNotFound
			}
			return order, nil
		},
	}
	router := setupExportRouter(st)

	rr := doAuthRequest(t, router, http.MethodGet, "/orders/"+order.ID.String()+"/receipt.pdf", nil, staffClaims())

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}
	if !strings.HasPrefix(rr.Body.String(), "%PDF") {
		t.Errorf("body does not start with %%PDF")
	}
	want := `attachment; filename="receipt-r1042-salim-al-busaidi.pdf"`
	if cd := rr.Header().Get("Content-Disposition"); cd != want {
		t.Errorf("content disposition: got %q, want %q", cd, want)
	}
}

func TestReceiptExport_ArabicLang(t *testing.T) {
	order := testStoredOrder(enum.CookStatusCompleted)
	st := &mockOrderStore{
		getOrderFn: func(ctx context.Context, id uuid.UUID) (model.Order, error) {
			return order, nil
		},
	}
	router := setupExportRouter(st)

	rr := doAuthRequest(t, router, http.MethodGet, "/orders/"+order.ID.String()+"/receipt.pdf?lang=ar", nil, staffClaims())

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}
	if !strings.HasPrefix(rr.Body.String(), "%PDF") {
		t.Errorf("body does not start with %%PDF")
	}
}

func TestReceiptExport_NotFound(t *testing.T) {
	router := setupExportRouter(&mockOrderStore{})

	rr := doAuthRequest(t, router, http.MethodGet, "/orders/"+uuid.NewString()+"/receipt.pdf", nil, staffClaims())

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestReceiptExport_DataURI(t *testing.T) {
	order := testStoredOrder(enum.CookStatusCompleted)
	st := &mockOrderStore{
		getOrderFn: func(ctx context.Context, id uuid.UUID) (model.Order, error) {
			return order, nil
		},
	}
	router := setupExportRouter(st)

	rr := doAuthRequest(t, router, http.MethodGet, "/orders/"+order.ID.String()+"/receipt.pdf?format=datauri", nil, staffClaims())

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp["data_uri"], "data:application/pdf;base64,") {
		t.Errorf("data_uri prefix: got %.40q", resp["data_uri"])
	}
}
