package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mazoon-pos/api/internal/handler"
)

func setupI18nRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Route("/i18n", handler.NewI18nHandler().RegisterRoutes)
	return r
}

func TestI18nLanguages(t *testing.T) {
	router := setupI18nRouter()

	req := httptest.NewRequest(http.MethodGet, "/i18n", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var resp map[string][]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	langs := resp["languages"]
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "ar" {
		t.Errorf("languages: got %v", langs)
	}
}

func TestI18nDictionary(t *testing.T) {
	router := setupI18nRouter()

	req := httptest.NewRequest(http.MethodGet, "/i18n/ar", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var dict map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&dict); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dict["no_orders"] != "لا توجد طلبات للعرض" {
		t.Errorf("no_orders: got %q", dict["no_orders"])
	}
}

func TestI18nDictionary_Unsupported(t *testing.T) {
	router := setupI18nRouter()

	req := httptest.NewRequest(http.MethodGet, "/i18n/fr", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}
