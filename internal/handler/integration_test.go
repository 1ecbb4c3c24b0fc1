package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/mazoon-pos/api/internal/config"
	"github.com/mazoon-pos/api/internal/enum"
	"github.com/mazoon-pos/api/internal/model"
	"github.com/mazoon-pos/api/internal/pdf"
	"github.com/mazoon-pos/api/internal/router"
	"github.com/mazoon-pos/api/internal/store"
	"github.com/mazoon-pos/api/internal/ws"
)

// TestIntegrationFlow exercises the full API lifecycle through the
// router against the in-memory store: seed admin, staff management,
// order entry, kitchen status updates, live events, KPIs, and the PDF
// exports.
func TestIntegrationFlow(t *testing.T) {
	cfg := &config.Config{
		Port:           "8081",
		JWTSecret:      "integration-test-secret",
		RestaurantName: "Mazoon Grill",
		CurrencyCode:   "OMR",
		AllowedOrigins: []string{"http://localhost:5173"},
	}

	st := store.New()
	seedIntegrationAdmin(t, st)

	hub := ws.NewHub()
	// NOTE: hub.Run() goroutine leaks on test exit -- the Hub has no
	// shutdown mechanism. Acceptable for tests.
	go hub.Run()

	renderer := pdf.NewRenderer(pdf.DefaultFontRegistry(), pdf.DefaultLogo(), cfg.RestaurantName, cfg.CurrencyCode)
	server := httptest.NewServer(router.New(cfg, st, hub, renderer))
	defer server.Close()

	// --- 1. Login as the seeded admin ---
	adminToken := login(t, server, "admin@mazoon.om", "admin123")

	// --- 2. Create a reception account through the API ---
	userResp := httpPostJSON(t, server, "/users", map[string]interface{}{
		"email":    "huda@mazoon.om",
		"password": "password123",
		"name":     "Huda",
		"role":     enum.UserRoleReception,
	}, adminToken)
	if userResp["role"] != enum.UserRoleReception {
		t.Fatalf("created user role: got %v, want %s", userResp["role"], enum.UserRoleReception)
	}

	// --- 3. Login with the new account ---
	receptionToken := login(t, server, "huda@mazoon.om", "password123")

	// --- 4. Subscribe to live order events ---
	conn := dialOrderSocket(t, server, adminToken)
	defer conn.Close()
	waitForSubscriber(t, hub)

	// --- 5. Reception enters an order ---
	orderResp := httpPostJSON(t, server, "/orders", map[string]interface{}{
		"receipt_no":      "R-1042",
		"customer_name":   "Salim Al Busaidi",
		"phone":           "91234567",
		"location":        "Al Khuwair",
		"order_details":   "2x Shuwa, 1x Lemon Mint",
		"delivery_type":   enum.DeliveryTypePickup,
		"payment_type":    enum.PaymentTypeCash,
		"total":           "18.750",
		"advance_payment": "5.000",
		"balance_due":     "13.750",
	}, receptionToken)
	orderID := uuid.MustParse(orderResp["id"].(string))
	if orderResp["cook_status"] != enum.CookStatusPending {
		t.Fatalf("new order cook_status: got %v, want %s", orderResp["cook_status"], enum.CookStatusPending)
	}

	ev := readEvent(t, conn)
	if ev.Type != ws.EventOrderCreated {
		t.Fatalf("event type: got %s, want %s", ev.Type, ws.EventOrderCreated)
	}

	// --- 6. The dashboard list finds it ---
	listResp := httpGetJSON(t, server, "/orders?search=salim", receptionToken)
	orders, ok := listResp["orders"].([]interface{})
	if !ok || len(orders) != 1 {
		t.Fatalf("order list: got %v, want 1 order", listResp["orders"])
	}

	// --- 7. The kitchen starts cooking ---
	statusResp := httpPatchJSON(t, server, "/orders/"+orderID.String()+"/status", map[string]interface{}{
		"cook_status": enum.CookStatusPreparing,
	}, adminToken)
	if statusResp["cook_status"] != enum.CookStatusPreparing {
		t.Fatalf("cook_status: got %v, want %s", statusResp["cook_status"], enum.CookStatusPreparing)
	}

	ev = readEvent(t, conn)
	if ev.Type != ws.EventOrderStatus {
		t.Fatalf("event type: got %s, want %s", ev.Type, ws.EventOrderStatus)
	}

	// --- 8. An illegal jump is rejected ---
	rr := httpDo(t, server, http.MethodPatch, "/orders/"+orderID.String()+"/status", map[string]interface{}{
		"cook_status": enum.CookStatusDelivered,
	}, adminToken)
	if rr.StatusCode != http.StatusConflict {
		t.Fatalf("illegal transition: got %d, want %d", rr.StatusCode, http.StatusConflict)
	}
	rr.Body.Close()

	// --- 9. KPIs cover the new order ---
	kpiResp := httpGetJSON(t, server, "/kpis", adminToken)
	if kpiResp["total_orders"].(float64) != 1 {
		t.Fatalf("kpi total_orders: got %v, want 1", kpiResp["total_orders"])
	}
	if kpiResp["total_revenue"] != "18.750" {
		t.Fatalf("kpi total_revenue: got %v, want 18.750", kpiResp["total_revenue"])
	}

	// --- 10. Report and receipt PDFs stream ---
	report := httpGetPDF(t, server, "/exports/orders.pdf?title=Daily+Sales", adminToken)
	if !bytes.HasPrefix(report, []byte("%PDF")) {
		t.Fatal("report export is not a PDF")
	}
	receipt := httpGetPDF(t, server, "/orders/"+orderID.String()+"/receipt.pdf?lang=ar", adminToken)
	if !bytes.HasPrefix(receipt, []byte("%PDF")) {
		t.Fatal("receipt export is not a PDF")
	}

	// --- 11. Translations and health need no auth ---
	dict := httpGetJSON(t, server, "/i18n/ar", "")
	if dict["no_orders"] == "" || dict["no_orders"] == nil {
		t.Fatal("arabic dictionary missing no_orders")
	}
	health := httpGetJSON(t, server, "/health", "")
	if health["status"] != "ok" {
		t.Fatalf("health status: got %v, want ok", health["status"])
	}

	// --- 12. Admin removes the order ---
	rr = httpDo(t, server, http.MethodDelete, "/orders/"+orderID.String(), nil, adminToken)
	if rr.StatusCode != http.StatusOK {
		t.Fatalf("delete order: got %d, want %d", rr.StatusCode, http.StatusOK)
	}
	rr.Body.Close()

	ev = readEvent(t, conn)
	if ev.Type != ws.EventOrderDeleted {
		t.Fatalf("event type: got %s, want %s", ev.Type, ws.EventOrderDeleted)
	}

	rr = httpDo(t, server, http.MethodGet, "/orders/"+orderID.String(), nil, adminToken)
	if rr.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted order: got %d, want %d", rr.StatusCode, http.StatusNotFound)
	}
	rr.Body.Close()
}

// --- Setup helpers ---

func seedIntegrationAdmin(t *testing.T, st *store.Store) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = st.CreateUser(context.Background(), model.User{
		Email:        "admin@mazoon.om",
		PasswordHash: string(hashed),
		Name:         "Administrator",
		Role:         enum.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func login(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()
	resp := httpPostJSON(t, server, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	token, ok := resp["access_token"].(string)
	if !ok || token == "" {
		t.Fatalf("login failed: no access_token in response: %+v", resp)
	}
	return token
}

func dialOrderSocket(t *testing.T, server *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/orders?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	return conn
}

// waitForSubscriber blocks until the hub has registered the dialed
// connection, so no broadcast can slip out before it.
func waitForSubscriber(t *testing.T, hub *ws.Hub) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if hub.ClientCount() > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("websocket client never registered")
}

func readEvent(t *testing.T, conn *websocket.Conn) ws.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev ws.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return ev
}

// --- HTTP helpers ---

func httpDo(t *testing.T, server *httptest.Server, method, path string, body map[string]interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func httpJSON(t *testing.T, server *httptest.Server, method, path string, body map[string]interface{}, token string) map[string]interface{} {
	t.Helper()
	resp := httpDo(t, server, method, path, body, token)
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		t.Fatalf("%s %s: status %d, body: %v", method, path, resp.StatusCode, errResp)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return result
}

func httpPostJSON(t *testing.T, server *httptest.Server, path string, body map[string]interface{}, token string) map[string]interface{} {
	t.Helper()
	return httpJSON(t, server, http.MethodPost, path, body, token)
}

func httpPatchJSON(t *testing.T, server *httptest.Server, path string, body map[string]interface{}, token string) map[string]interface{} {
	t.Helper()
	return httpJSON(t, server, http.MethodPatch, path, body, token)
}

func httpGetJSON(t *testing.T, server *httptest.Server, path string, token string) map[string]interface{} {
	t.Helper()
	return httpJSON(t, server, http.MethodGet, path, nil, token)
}

func httpGetPDF(t *testing.T, server *httptest.Server, path string, token string) []byte {
	t.Helper()
	resp := httpDo(t, server, http.MethodGet, path, nil, token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("GET %s: content type %s", path, ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return data
}
