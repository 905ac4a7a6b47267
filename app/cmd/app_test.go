package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/Rakhulsr/go-cosmetics/app/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type captureMailer struct {
	mu       sync.Mutex
	subjects []string
}

func (m *captureMailer) SendHTMLEmail(_, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	return nil
}

type stubGateway struct{}

func (stubGateway) CreateOrder(_ context.Context, amountMinor int64, receipt string) (*services.GatewayOrder, error) {
	return &services.GatewayOrder{ID: "order_stub", Amount: amountMinor, Currency: services.GatewayCurrency, Receipt: receipt}, nil
}

func (stubGateway) VerifySignature(_, _, signature string) bool { return signature == "good" }

func (stubGateway) KeyID() string { return "rzp_test_stub" }

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	app    *App
	otps   *services.MemoryOTPStore
	mailer *captureMailer
	srv    *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	decimal.MarshalJSONWithoutQuotes = true

	db := testutil.NewDB(t)
	otps := services.NewMemoryOTPStore()
	mailer := &captureMailer{}
	app := NewApp(db, Options{
		JWTSecret: "app-test-secret",
		Mailer:    mailer,
		Gateway:   stubGateway{},
		OTPStore:  otps,
		UploadDir: t.TempDir(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	app.Start(ctx)
	srv := httptest.NewServer(app.Handler)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return &testServer{t: t, db: db, app: app, otps: otps, mailer: mailer, srv: srv}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(s.t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (s *testServer) tokenFor(u *models.User) string {
	s.t.Helper()
	tok, err := s.app.Tokens.Generate(u)
	require.NoError(s.t, err)
	return tok
}

func TestHealthAndDatabaseCheck(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do("GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])

	status, _ = s.do("GET", "/api/test-db", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProductListShape(t *testing.T) {
	s := newTestServer(t)
	cat := testutil.CreateCategory(t, s.db, "Serums", nil)
	testutil.CreateProduct(t, s.db, "Glow Serum", 450, 5, cat)

	status, body := s.do("GET", "/api/products", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["total"])

	products := body["products"].([]interface{})
	require.Len(t, products, 1)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Glow Serum", first["name"])
	assert.EqualValues(t, 450, first["price"])
	assert.Equal(t, "Serums", first["category"])
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do("GET", "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", body["error"])

	status, body = s.do("GET", "/api/cart", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestAdminRoutesNeedAdminRole(t *testing.T) {
	s := newTestServer(t)
	customer := testutil.CreateUser(t, s.db, "Asha", "asha@example.com")

	status, body := s.do("GET", "/api/admin/stats", s.tokenFor(customer), nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Admin access required", body["error"])

	status, _ = s.do("POST", "/api/products", s.tokenFor(customer), map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusForbidden, status)

	admin := &models.User{Name: "Root", Email: "root@example.com", Password: "x", Role: models.RoleAdmin, IsVerified: true}
	require.NoError(t, s.db.Create(admin).Error)
	status, _ = s.do("GET", "/api/admin/stats", s.tokenFor(admin), nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCartClearIsNotTreatedAsItemID(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "Asha", "asha@example.com")
	product := testutil.CreateProduct(t, s.db, "Lip Tint", 300, 10, nil)
	token := s.tokenFor(user)

	status, _ := s.do("POST", "/api/cart", token, map[string]interface{}{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do("DELETE", "/api/cart/clear", token, nil)
	assert.Equal(t, http.StatusOK, status)

	var count int64
	require.NoError(t, s.db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSignupThenLogin(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do("POST", "/api/auth/request-signup-otp", "", map[string]string{"email": "Neha@Example.com"})
	require.Equal(t, http.StatusOK, status, body)

	entry, err := s.otps.Get(context.Background(), "neha@example.com")
	require.NoError(t, err)
	require.NotNil(t, entry)

	status, body = s.do("POST", "/api/auth/verify-signup-otp", "", map[string]string{
		"email": "neha@example.com", "otp": entry.OTP, "name": "Neha", "password": "password123",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.NotEmpty(t, body["token"])

	status, body = s.do("POST", "/api/auth/login", "", map[string]string{"email": "neha@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, status, body)
	token := body["token"].(string)

	status, body = s.do("GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Neha", body["name"])

	status, _ = s.do("POST", "/api/auth/login", "", map[string]string{"email": "neha@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOrderNeedsCompleteShippingAddress(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "Asha", "asha@example.com")
	product := testutil.CreateProduct(t, s.db, "Lip Tint", 300, 10, nil)

	status, body := s.do("POST", "/api/orders", s.tokenFor(user), map[string]interface{}{
		"payment_method":   models.PaymentMethodCOD,
		"shipping_address": map[string]string{"full_name": "Asha", "phone_number": "9876543210"},
		"items":            []map[string]interface{}{{"product_id": product.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusBadRequest, status, body)
	assert.Equal(t, "Validation failed", body["error"])
	fields := body["fields"].(map[string]interface{})
	for _, name := range []string{"address_line1", "city", "state", "postal_code"} {
		assert.Contains(t, fields, name)
	}

	var count int64
	require.NoError(t, s.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do("GET", "/api/health", "", nil)

	resp, err := http.Get(s.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "/api/health")
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, splitOrigins(" https://a.test, ,https://b.test "))
	assert.Nil(t, splitOrigins(""))
}
