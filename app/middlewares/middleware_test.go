package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/Rakhulsr/go-cosmetics/app/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	helpers.RespondJSON(w, http.StatusOK, map[string]string{"user_id": helpers.UserIDFromRequest(r)})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := helpers.NewTokenManager("mw-secret")
	h := AuthMiddleware(tokens)(http.HandlerFunc(echoUser))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())

	token, err := tokens.Generate(&models.User{ID: "u-7", Role: models.RoleCustomer})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"u-7"}`, rec.Body.String())
}

func TestAdminAuthMiddleware(t *testing.T) {
	db := testutil.NewDB(t)
	tokens := helpers.NewTokenManager("mw-secret")
	users := repositories.NewUserRepository(db)
	h := AuthMiddleware(tokens)(AdminAuthMiddleware(users)(http.HandlerFunc(echoUser)))

	customer := testutil.CreateUser(t, db, "Cust", "cust@example.com")
	admin := testutil.CreateUser(t, db, "Boss", "boss@example.com")
	require.NoError(t, db.Model(admin).Update("role", models.RoleAdmin).Error)
	admin.Role = models.RoleAdmin

	call := func(u *models.User) *httptest.ResponseRecorder {
		token, err := tokens.Generate(u)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := call(customer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, call(admin).Code)

	// A forged admin claim for a customer account is still refused.
	forged := *customer
	forged.Role = models.RoleAdmin
	assert.Equal(t, http.StatusForbidden, call(&forged).Code)
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, rec.Body.String())
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://shop.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://shop.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://shop.test", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
