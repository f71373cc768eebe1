package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electrotrack/internal/config"
	"electrotrack/internal/infrastructure/cache"
	"electrotrack/internal/infrastructure/messaging"
	"electrotrack/internal/metrics"
	"electrotrack/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details []string        `json:"details"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (a *apiClient) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (a *apiClient) as(token string) *apiClient {
	return &apiClient{t: a.t, router: a.router, token: token}
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:       config.JWTConfig{Secret: "router-test-secret", ExpiryHours: 1},
		RateLimit: config.RateLimitConfig{GeneralRPS: 1000, GeneralBurst: 1000},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		},
	}
	deps := Dependencies{
		Config:    cfg,
		DB:        testutil.NewDB(t),
		Cache:     cache.Noop{},
		Publisher: messaging.Noop{},
		Metrics:   metrics.New(),
	}
	services := NewServices(deps)

	created, err := services.Users.BootstrapAdmin(context.Background(), config.AdminConfig{
		Username: "admin", Password: "admin12345", FullName: "Administrador",
	})
	require.NoError(t, err)
	require.True(t, created)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &apiClient{t: t, router: SetupRoutes(ctx, deps, services)}
}

func (a *apiClient) login(username, password string) string {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/auth/login", map[string]string{"username": username, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, env.Error)
	auth := decode[struct {
		AccessToken string `json:"accessToken"`
	}](a.t, env)
	return auth.AccessToken
}

type idOnly struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "electrotrack_http_request_duration_seconds")
}

func TestAuthorization(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodGet, "/api/loans", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := api.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	admin := api.as(api.login("admin", "admin12345"))
	w, env = admin.do(http.MethodPost, "/api/users", map[string]string{
		"username": "lector", "fullName": "Solo Lectura", "password": "lectura2024", "role": "viewer",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)

	viewer := api.as(api.login("lector", "lectura2024"))
	w, _ = viewer.do(http.MethodGet, "/api/equipment", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = viewer.do(http.MethodPost, "/api/equipment", map[string]string{"serialNumber": "SN-1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = viewer.do(http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = viewer.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lector", decode[struct {
		Username string `json:"username"`
	}](t, env).Username)

	me := decode[idOnly](t, func() envelope { _, e := admin.do(http.MethodGet, "/api/auth/me", nil); return e }())
	w, _ = admin.do(http.MethodDelete, "/api/users/"+me.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoanLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	admin := api.as(api.login("admin", "admin12345"))

	w, env := admin.do(http.MethodPost, "/api/equipment", map[string]interface{}{
		"serialNumber": "SN-HTTP-1",
		"category":     "Laptop",
		"brand":        "Dell",
		"model":        "Latitude 5420",
		"condition":    "Excelente",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	laptop := decode[idOnly](t, env)

	w, env = admin.do(http.MethodPost, "/api/chips", map[string]interface{}{"iccid": "8988169312345678901"})
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	chip := decode[idOnly](t, env)

	loanBody := map[string]interface{}{
		"loanDate":           "2024-06-01",
		"solicitante":        map[string]string{"fullName": "Ana Quispe", "nationalId": "4455667"},
		"entregaResponsable": map[string]string{"fullName": "Luis Mamani"},
		"mission":            map[string]string{"destination": "Oruro", "plannedReturnDate": "2024-06-15"},
		"signatures":         map[string]string{"requester": "data:image/png;base64,iVBORw0KGgo="},
		"liabilityAccepted":  true,
		"items": []map[string]interface{}{
			{"equipmentId": laptop.ID, "chipId": chip.ID, "exitCondition": "Excelente", "accessories": []string{"Cargador"}},
		},
	}
	w, env = admin.do(http.MethodPost, "/api/loans", loanBody)
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	created := decode[struct {
		ID        string `json:"id"`
		OrderID   string `json:"orderId"`
		Status    string `json:"status"`
		IsOverdue bool   `json:"isOverdue"`
	}](t, env)
	assert.Equal(t, "active", created.Status)
	assert.NotEmpty(t, created.OrderID)
	assert.True(t, created.IsOverdue)

	w, env = admin.do(http.MethodGet, "/api/equipment/"+laptop.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Loaned", decode[idOnly](t, env).Status)

	w, _ = admin.do(http.MethodPost, "/api/loans", loanBody)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = admin.do(http.MethodDelete, "/api/equipment/"+laptop.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	mismatch := map[string]interface{}{}
	for k, v := range loanBody {
		mismatch[k] = v
	}
	mismatch["id"] = chip.ID
	w, _ = admin.do(http.MethodPut, "/api/loans/"+created.ID, mismatch)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = admin.do(http.MethodPut, "/api/loans/"+created.ID, loanBody)
	assert.Equal(t, http.StatusBadRequest, w.Code, "edit without body id")

	w, env = admin.do(http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[struct {
		Loans struct {
			Active  int `json:"active"`
			Overdue int `json:"overdue"`
		} `json:"loans"`
	}](t, env)
	assert.Equal(t, 1, stats.Loans.Active)
	assert.Equal(t, 1, stats.Loans.Overdue)

	w, env = admin.do(http.MethodPut, "/api/loans/"+created.ID+"/return", map[string]interface{}{
		"items": []map[string]interface{}{
			{"equipmentId": laptop.ID, "isDeviceReturned": true, "isChipReturned": true, "returnCondition": "Bueno"},
		},
		"returnInfo": map[string]string{"returnDate": "2024-06-14", "receivedBy": "Luis Mamani"},
	})
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	returned := decode[struct {
		Outcome string `json:"outcome"`
		Loan    idOnly `json:"loan"`
	}](t, env)
	assert.Equal(t, "complete", returned.Outcome)
	assert.Equal(t, "returned", returned.Loan.Status)

	w, env = admin.do(http.MethodGet, "/api/chips/"+chip.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Available", decode[idOnly](t, env).Status)

	w, _ = admin.do(http.MethodPost, "/api/loans/"+created.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = admin.do(http.MethodGet, "/api/equipment/"+laptop.ID+"/loans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]idOnly](t, env), 1)

	w, env = admin.do(http.MethodGet, "/api/audit?entity=loan&entityId="+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	entries := decode[struct {
		Total int `json:"total"`
	}](t, env)
	assert.Equal(t, 2, entries.Total)

	w, _ = admin.do(http.MethodGet, "/api/loans/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = admin.do(http.MethodGet, "/api/loans/"+laptop.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(http.MethodGet, "/metrics", nil)
	assert.Contains(t, w.Body.String(), `electrotrack_loan_operations_total{operation="create",outcome="success"} 1`)
}

func TestValidationErrorsCarryDetails(t *testing.T) {
	api := newTestAPI(t)
	admin := api.as(api.login("admin", "admin12345"))

	w, env := admin.do(http.MethodPost, "/api/equipment", map[string]interface{}{
		"serialNumber": "SN-BAD",
		"category":     "Laptop",
		"condition":    "Roto",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	require.NotEmpty(t, env.Details)
	assert.Contains(t, env.Details[0], "Condition")
}
