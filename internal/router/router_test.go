package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartwash/internal/config"
	"smartwash/internal/db"
	apperrors "smartwash/internal/errors"
	"smartwash/internal/handler"
	"smartwash/internal/model"
	"smartwash/internal/repository"
	"smartwash/internal/router"
	"smartwash/internal/service"
	"smartwash/internal/session"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[string]session.Identity
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]session.Identity)}
}

func (s *memStore) Save(_ context.Context, sessionID string, ident session.Identity, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = ident
	return nil
}

func (s *memStore) Get(_ context.Context, sessionID string) (*session.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ident, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return &ident, nil
}

func (s *memStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

type testApp struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&model.User{}, &model.Order{}))
	require.NoError(t, db.EnsureDefaultAdmin(gdb))

	cfg := &config.Config{SessionSecret: "test-secret"}
	store := newMemStore()
	sessions := session.NewManager(cfg.SessionSecret, store)

	userRepo := repository.NewUserRepository(gdb)
	orderRepo := repository.NewOrderRepository(gdb)
	authService := service.NewAuthService(userRepo, sessions)
	orderService := service.NewOrderService(orderRepo)

	e := echo.New()
	router.Register(e, cfg, store,
		handler.NewAuthHandler(authService),
		handler.NewDashboardHandler(orderService),
		handler.NewAdminHandler(orderService),
	)
	return &testApp{e: e, db: gdb}
}

func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func (a *testApp) login(t *testing.T, email, password, wantLocation string) *http.Cookie {
	t.Helper()
	rec := a.postForm("/login", url.Values{"email": {email}, "password": {password}}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, wantLocation, rec.Header().Get(echo.HeaderLocation))
	return sessionCookie(t, rec)
}

type dashboardView struct {
	Name   string `json:"name"`
	Orders []struct {
		ID         uint   `json:"id"`
		Service    string `json:"service"`
		Quantity   int    `json:"quantity"`
		TotalPrice string `json:"total_price"`
		Status     string `json:"status"`
	} `json:"orders"`
	PaymentAllowed bool `json:"payment_allowed"`
}

type adminView struct {
	Orders []struct {
		ID           uint   `json:"id"`
		Service      string `json:"service"`
		Status       string `json:"status"`
		CustomerName string `json:"customer_name"`
	} `json:"orders"`
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/dashboard", "/admin", "/"} {
		rec := app.get(path, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation), path)
	}

	// A forged cookie is treated like no cookie at all.
	rec := app.get("/dashboard", &http.Cookie{Name: session.CookieName, Value: "garbage"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"name": {"Alice"}, "email": {"a@x.com"}, "password": {"pw"}}
	rec := app.postForm("/register", form, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	// Registering the same email again leaves one row and reports the conflict.
	rec = app.postForm("/register", form, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var count int64
	require.NoError(t, app.db.Model(&model.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	rec = app.postForm("/login", url.Values{"email": {"a@x.com"}, "password": {"nope"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := app.login(t, "a@x.com", "pw", "/dashboard")

	rec = app.get("/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var view dashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Alice", view.Name)
	assert.Empty(t, view.Orders)
	assert.False(t, view.PaymentAllowed)

	// The admin login lands on the admin console.
	app.login(t, db.DefaultAdminEmail, db.DefaultAdminPassword, "/admin")
}

func TestOrderLifecycle(t *testing.T) {
	app := newTestApp(t)

	app.postForm("/register", url.Values{"name": {"Alice"}, "email": {"a@x.com"}, "password": {"pw"}}, nil)
	userCookie := app.login(t, "a@x.com", "pw", "/dashboard")

	// Place an order; the response already lists it.
	rec := app.postForm("/dashboard", url.Values{"service": {"Wash"}, "quantity": {"2"}}, userCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var view dashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Orders, 1)
	assert.Equal(t, "Wash", view.Orders[0].Service)
	assert.Equal(t, 2, view.Orders[0].Quantity)
	assert.Equal(t, "100", view.Orders[0].TotalPrice)
	assert.Equal(t, model.StatusPending, view.Orders[0].Status)
	assert.False(t, view.PaymentAllowed)
	orderID := view.Orders[0].ID

	// Malformed quantity is rejected, no order created.
	rec = app.postForm("/dashboard", url.Values{"service": {"Wash"}, "quantity": {"two"}}, userCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = app.postForm("/dashboard", url.Values{"service": {"Wash"}, "quantity": {"0"}}, userCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A regular user cannot reach the admin console or mutate statuses.
	rec = app.get("/admin", userCookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	rec = app.postForm("/admin", url.Values{"order_id": {fmt.Sprint(orderID)}, "status": {"Hacked"}}, userCookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	var stored model.Order
	require.NoError(t, app.db.First(&stored, orderID).Error)
	assert.Equal(t, model.StatusPending, stored.Status)

	// The admin sees the order with its owner's name and completes it.
	adminCookie := app.login(t, db.DefaultAdminEmail, db.DefaultAdminPassword, "/admin")

	// The admin has no user dashboard.
	rec = app.get("/dashboard", adminCookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = app.get("/admin", adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var console adminView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &console))
	require.Len(t, console.Orders, 1)
	assert.Equal(t, "Alice", console.Orders[0].CustomerName)

	rec = app.postForm("/admin", url.Values{"order_id": {fmt.Sprint(orderID)}, "status": {"Completed"}}, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &console))
	require.Len(t, console.Orders, 1)
	assert.Equal(t, model.StatusCompleted, console.Orders[0].Status)

	// Re-submitting the current status succeeds rather than 404ing.
	rec = app.postForm("/admin", url.Values{"order_id": {fmt.Sprint(orderID)}, "status": {"Completed"}}, adminCookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Unknown and malformed order ids.
	rec = app.postForm("/admin", url.Values{"order_id": {"9999"}, "status": {"Completed"}}, adminCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.postForm("/admin", url.Values{"order_id": {"first"}, "status": {"Completed"}}, adminCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The completed order unlocks payment on the user's dashboard.
	rec = app.get("/dashboard", userCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.True(t, view.PaymentAllowed)

	// Logout revokes the session even though the cookie token is still signed.
	rec = app.get("/logout", userCookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	rec = app.get("/dashboard", userCookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}
