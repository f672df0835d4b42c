package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"detailing/database/repository/memory"
	"detailing/handlers"
	"detailing/models"
	"detailing/services/booking"
	"detailing/services/cart"
	"detailing/services/catalog"
	"detailing/services/storage"
	"detailing/services/user"
	"detailing/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:3000"

type memStorage struct{ n int }

func (s *memStorage) UploadFile(_ context.Context, _ string, folder string) (*storage.UploadResult, error) {
	s.n++
	id := folder + "/asset"
	return &storage.UploadResult{PublicID: id, URL: "https://cdn.example/" + id}, nil
}

func (s *memStorage) DeleteFile(context.Context, string) error { return nil }

type testServer struct {
	router   *gin.Engine
	bookings *memory.BookingRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := &catalog.DefaultCatalogService{Repo: memory.NewCatalogRepo(
		models.Service{ID: "s1", Name: "Wash", Price: 40, Duration: 60},
		models.Service{ID: "s2", Name: "Wax", Price: 60, Duration: 30},
	)}
	carts := &cart.DefaultCartService{Repo: memory.NewCartRepo(), Catalog: cat}
	bookings := memory.NewBookingRepo(models.Booking{ID: "b1", UserID: "someone", Status: models.BookingStatusConfirmed})
	bookingSvc := &booking.DefaultBookingService{
		Repo: bookings, Catalog: cat, Cart: carts,
		TravelBuffer: 30 * time.Minute, Horizon: 30 * 24 * time.Hour,
	}
	pictures := &booking.DefaultPictureService{Repo: bookings, Storage: &memStorage{}}
	users := &user.DefaultUserService{Repo: memory.NewUserRepo(), AdminEmails: []string{"admin@example.com"}}

	hb := handlers.NewHandlerBundle(
		handlers.NewAuthHandler(users, time.Hour, false),
		handlers.NewCartHandler(carts),
		handlers.NewBookingHandler(bookingSvc),
		handlers.NewServicesHandler(cat),
		handlers.NewUploadHandler(pictures),
	)
	r := gin.New()
	r.Use(utils.ErrorHandler())
	RegisterRoutes(r, hb, []string{testOrigin})
	return &testServer{router: r, bookings: bookings}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: utils.TokenCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/users/register", "", models.RegisterRequest{
		Name: "Test", Email: email, Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var session cookieless
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	found := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == utils.TokenCookieName {
			found = true
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie is set")
	return session.Token
}

type cookieless struct {
	Token string `json:"token"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) models.Cart {
	t.Helper()
	var c models.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c), w.Body.String())
	return c
}

func TestCartRoutes(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/cart", "", nil).Code)

	tok := s.register(t, "customer@example.com")

	w := s.do(t, http.MethodGet, "/api/cart", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, mustField(t, w, "services"))

	add := map[string]any{"service": map[string]string{"_id": "s1"}}
	w = s.do(t, http.MethodPost, "/api/cart", tok, add)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decodeCart(t, w).Services, 1)

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/cart", tok, add).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/cart", tok,
		map[string]any{"service": map[string]string{"_id": "nope"}}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/cart", tok, map[string]any{}).Code)

	w = s.do(t, http.MethodDelete, "/api/cart", tok, map[string]string{"_id": "s1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w).Services)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/cart", tok, map[string]string{"_id": "s1"}).Code)

	for i := 0; i < 2; i++ {
		w = s.do(t, http.MethodDelete, "/api/cart/clear", tok, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeCart(t, w).Services)
	}

	past := map[string]any{"selectedDateTime": time.Now().Add(-time.Hour)}
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/cart/datetime", tok, past).Code)
}

func mustField(t *testing.T, w *httptest.ResponseRecorder, field string) string {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	v, ok := raw[field]
	require.True(t, ok, "missing %q in %s", field, w.Body.String())
	return string(v)
}

func TestBookingRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.register(t, "customer@example.com")

	w := s.do(t, http.MethodPost, "/api/bookings/busyTimes", tok, models.BusyTimesRequest{
		CustomerLocation: "Halifax", ServiceNames: []string{"Wash", "Wax"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/bookings/busyTimes", tok, models.BusyTimesRequest{ServiceNames: []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/bookings", tok, models.CreateBookingRequest{CustomerLocation: "Halifax"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty cart")

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/cart", tok,
		map[string]any{"service": map[string]string{"_id": "s2"}}).Code)
	start := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Minute)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/api/cart/datetime", tok,
		map[string]any{"selectedDateTime": start}).Code)

	w = s.do(t, http.MethodPost, "/api/bookings", tok, models.CreateBookingRequest{CustomerLocation: "Halifax"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/bookings", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.True(t, start.Equal(listed[0].Start))

	// The new booking now blocks the same slot for others.
	other := s.register(t, "other@example.com")
	w = s.do(t, http.MethodPost, "/api/bookings/busyTimes", other, models.BusyTimesRequest{
		CustomerLocation: "Halifax", ExpectedTimeToComplete: 30,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var busy []models.TimeRange
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &busy))
	require.Len(t, busy, 1)
	assert.True(t, busy[0].Contains(start))
}

func TestServiceRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var services []models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &services))
	assert.Len(t, services, 2)

	input := models.ServiceInput{Name: "Polish", Price: 80, Duration: 90}
	customer := s.register(t, "customer@example.com")
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/services", customer, input).Code)

	admin := s.register(t, "admin@example.com")
	w = s.do(t, http.MethodPost, "/api/services", admin, input)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/services/"+created.ID, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/services/"+created.ID, admin, nil).Code)
}

func multipartUpload(t *testing.T, bookingID string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if bookingID != "" {
		require.NoError(t, mw.WriteField("bookingId", bookingID))
	}
	fw, err := mw.CreateFormFile("file", "car.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadRoutes(t *testing.T) {
	s := newTestServer(t)
	customer := s.register(t, "customer@example.com")
	admin := s.register(t, "admin@example.com")

	send := func(path, token, bookingID string) *httptest.ResponseRecorder {
		body, contentType := multipartUpload(t, bookingID)
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", contentType)
		req.AddCookie(&http.Cookie{Name: utils.TokenCookieName, Value: token})
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusForbidden, send("/api/uploads/before", customer, "b1").Code)
	assert.Equal(t, http.StatusBadRequest, send("/api/uploads/before", admin, "").Code)
	assert.Equal(t, http.StatusNotFound, send("/api/uploads/after", admin, "missing").Code)

	w := send("/api/uploads/before", admin, "b1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var b models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	require.Len(t, b.BeforePictures, 1)
	assert.Equal(t, "bookings/b1/before/asset", b.BeforePictures[0].PublicID)

	del := models.DeletePictureRequest{BookingID: "b1", PublicID: b.BeforePictures[0].PublicID}
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/uploads/after", admin, del).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/uploads/before", admin, del).Code)

	stored, err := s.bookings.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Empty(t, stored.BeforePictures)
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/users/loggedIn", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", mustField(t, w, "loggedIn"))

	tok := s.register(t, "customer@example.com")
	w = s.do(t, http.MethodGet, "/api/users/loggedIn", tok, nil)
	assert.Equal(t, "true", mustField(t, w, "loggedIn"))

	w = s.do(t, http.MethodPost, "/api/users/login", "", models.LoginRequest{Email: "customer@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/users/register", "", models.RegisterRequest{
		Name: "Dup", Email: "customer@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCORSAllowsCredentialedOrigin(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
