package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"detailing/models"
	"detailing/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New(Options{APIBaseURL: "/api"})
	assert.Error(t, err)

	c, err := New(Options{APIBaseURL: "https://api.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", c.BaseURL())
}

func TestRequestsCarrySessionCookie(t *testing.T) {
	var gotCookie, gotPath, gotMethod string
	var gotBody models.RemoveFromCartRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie(utils.TokenCookieName); err == nil {
			gotCookie = ck.Value
		}
		gotPath, gotMethod = r.URL.Path, r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"services":[]}`))
	}))
	defer srv.Close()

	c, err := New(Options{APIBaseURL: srv.URL})
	require.NoError(t, err)
	c.SetSessionToken("tok-123")

	resp, err := c.RemoveFromCart(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, resp.Services)
	assert.Empty(t, *resp.Services)
	assert.Nil(t, resp.BusyTimes)

	assert.Equal(t, "tok-123", gotCookie)
	assert.Equal(t, "/api/cart", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "s1", gotBody.ID)
}

func TestBaseURLWithPathPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(Options{APIBaseURL: srv.URL + "/detailing"})
	require.NoError(t, err)
	services, err := c.GetServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, services)
	assert.Equal(t, "/detailing/api/services", gotPath)
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"failed to add item to cart","details":"service already in cart"}`))
	}))
	defer srv.Close()

	c, err := New(Options{APIBaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.AddToCart(context.Background(), models.Service{ID: "s1"})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.StatusCode)
	assert.Equal(t, "add to cart", se.Op)
	assert.Equal(t, "failed to add item to cart", se.Message)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(Options{APIBaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.GetCart(context.Background())
	require.Error(t, err)
	var se *StatusError
	assert.NotErrorAs(t, err, &se, "transport failures are not status errors")
}

func TestBusyTimesSendsEmptyNames(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	c, err := New(Options{APIBaseURL: srv.URL})
	require.NoError(t, err)
	busy, err := c.BusyTimes(context.Background(), models.BusyTimesRequest{CustomerLocation: "Halifax", ExpectedTimeToComplete: 60})
	require.NoError(t, err)
	assert.NotNil(t, busy)
	assert.Empty(t, busy)
	assert.JSONEq(t, `[]`, string(raw["serviceNames"]))
	assert.JSONEq(t, `60`, string(raw["expectedTimeToComplete"]))
}
