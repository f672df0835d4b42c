package client_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"detailing/client"
	"detailing/client/cartstate"
	"detailing/client/servicestate"
	"detailing/database/repository/memory"
	"detailing/handlers"
	"detailing/models"
	"detailing/routes"
	"detailing/services/booking"
	"detailing/services/cart"
	"detailing/services/catalog"
	"detailing/services/storage"
	"detailing/services/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := &catalog.DefaultCatalogService{Repo: memory.NewCatalogRepo(
		models.Service{ID: "s1", Name: "Wash", Price: 40, Duration: 60},
		models.Service{ID: "s2", Name: "Wax", Price: 60, Duration: 30},
	)}
	carts := &cart.DefaultCartService{Repo: memory.NewCartRepo(), Catalog: cat}
	bookings := memory.NewBookingRepo()
	hb := handlers.NewHandlerBundle(
		handlers.NewAuthHandler(&user.DefaultUserService{Repo: memory.NewUserRepo()}, time.Hour, false),
		handlers.NewCartHandler(carts),
		handlers.NewBookingHandler(&booking.DefaultBookingService{
			Repo: bookings, Catalog: cat, Cart: carts,
			TravelBuffer: 30 * time.Minute, Horizon: 30 * 24 * time.Hour,
		}),
		handlers.NewServicesHandler(cat),
		handlers.NewUploadHandler(&booking.DefaultPictureService{Repo: bookings, Storage: storage.DisabledStorage{}}),
	)
	r := gin.New()
	routes.RegisterRoutes(r, hb, []string{"http://localhost:3000"})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestCartFlowAgainstServer(t *testing.T) {
	ctx := context.Background()
	srv := newAPIServer(t)

	api, err := client.New(client.Options{APIBaseURL: srv.URL})
	require.NoError(t, err)

	loggedIn, err := api.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	_, err = api.Register(ctx, "Sam", "sam@example.com", "password123")
	require.NoError(t, err)
	loggedIn, err = api.LoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	services := servicestate.NewStore(api, nil)
	require.NoError(t, services.Load(ctx))
	require.Len(t, services.Services(), 2)

	m := cartstate.NewManager(api, cartstate.Config{})
	require.NoError(t, m.OnLogin(ctx, loggedIn))
	assert.Equal(t, 0, m.CartLength())

	require.NoError(t, m.AddItem(ctx, models.Service{ID: "s1"}))
	assert.Equal(t, 1, m.CartLength())
	assert.Equal(t, "Wash", m.Cart().Services[0].Name)

	var se *client.StatusError
	require.ErrorAs(t, m.AddItem(ctx, models.Service{ID: "s1"}), &se)
	assert.Equal(t, 409, se.StatusCode)
	assert.Equal(t, 1, m.CartLength())

	require.NoError(t, m.RemoveItem(ctx, models.Service{ID: "s1"}))
	assert.Equal(t, 0, m.CartLength())

	require.NoError(t, m.AddItem(ctx, models.Service{ID: "s2"}))
	require.NoError(t, m.FetchBusyTimes(ctx, "Halifax", 0, []string{"Wax"}))
	assert.Empty(t, m.Cart().BusyTimes)

	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Minute)
	require.NoError(t, m.SelectDateTime(ctx, start))
	b, err := m.Checkout(ctx, "Halifax")
	require.NoError(t, err)
	assert.True(t, start.Equal(b.Start))
	assert.Equal(t, 0, m.CartLength())

	require.NoError(t, m.GetCart(ctx))
	assert.Equal(t, 0, m.CartLength(), "server cleared the cart too")

	require.NoError(t, m.FetchBusyTimes(ctx, "Dartmouth", 30, nil))
	busy := m.Cart().BusyTimes
	require.Len(t, busy, 1)
	assert.True(t, busy[0].Contains(start))

	require.NoError(t, m.ClearCart(ctx))
	require.NoError(t, m.ClearCart(ctx))
	assert.Equal(t, 0, m.CartLength())
}

func TestUnauthenticatedCartIsStatusError(t *testing.T) {
	srv := newAPIServer(t)
	api, err := client.New(client.Options{APIBaseURL: srv.URL})
	require.NoError(t, err)

	m := cartstate.NewManager(api, cartstate.Config{})
	err = m.GetCart(context.Background())
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 401, se.StatusCode)
}
