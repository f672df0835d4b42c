package servicestate

import (
	"context"
	"errors"
	"testing"

	"detailing/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	services []models.Service
	err      error
	calls    int
}

func (f *fakeFetcher) GetServices(context.Context) ([]models.Service, error) {
	f.calls++
	return f.services, f.err
}

func TestStore_LoadOnceRefreshAlways(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{services: []models.Service{svc("a")}}
	s := NewStore(f, nil)
	assert.False(t, s.State().Loaded)

	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, 1, f.calls)
	assert.True(t, s.State().Loaded)

	f.services = []models.Service{svc("a"), svc("b")}
	require.NoError(t, s.Refresh(ctx))
	assert.Equal(t, 2, f.calls)
	assert.Len(t, s.Services(), 2)
}

func TestStore_DispatchAndFailedRefresh(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{services: []models.Service{svc("a")}}
	s := NewStore(f, nil)
	require.NoError(t, s.Refresh(ctx))

	s.Dispatch(Create(svc("b")))
	assert.Equal(t, []string{"b", "a"}, ids(s.State()))

	f.err = errors.New("offline")
	assert.Error(t, s.Refresh(ctx))
	assert.Equal(t, []string{"b", "a"}, ids(s.State()), "failed refresh keeps the list")

	s.Dispatch(Delete("b"))
	assert.Equal(t, []string{"a"}, ids(s.State()))
}

func TestStore_LoadRetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{services: []models.Service{svc("a")}, err: errors.New("offline")}
	s := NewStore(f, nil)

	assert.Error(t, s.Load(ctx))
	assert.False(t, s.State().Loaded)

	f.err = nil
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, []string{"a"}, ids(s.State()))
}

func TestStore_NoFetcher(t *testing.T) {
	s := NewStore(nil, nil)
	assert.ErrorIs(t, s.Refresh(context.Background()), ErrNoFetcher)
	assert.ErrorIs(t, s.Load(context.Background()), ErrNoFetcher)

	s.Dispatch(Set([]models.Service{svc("a")}))
	assert.Equal(t, []string{"a"}, ids(s.State()))
}
