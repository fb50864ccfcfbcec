package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nusfitness/fitness-bot/internal/token"
)

func TestHTTPStoreRecord(t *testing.T) {
	var got recordMenuRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/telegram/updateMenus", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := NewHTTPStore(server.URL + "/")
	err := s.Record(context.Background(), 42, "MakeAndCancel")
	require.NoError(t, err)

	assert.Equal(t, int64(42), got.ChatID)
	assert.Equal(t, "MakeAndCancel", got.CurrentMenu)
}

func TestHTTPStoreResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/telegram/getPreviousMenu", r.URL.Path)

		var req previousMenuRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.ChatID)
		assert.Equal(t, 2, req.Skips)

		json.NewEncoder(w).Encode(previousMenuResponse{
			PreviousMenu: "Kent Ridge Gym_Thu Jul 08 2021",
		})
	}))
	defer server.Close()

	s := NewHTTPStore(server.URL + "/")
	got, err := s.Resolve(context.Background(), 42, 2)
	require.NoError(t, err)
	assert.Equal(t, "Kent Ridge Gym_Thu Jul 08 2021", got)
}

func TestHTTPStoreResolveExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(previousMenuResponse{})
	}))
	defer server.Close()

	s := NewHTTPStore(server.URL + "/")
	got, err := s.Resolve(context.Background(), 42, 5)
	require.NoError(t, err)
	assert.Equal(t, token.Start, got)
}

func TestHTTPStoreResolveUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewHTTPStore(server.URL + "/")
	_, err := s.Resolve(context.Background(), 42, 1)
	assert.Error(t, err)
}
