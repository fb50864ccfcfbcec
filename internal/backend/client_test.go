package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	return NewClient(server.URL+"/", zap.NewNop()), server.Close
}

func TestIsLoggedIn(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/telegram/isLoggedIn", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(42), body["chatId"])

		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
	defer closeFn()

	ok, err := client.IsLoggedIn(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSlotCounts(t *testing.T) {
	slot := time.Date(2021, time.July, 8, 11, 0, 0, 0, time.UTC)

	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/slots", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Kent Ridge Gym", body["facility"])
		assert.Contains(t, body, "startDate")
		assert.Contains(t, body, "endDate")

		json.NewEncoder(w).Encode([]map[string]any{
			{"_id": slot.Format(time.RFC3339), "count": 40},
		})
	})
	defer closeFn()

	counts, err := client.SlotCounts(context.Background(), "Kent Ridge Gym", slot.Truncate(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 40, counts[slot.Unix()])
}

func TestBookedSlots(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bookedSlots", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Kent Ridge Gym", body["facility"])

		json.NewEncoder(w).Encode([]map[string]any{
			{"facility": "Kent Ridge Gym", "date": "2021-07-08T11:00:00Z"},
		})
	})
	defer closeFn()

	bookings, err := client.BookedSlots(context.Background(), 42, "Kent Ridge Gym")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Kent Ridge Gym", bookings[0].Facility)
	assert.Equal(t, 2021, bookings[0].Date.Year())
}

func TestBookedSlotsOmitsEmptyFacility(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "facility")
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	defer closeFn()

	_, err := client.BookedSlots(context.Background(), 42, "")
	require.NoError(t, err)
}

func TestBookBusinessRejection(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/book", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]bool{"success": false})
	})
	defer closeFn()

	ok, err := client.Book(context.Background(), 42, "Kent Ridge Gym", time.Now())
	require.NoError(t, err)
	assert.False(t, ok, "success:false is a rejection, not an error")
}

func TestCreditsLeft(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/creditsLeft", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int{"credits": 3})
	})
	defer closeFn()

	credits, err := client.CreditsLeft(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 3, credits)
}

func TestCurrentTraffic(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/currentTraffic", r.URL.Path)
		json.NewEncoder(w).Encode([]int{12, 5, 30, 8, 21, 4})
	})
	defer closeFn()

	counts, err := client.CurrentTraffic(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{12, 5, 30, 8, 21, 4}, counts)
}

func TestServerErrorSurfacesAsFault(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer closeFn()

	_, err := client.IsLoggedIn(context.Background(), 42)
	assert.Error(t, err)
}

func TestChartClient(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Kent Ridge Gym", r.URL.Query().Get("facility"))
		w.Write(png)
	}))
	defer server.Close()

	c := NewChartClient(server.URL)
	img, err := c.OccupancyChart(context.Background(), "Kent Ridge Gym")
	require.NoError(t, err)
	assert.Equal(t, png, img)
}
