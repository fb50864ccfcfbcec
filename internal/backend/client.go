// Package backend is the HTTP client for the NUSFitness booking backend.
// The backend owns all business state (accounts, credits, bookings,
// occupancy); the bot only reads and issues commands through this contract.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nusfitness/fitness-bot/internal/model"
)

// Client calls the booking backend. Every operation is a JSON POST; there is
// no retry policy, a failed call surfaces to the handler that made it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a backend client. The limiter is shared by all chats
// and smooths bursts of callback taps so the backend is never flooded.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		logger:  logger,
	}
}

type successResponse struct {
	Success bool `json:"success"`
}

// IsLoggedIn reports whether the chat is linked to a NUSFitness account.
func (c *Client) IsLoggedIn(ctx context.Context, chatID int64) (bool, error) {
	var resp successResponse
	err := c.post(ctx, "telegram/isLoggedIn", map[string]any{
		"chatId": chatID,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// BookedSlots returns the user's existing bookings, optionally filtered to
// one facility.
func (c *Client) BookedSlots(ctx context.Context, chatID int64, facility string) ([]model.Booking, error) {
	body := map[string]any{"chatId": chatID}
	if facility != "" {
		body["facility"] = facility
	}

	var resp []model.Booking
	if err := c.post(ctx, "bookedSlots", body, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

type slotCountEntry struct {
	ID    time.Time `json:"_id"`
	Count int       `json:"count"`
}

// SlotCounts returns the occupancy count per exact slot timestamp (Unix
// seconds) for a facility over the 24 hours starting at startDate.
func (c *Client) SlotCounts(ctx context.Context, facility string, startDate time.Time) (map[int64]int, error) {
	var resp []slotCountEntry
	err := c.post(ctx, "slots", map[string]any{
		"facility":  facility,
		"startDate": startDate,
		"endDate":   startDate.Add(24 * time.Hour),
	}, &resp)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(resp))
	for _, e := range resp {
		counts[e.ID.Unix()] = e.Count
	}
	return counts, nil
}

// CreditsLeft returns the user's remaining booking credits.
func (c *Client) CreditsLeft(ctx context.Context, chatID int64) (int, error) {
	var resp struct {
		Credits int `json:"credits"`
	}
	err := c.post(ctx, "creditsLeft", map[string]any{
		"chatId": chatID,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Credits, nil
}

// UpdateCredits deducts a credit after a successful booking. The backend
// owns the arithmetic.
func (c *Client) UpdateCredits(ctx context.Context, chatID int64) (bool, error) {
	var resp successResponse
	err := c.post(ctx, "updateCredits", map[string]any{
		"chatId": chatID,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// Book reserves a slot. A false return with nil error is a business
// rejection (slot full, already booked), not a fault.
func (c *Client) Book(ctx context.Context, chatID int64, facility string, date time.Time) (bool, error) {
	var resp successResponse
	err := c.post(ctx, "book", map[string]any{
		"chatId":   chatID,
		"facility": facility,
		"date":     date,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// CancelBooking cancels a reservation. A false return with nil error means
// the backend refused (e.g. inside the cancellation window).
func (c *Client) CancelBooking(ctx context.Context, chatID int64, facility string, date time.Time) (bool, error) {
	var resp successResponse
	err := c.post(ctx, "cancel", map[string]any{
		"chatId":   chatID,
		"facility": facility,
		"date":     date,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// CurrentTraffic returns one live occupancy count per facility, in the
// reference table's order.
func (c *Client) CurrentTraffic(ctx context.Context) ([]int, error) {
	var resp []int
	if err := c.post(ctx, "currentTraffic", map[string]any{}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Backend call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
