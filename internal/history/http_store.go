package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nusfitness/fitness-bot/internal/token"
)

// HTTPStore persists menu history through the backend's recordMenu and
// getPreviousMenu endpoints.
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPStore creates a history store backed by the booking backend.
func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type recordMenuRequest struct {
	ChatID      int64  `json:"chatId"`
	CurrentMenu string `json:"currentMenu"`
}

type previousMenuRequest struct {
	ChatID int64 `json:"chatId"`
	Skips  int   `json:"skips"`
}

type previousMenuResponse struct {
	PreviousMenu string `json:"previousMenu"`
}

// Record appends the token as the chat's current menu.
func (s *HTTPStore) Record(ctx context.Context, chatID int64, tok string) error {
	return s.post(ctx, "telegram/updateMenus", recordMenuRequest{
		ChatID:      chatID,
		CurrentMenu: tok,
	}, nil)
}

// Resolve returns the menu token skip steps back. An empty backend response
// means history is exhausted and yields the Start anchor.
func (s *HTTPStore) Resolve(ctx context.Context, chatID int64, skip int) (string, error) {
	var resp previousMenuResponse
	err := s.post(ctx, "telegram/getPreviousMenu", previousMenuRequest{
		ChatID: chatID,
		Skips:  skip,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.PreviousMenu == "" {
		return token.Start, nil
	}
	return resp.PreviousMenu, nil
}

func (s *HTTPStore) post(ctx context.Context, path string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

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
