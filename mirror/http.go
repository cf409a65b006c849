package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/furqanahmad03/e-store-api/models"
	"github.com/sony/gobreaker/v2"
)

// HTTPMirror talks JSON to the upstream cart API. Calls go through a
// circuit breaker so a dead upstream fails fast instead of tying up
// request handlers.
type HTTPMirror struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[struct{}]
}

func NewHTTPMirror(baseURL string) *HTTPMirror {
	return &HTTPMirror{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		cb: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:    "cart-mirror",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

type syncItemRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

func (m *HTTPMirror) SyncItem(ctx context.Context, sessionID string, item models.CartItem) error {
	url := fmt.Sprintf("%s/sessions/%s/items/%d", m.baseURL, sessionID, item.ProductID)
	body := syncItemRequest{
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.Quantity,
		Total:    item.Total,
	}
	return m.do(ctx, http.MethodPut, url, body)
}

func (m *HTTPMirror) DropItem(ctx context.Context, sessionID string, productID uint) error {
	url := fmt.Sprintf("%s/sessions/%s/items/%d", m.baseURL, sessionID, productID)
	return m.do(ctx, http.MethodDelete, url, nil)
}

func (m *HTTPMirror) ConfirmReceipt(ctx context.Context, orderID string) error {
	url := fmt.Sprintf("%s/orders/%s/received", m.baseURL, orderID)
	return m.do(ctx, http.MethodPost, url, nil)
}

func (m *HTTPMirror) do(ctx context.Context, method, url string, body interface{}) error {
	_, err := m.cb.Execute(func() (struct{}, error) {
		var buf bytes.Buffer
		if body != nil {
			if err := json.NewEncoder(&buf).Encode(body); err != nil {
				return struct{}{}, fmt.Errorf("encode mirror request: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, url, &buf)
		if err != nil {
			return struct{}{}, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := m.client.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return struct{}{}, fmt.Errorf("mirror responded %d for %s %s", resp.StatusCode, method, url)
		}
		return struct{}{}, nil
	})
	return err
}
