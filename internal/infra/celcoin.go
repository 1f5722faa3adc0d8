package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// celcoinRevenueResponse is the slice of the Celcoin billing report the
// monthly report consumes: how much the subscription platform collected in
// the period.
type celcoinRevenueResponse struct {
	Total decimal.Decimal `json:"total"`
}

// CelcoinClient fetches subscription revenue from the Celcoin platform. Calls
// run through a circuit breaker: the monthly report treats an open circuit as
// a missing figure, it never blocks on a dead upstream.
type CelcoinClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewCelcoinClient(baseURL, token string) *CelcoinClient {
	return &CelcoinClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cb:         NewCircuitBreaker(DefaultCBConfig()),
	}
}

// BreakerState exposes the circuit state for the health endpoint.
func (c *CelcoinClient) BreakerState() string {
	return c.cb.State().String()
}

// ReceitaAssinaturas returns the platform's collected revenue for the
// inclusive YYYY-MM-DD period.
func (c *CelcoinClient) ReceitaAssinaturas(ctx context.Context, inicio, fim string) (decimal.Decimal, error) {
	var total decimal.Decimal

	err := c.cb.Execute(func() error {
		url := fmt.Sprintf("%s/v1/billing/revenue?start=%s&end=%s", c.baseURL, inicio, fim)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("celcoin: create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("celcoin: unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("celcoin: returned %d", resp.StatusCode)
		}

		var result celcoinRevenueResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("celcoin: decode response: %w", err)
		}
		total = result.Total
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
