package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PricingResponse is returned by the pricing engine for one (seats, cycle)
// pair. Amounts travel as strings to keep decimal precision on the wire.
type PricingResponse struct {
	PricePerSeat    string `json:"price_per_seat"`
	MonthlyAmount   string `json:"monthly_amount"`
	EffectiveAmount string `json:"effective_amount"`
	DiscountPercent string `json:"discount_percent"`
	Savings         string `json:"savings"`
}

// PricingClient talks to the pricing engine sidecar that owns the
// authoritative subscription price computation. Keeping it out-of-process
// isolates pricing-rule deployments from the core backend.
type PricingClient struct {
	engineURL  string
	httpClient *http.Client
}

func NewPricingClient(engineURL string) *PricingClient {
	return &PricingClient{
		engineURL:  engineURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Preview requests the authoritative price for (seats, cycle).
func (c *PricingClient) Preview(ctx context.Context, seats int, cycle string) (*PricingResponse, error) {
	url := fmt.Sprintf("%s/v1/preview?seats=%d&cycle=%s", c.engineURL, seats, cycle)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("pricing: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pricing: engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pricing: engine returned %d", resp.StatusCode)
	}

	var result PricingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("pricing: decode response: %w", err)
	}
	return &result, nil
}
