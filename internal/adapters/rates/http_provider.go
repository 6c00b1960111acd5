package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/funds_flow_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// HTTPProvider fetches live rates from a JSON quote endpoint. The endpoint
// is expected at GET {baseURL}/quote/{BASE}-{QUOTE} and returns
// {"rate": "1.27"}.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider for the given endpoint base URL.
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

var _ portssvc.RateSource = (*HTTPProvider)(nil)

type quoteResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

// FetchRate returns the live bid rate base -> quote.
func (p *HTTPProvider) FetchRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	if p.baseURL == "" {
		return decimal.Zero, fmt.Errorf("rate provider URL not configured")
	}

	url := fmt.Sprintf("%s/quote/%s-%s", p.baseURL, base, quote)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate provider returned status %d for %s-%s", resp.StatusCode, base, quote)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if body.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("rate provider returned non-positive rate for %s-%s", base, quote)
	}

	return body.Rate, nil
}
