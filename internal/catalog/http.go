package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	autolisterrors "github.com/autolist/autolist/internal/errors"
)

// HTTPSource reads reference lists as JSON arrays from a REST API rooted at
// BaseURL, one endpoint per list kind (GET BaseURL/brands and so on).
type HTTPSource struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPSource creates an HTTP source for baseURL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func getList[T any](ctx context.Context, s *HTTPSource, kind Kind) ([]T, error) {
	endpoint := s.BaseURL + "/" + string(kind)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "autolist-catalog")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, autolisterrors.NetworkUnavailable(req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, autolisterrors.UnexpectedStatus(endpoint, resp.StatusCode, string(body))
	}

	var items []T
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *HTTPSource) Brands(ctx context.Context) ([]Brand, error) {
	return getList[Brand](ctx, s, KindBrands)
}

func (s *HTTPSource) Models(ctx context.Context) ([]Model, error) {
	return getList[Model](ctx, s, KindModels)
}

func (s *HTTPSource) CarTypes(ctx context.Context) ([]CarType, error) {
	return getList[CarType](ctx, s, KindCarTypes)
}

func (s *HTTPSource) Conditions(ctx context.Context) ([]Condition, error) {
	return getList[Condition](ctx, s, KindConditions)
}

func (s *HTTPSource) Transmissions(ctx context.Context) ([]Transmission, error) {
	return getList[Transmission](ctx, s, KindTransmissions)
}

func (s *HTTPSource) FuelTypes(ctx context.Context) ([]FuelType, error) {
	return getList[FuelType](ctx, s, KindFuelTypes)
}

func (s *HTTPSource) Colors(ctx context.Context) ([]Color, error) {
	return getList[Color](ctx, s, KindColors)
}
