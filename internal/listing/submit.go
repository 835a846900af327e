package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	autolisterrors "github.com/autolist/autolist/internal/errors"
	"github.com/autolist/autolist/internal/logging"
)

// Submitter receives a validated draft.
type Submitter interface {
	Submit(ctx context.Context, draft Draft) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, draft Draft) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, draft Draft) error {
	return fn(ctx, draft)
}

// LogSubmitter only logs the draft.
type LogSubmitter struct {
	Logger *logging.Logger
}

// Submit logs draft at info level.
func (s LogSubmitter) Submit(ctx context.Context, draft Draft) error {
	logger := s.Logger
	if logger == nil {
		logger = logging.Global()
	}
	logger.WithContext(ctx).Info("form submitted",
		"title", draft.Title,
		"brand", draft.Brand,
		"model", draft.Model,
		"mileage", draft.Mileage,
		"price", draft.Price,
		"power", draft.Power,
		"previous_owners", draft.PreviousOwners,
		"door_count", draft.DoorCount,
		"seat_count", draft.SeatCount,
		"car_type", draft.CarType,
		"condition", draft.Condition,
		"transmission", draft.Transmission,
		"fuel_type", draft.FuelType,
		"color", draft.Color,
	)
	return nil
}

// HTTPSubmitter posts the draft as JSON to a create-listing endpoint.
type HTTPSubmitter struct {
	URL        string
	HTTPClient *http.Client
	// Token returns the bearer token to send, or "" for none.
	Token func() string
}

// NewHTTPSubmitter creates a submitter for url with the given timeout.
func NewHTTPSubmitter(url string, timeout time.Duration, token func() string) *HTTPSubmitter {
	return &HTTPSubmitter{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
		Token:      token,
	}
}

// Submit posts draft and accepts any 2xx response.
func (s *HTTPSubmitter) Submit(ctx context.Context, draft Draft) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "autolist")
	if s.Token != nil {
		if token := s.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return autolisterrors.ContextCancelled("submitting listing")
		}
		return autolisterrors.NetworkUnavailable(req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return autolisterrors.UnexpectedStatus(s.URL, resp.StatusCode, string(bytes.TrimSpace(msg)))
	}
	return nil
}
