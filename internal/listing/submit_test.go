package listing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autolisterrors "github.com/autolist/autolist/internal/errors"
	"github.com/autolist/autolist/internal/logging"
)

func TestLogSubmitter(t *testing.T) {
	var buf strings.Builder
	sub := LogSubmitter{Logger: logging.NewWriter(&buf, logging.LevelInfo)}

	ctx := logging.WithFormID(context.Background(), "form-1")
	require.NoError(t, sub.Submit(ctx, Draft{Title: "Golf", Brand: "volkswagen", Model: 6}))

	out := buf.String()
	assert.Contains(t, out, "form submitted")
	assert.Contains(t, out, "form_id=form-1")
	assert.Contains(t, out, "brand=volkswagen")
	assert.Contains(t, out, "model=6")
}

func TestHTTPSubmitter(t *testing.T) {
	var (
		gotAuth  string
		gotDraft Draft
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotDraft)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sub := NewHTTPSubmitter(server.URL, time.Second, func() string { return "tok" })
	draft := Draft{Title: "Civic", Brand: "honda", Model: 4, Price: 12000}

	require.NoError(t, sub.Submit(context.Background(), draft))
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, draft, gotDraft)
}

func TestHTTPSubmitter_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	require.NoError(t, NewHTTPSubmitter(server.URL, time.Second, nil).Submit(context.Background(), Draft{}))
}

func TestHTTPSubmitter_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid token"}`))
	}))
	defer server.Close()

	err := NewHTTPSubmitter(server.URL, time.Second, nil).Submit(context.Background(), Draft{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, autolisterrors.ErrAuth))

	var appErr *autolisterrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, `{"error":"Invalid token"}`, appErr.Details["body"])
}

func TestSubmitterFunc(t *testing.T) {
	called := false
	var s Submitter = SubmitterFunc(func(ctx context.Context, d Draft) error {
		called = true
		return nil
	})
	require.NoError(t, s.Submit(context.Background(), Draft{}))
	assert.True(t, called)
}
