package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/handler"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/service"
)

// ---- test doubles ----------------------------------------------------------
// Each double has one function field per method; set only what a test needs.

type mockUserServicer struct {
	add  func(ctx context.Context, first, last string) (domain.UserProfile, error)
	list func(ctx context.Context) ([]domain.UserProfile, error)
}

func (m *mockUserServicer) Add(ctx context.Context, first, last string) (domain.UserProfile, error) {
	return m.add(ctx, first, last)
}
func (m *mockUserServicer) List(ctx context.Context) ([]domain.UserProfile, error) {
	return m.list(ctx)
}

type mockTripServicer struct {
	record func(ctx context.Context, in service.TripInput) (domain.TripRecord, error)
	list   func(ctx context.Context) ([]domain.TripRecord, error)
}

func (m *mockTripServicer) Record(ctx context.Context, in service.TripInput) (domain.TripRecord, error) {
	return m.record(ctx, in)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.TripRecord, error) {
	return m.list(ctx)
}

type mockAnalysisServicer struct {
	analyze func(ctx context.Context) (domain.Analysis, error)
}

func (m *mockAnalysisServicer) Analyze(ctx context.Context) (domain.Analysis, error) {
	return m.analyze(ctx)
}

type mockResetServicer struct {
	reset func(ctx context.Context) error
}

func (m *mockResetServicer) Reset(ctx context.Context) error {
	return m.reset(ctx)
}

type mockDistance struct {
	distance func(ctx context.Context, a, b string) (float64, error)
}

func (m *mockDistance) Distance(ctx context.Context, a, b string) (float64, error) {
	return m.distance(ctx, a, b)
}

type mockResolver struct {
	resolve func(ctx context.Context, input string) (domain.Coordinate, error)
}

func (m *mockResolver) Resolve(ctx context.Context, input string) (domain.Coordinate, error) {
	return m.resolve(ctx, input)
}

// compile-time checks: the doubles must satisfy the handler interfaces.
var (
	_ handler.UserServicer       = (*mockUserServicer)(nil)
	_ handler.TripServicer       = (*mockTripServicer)(nil)
	_ handler.AnalysisServicer   = (*mockAnalysisServicer)(nil)
	_ handler.ResetServicer      = (*mockResetServicer)(nil)
	_ handler.DistanceCalculator = (*mockDistance)(nil)
	_ handler.LocationResolver   = (*mockResolver)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given deps into its chi router,
// exactly as main.go does in production.
func newHTTPHandler(d handler.Deps) http.Handler {
	if d.Log == nil {
		d.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return handler.NewServer(d).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeError decodes an error body and returns its code and message.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}
