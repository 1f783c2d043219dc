package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
	"github.com/couchcryptid/uv-index-etl/internal/observability"
)

const testBaseURL = "https://feeds.test/zonkracht/"

var testLocator = domain.FeedLocator{BaseURL: testBaseURL, SourceTag: "RIVM", Ext: "txt"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func amsterdam(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	return loc
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return b
}

// --- mocks ---

type fakeResponse struct {
	body []byte
	err  error
}

type fakeFeedClient struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []string
}

func newFakeFeedClient() *fakeFeedClient {
	return &fakeFeedClient{responses: make(map[string]fakeResponse)}
}

// set registers the response for year's file as seen from currentYear.
func (f *fakeFeedClient) set(year, currentYear int, body []byte, err error) {
	f.responses[testLocator.URLForYear(year, currentYear)] = fakeResponse{body: body, err: err}
}

func (f *fakeFeedClient) FetchFeed(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := f.responses[url]
	if !ok {
		return nil, errors.New("status 404")
	}
	return r.body, r.err
}

func (f *fakeFeedClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type stubDirectory struct {
	stations []domain.StationInfo
	err      error
}

func (s *stubDirectory) FetchStations(_ context.Context) ([]domain.StationInfo, error) {
	return s.stations, s.err
}

type recordingPublisher struct {
	published []domain.HourlyUVRecord
	err       error
}

func (p *recordingPublisher) PublishHourly(_ context.Context, records []domain.HourlyUVRecord) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, records...)
	return nil
}
