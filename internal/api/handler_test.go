package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaz1409/maturity-auto/internal/config"
	"github.com/shaz1409/maturity-auto/internal/report"
	"github.com/shaz1409/maturity-auto/internal/utils"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   []bool
	stats   *report.Stats
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeRunner) Run(dryRun bool) (*report.Stats, error) {
	f.mu.Lock()
	f.calls = append(f.calls, dryRun)
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.stats, f.err
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newHandler(runner Runner) *Handler {
	cfg := &config.Config{App: config.AppConfig{RawBodyLog: false}}
	return NewHandler(utils.NewNopLogger(), runner, cfg)
}

func TestHandleRun(t *testing.T) {
	runner := &fakeRunner{stats: &report.Stats{Respondents: 3, Generated: 2, Skipped: 1}}
	handler := newHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	rec := httptest.NewRecorder()
	handler.HandleRun(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []bool{false}, runner.calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["respondents"])
	assert.Equal(t, float64(2), data["generated"])
	assert.Equal(t, float64(1), data["skipped"])
}

func TestHandleRunDryRunPayload(t *testing.T) {
	runner := &fakeRunner{stats: &report.Stats{}}
	handler := newHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"dry_run":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.HandleRun(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []bool{true}, runner.calls)
}

func TestHandleRunInvalidJSON(t *testing.T) {
	runner := &fakeRunner{stats: &report.Stats{}}
	handler := newHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.HandleRun(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, runner.callCount())
}

func TestHandleRunWrongContentType(t *testing.T) {
	runner := &fakeRunner{stats: &report.Stats{}}
	handler := newHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"dry_run":true}`))
	rec := httptest.NewRecorder()
	handler.HandleRun(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, 0, runner.callCount())
}

func TestHandleRunRejectsConcurrentRun(t *testing.T) {
	runner := &fakeRunner{
		stats:   &report.Stats{},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	handler := newHandler(runner)

	var wg sync.WaitGroup
	wg.Add(1)
	firstRec := httptest.NewRecorder()
	go func() {
		defer wg.Done()
		handler.HandleRun(firstRec, httptest.NewRequest(http.MethodPost, "/run", nil))
	}()

	<-runner.entered

	secondRec := httptest.NewRecorder()
	handler.HandleRun(secondRec, httptest.NewRequest(http.MethodPost, "/run", nil))
	assert.Equal(t, http.StatusConflict, secondRec.Code)
	assert.Contains(t, secondRec.Body.String(), "already in progress")

	close(runner.release)
	wg.Wait()
	assert.Equal(t, http.StatusOK, firstRec.Code)
	assert.Equal(t, 1, runner.callCount())
}

func TestHandleRunFailure(t *testing.T) {
	runner := &fakeRunner{err: assert.AnError}
	handler := newHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	rec := httptest.NewRecorder()
	handler.HandleRun(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, newHandler(&fakeRunner{stats: &report.Stats{}}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/run", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/run", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
