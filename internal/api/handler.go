// Package api exposes the pipeline as a small HTTP trigger surface, meant to
// sit behind a form provider's "new response" webhook. A run processes the
// whole dataset, so concurrent triggers are refused rather than queued.
package api

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shaz1409/maturity-auto/internal/config"
	"github.com/shaz1409/maturity-auto/internal/report"
	"github.com/shaz1409/maturity-auto/internal/utils/httputils"
)

// Runner executes one full assessment run: fetch the dataset, score it and
// generate the reports.
type Runner interface {
	Run(dryRun bool) (*report.Stats, error)
}

type Handler struct {
	logger *zap.SugaredLogger
	runner Runner
	cfg    *config.Config

	// Guards the single-run-at-a-time invariant. TryLock instead of Lock:
	// a second trigger gets 409, it does not queue.
	mu sync.Mutex
}

func NewHandler(logger *zap.SugaredLogger, runner Runner, cfg *config.Config) *Handler {
	return &Handler{
		logger: logger,
		runner: runner,
		cfg:    cfg,
	}
}

func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	logger := h.logger.With("request_id", reqID)

	bodyBytes, err := httputils.LogRequestBody(r, logger, h.cfg.App.RawBodyLog)
	if err != nil {
		logger.Errorf("Failed to read request body: %v", err)
		httputils.HandleError(w, err)
		return
	}
	r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	if err := httputils.ValidateMethod(r, http.MethodPost); err != nil {
		logger.Errorf("Method validation error: %v", err)
		httputils.HandleError(w, err)
		return
	}

	var payload RunRequest
	if len(bodyBytes) > 0 {
		if err := httputils.DecodeJSON(r, &payload); err != nil {
			logger.Errorf("JSON decode error: %v", err)
			httputils.HandleError(w, err)
			return
		}
	}

	if !h.mu.TryLock() {
		logger.Warnf("Run trigger rejected: a run is already in progress")
		httputils.JSONError(w, http.StatusConflict, "a run is already in progress")
		return
	}
	defer h.mu.Unlock()

	logger.Infof("Run triggered: dry_run=%v", payload.DryRun)

	stats, err := h.runner.Run(payload.DryRun)
	if err != nil {
		logger.Errorf("Run failed: %v", err)
		httputils.HandleError(w, err)
		return
	}

	data := map[string]any{
		"respondents": stats.Respondents,
		"generated":   stats.Generated,
		"skipped":     stats.Skipped,
		"failed":      stats.Failed,
	}
	if err := httputils.SuccessResponse(w, "Run completed", data); err != nil {
		logger.Errorf("Error sending response: %v", err)
	}
}
