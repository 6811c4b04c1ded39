package httputils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

func JSONResponse(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func JSONError(w http.ResponseWriter, status int, message string) error {
	return JSONResponse(w, status, map[string]string{
		"error": message,
	})
}

func SuccessResponse(w http.ResponseWriter, message string, data any) error {
	response := map[string]any{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		response["data"] = data
	}
	return JSONResponse(w, http.StatusOK, response)
}

// LogResponseBody reads and restores an upstream response body so the caller
// can still decode it. No-op unless raw body logging is enabled.
func LogResponseBody(resp *http.Response, logger *zap.SugaredLogger, rawBodyLog bool) ([]byte, error) {
	if !rawBodyLog {
		return nil, nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	logger.Debugf("Raw response body: %s", string(bodyBytes))

	return bodyBytes, nil
}
