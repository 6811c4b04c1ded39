package httputils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

func DecodeJSON(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return &HTTPError{
			Code:    http.StatusUnsupportedMediaType,
			Message: "Content-Type must be application/json",
		}
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid JSON payload: " + err.Error(),
		}
	}
	return nil
}

func ValidateMethod(r *http.Request, allowedMethod string) error {
	if r.Method != allowedMethod {
		return &HTTPError{
			Code:    http.StatusMethodNotAllowed,
			Message: "Method not allowed",
		}
	}
	return nil
}

// LogRequestBody reads and restores the request body so the handler can still
// decode it. The raw bytes are only logged when raw body logging is enabled.
func LogRequestBody(r *http.Request, logger *zap.SugaredLogger, rawBodyLog bool) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	if rawBodyLog {
		logger.Debugf("Raw request body: %s", string(bodyBytes))
	}

	return bodyBytes, nil
}
