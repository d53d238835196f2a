package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"zaylux-store/internal/pkg/errs"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errs.New("order service unavailable")

// RemoteError is a non-2xx answer from the order authority. Message is the
// server's own text when it sent one.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote status %d: %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("remote status %d: %s", e.Status, e.Message)
}

func (e *RemoteError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

func (e *RemoteError) IsServerError() bool {
	return e.Status >= http.StatusInternalServerError
}

// errorBody accepts both {"error":{"message":...}} and {"detail":...}.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail"`
}

func newRemoteError(status int, body []byte) *RemoteError {
	e := &RemoteError{Status: status}
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Error.Message != "":
			e.Message = parsed.Error.Message
		case parsed.Detail != nil:
			if s, ok := parsed.Detail.(string); ok {
				e.Message = s
			}
		}
	}
	e.Message = strings.TrimSpace(e.Message)
	return e
}
