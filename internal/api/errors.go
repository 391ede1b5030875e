package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is the single failure shape produced by every Client call.
// Status is 0 when no HTTP response was received.
type Error struct {
	Detail string
	Status int
	Code   string // structured error code, when the backend provides one
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Detail, e.Status)
	}
	return e.Detail
}

// errorBody covers the failure payload shapes the backend produces.
// detail is either a plain string or a FastAPI-style validation array.
type errorBody struct {
	Detail    json.RawMessage `json:"detail"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
}

// validationItem is one entry of a 422 validation array.
type validationItem struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// normalizeError flattens a non-2xx response body into one *Error.
// A 422 with a validation array becomes a comma-joined "field: reason" list;
// a 422 with a string detail is wrapped as a validation error; 400/500
// surface the backend's detail or message field; anything else falls back
// to defaultMsg.
func normalizeError(status int, body []byte, defaultMsg string) *Error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	if status == 422 && len(eb.Detail) > 0 {
		var items []validationItem
		if err := json.Unmarshal(eb.Detail, &items); err == nil && len(items) > 0 {
			parts := make([]string, 0, len(items))
			for _, it := range items {
				parts = append(parts, fmt.Sprintf("%s: %s", joinLoc(it.Loc), it.Msg))
			}
			return &Error{
				Detail: "Validation Error: " + strings.Join(parts, ", "),
				Status: 422,
				Code:   eb.ErrorCode,
			}
		}
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
			return &Error{Detail: "Validation Error: " + s, Status: 422, Code: eb.ErrorCode}
		}
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
			return &Error{Detail: s, Status: status, Code: eb.ErrorCode}
		}
	}
	if eb.Message != "" {
		return &Error{Detail: eb.Message, Status: status, Code: eb.ErrorCode}
	}

	return &Error{Detail: defaultMsg, Status: status, Code: eb.ErrorCode}
}

// joinLoc renders a validation location array like ["body","db_host"]
// as "body.db_host". Elements may be strings or array indices.
func joinLoc(loc []json.RawMessage) string {
	parts := make([]string, 0, len(loc))
	for _, l := range loc {
		var s string
		if err := json.Unmarshal(l, &s); err == nil {
			parts = append(parts, s)
			continue
		}
		parts = append(parts, strings.Trim(string(l), `"`))
	}
	return strings.Join(parts, ".")
}

// transportError wraps a failure where no HTTP response arrived at all.
func transportError(err error, defaultMsg string) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Detail: "Request timed out. The backend may be overloaded or unreachable."}
	}
	if err != nil && err.Error() != "" {
		return &Error{Detail: err.Error()}
	}
	return &Error{Detail: defaultMsg}
}

// ErrorKind classifies a failure for user-facing hints.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTimeout
	KindAuth
	KindNotFound
	KindValidation
)

// Classify maps an error to an ErrorKind. A structured error code from the
// backend wins; free-text substring matching is only the fallback and never
// guesses beyond the four known categories.
func Classify(err error) ErrorKind {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return KindUnknown
	}

	switch apiErr.Code {
	case "timeout":
		return KindTimeout
	case "auth_failed", "unauthorized":
		return KindAuth
	case "not_found":
		return KindNotFound
	case "validation":
		return KindValidation
	}

	if apiErr.Status == 422 {
		return KindValidation
	}

	msg := strings.ToLower(apiErr.Detail)
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return KindTimeout
	case strings.Contains(msg, "authentication") || strings.Contains(msg, "auth failed") || strings.Contains(msg, "unauthorized"):
		return KindAuth
	case strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist"):
		return KindNotFound
	case strings.Contains(msg, "validation") || strings.Contains(msg, "invalid"):
		return KindValidation
	}
	return KindUnknown
}
