package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 64 << 10

// ResponseError is a non-2xx answer from the service.
type ResponseError struct {
	StatusCode int
	Detail     string
	Message    string
}

func (e *ResponseError) Error() string {
	msg := e.UserMessage()
	if msg == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, msg)
}

// UserMessage prefers the server's detail over its generic message, which is passed
// through verbatim.
func (e *ResponseError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// Rejected is always true: the server answered.
func (e *ResponseError) Rejected() bool {
	return true
}

func decodeResponseError(resp *http.Response) *ResponseError {
	out := &ResponseError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return out
	}
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return out
	}
	out.Detail = parseDetail(body.Detail)
	out.Message = body.Message
	return out
}

// parseDetail accepts a plain string or a list of validation entries with a msg field.
func parseDetail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return ""
	}
	msgs := make([]string, 0, len(items))
	for _, it := range items {
		if m := strings.TrimSpace(it.Msg); m != "" {
			msgs = append(msgs, m)
		}
	}
	return strings.Join(msgs, "; ")
}
