package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrDecode       = errors.New("malformed response")
	ErrUnauthorized = common.ErrorUnauthorized
	ErrForbidden    = common.ErrorForbidden
	ErrNotFound     = common.ErrorNotFound
)

// detailKeys are top-level keys that carry a human readable message rather
// than a field name.
var detailKeys = []string{"detail", "error", "message"}

const nonFieldErrors = "non_field_errors"

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
	Body       []byte
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		if k == nonFieldErrors {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i == 0 && e.Detail == "" {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", k, strings.Join(e.Fields[k], ", "))
	}
	return b.String()
}

// Is maps well known status codes onto the shared sentinels so callers can
// use errors.Is without inspecting StatusCode.
func (e *APIError) Is(target error) bool {
	switch target {
	case common.ErrorUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case common.ErrorForbidden:
		return e.StatusCode == http.StatusForbidden
	case common.ErrorNotFound:
		return e.StatusCode == http.StatusNotFound
	case common.ErrorValidation:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// Field returns the first message reported for name, or "".
func (e *APIError) Field(name string) string {
	if msgs := e.Fields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// newAPIError decodes body leniently. Field values may be a string or a list
// of strings; anything else is rendered with its JSON text.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: body}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return e
	}

	for _, k := range detailKeys {
		if v, ok := raw[k]; ok {
			e.Detail = messages(v)[0]
			delete(raw, k)
			break
		}
	}

	if len(raw) > 0 {
		e.Fields = make(map[string][]string, len(raw))
		for k, v := range raw {
			if _, skip := detailOnly[k]; skip {
				continue
			}
			e.Fields[k] = messages(v)
		}
	}

	if e.Detail == "" {
		if msgs := e.Fields[nonFieldErrors]; len(msgs) > 0 {
			e.Detail = strings.Join(msgs, " ")
		}
	}
	return e
}

var detailOnly = map[string]struct{}{"detail": {}, "error": {}, "message": {}}

func messages(v json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return []string{s}
	}
	var list []string
	if err := json.Unmarshal(v, &list); err == nil && len(list) > 0 {
		return list
	}
	return []string{string(v)}
}

// ValidationError is a client-side rejection of an input field. No request
// is sent when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrorValidation
}
