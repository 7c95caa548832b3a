package apiclient

import (
	"net/url"
	"strings"
)

// NormalizeURL trims raw and makes sure it is an absolute http(s) URL. A
// value without a scheme gets "https://" prepended. Blank input yields "".
// This is a convenience for user typing, not a security check.
func NormalizeURL(field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	if isAbsoluteURL(s) {
		return s, nil
	}
	if !strings.Contains(s, "://") {
		if prefixed := "https://" + s; isAbsoluteURL(prefixed) {
			return prefixed, nil
		}
	}
	return "", &ValidationError{Field: field, Message: "Enter a valid URL."}
}

func isAbsoluteURL(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || strings.Contains(host, ".")
}
