// Package redact scrubs credential material from resource URLs before they
// are logged. Manifest files may point at endpoints that embed userinfo or
// signed query parameters; log output must keep the identifying parts of a
// URL (scheme, host, path) while dropping anything secret.
package redact

import (
	"net/url"
	"regexp"
)

// RedactionPlaceholder replaces masked query parameter values.
const RedactionPlaceholder = "REDACTED"

// Precompiled patterns
var (
	// sensitiveParamRegex matches query parameter names that carry
	// credential material.
	sensitiveParamRegex = regexp.MustCompile(
		`(?i)(token|secret|key|password|passwd|credential|signature|sig|auth)`,
	)

	// userinfoRegex strips user:pass@ fragments from strings that do not
	// parse as URLs.
	userinfoRegex = regexp.MustCompile(`//[^/@\s]+@`)

	// urlRegex finds URL-shaped substrings inside free text.
	urlRegex = regexp.MustCompile(`\bhttps?://[^\s"']+`)
)

// URL returns a copy of raw that is safe to log: userinfo is dropped and the
// values of credential-bearing query parameters are masked. Input that does
// not parse as a URL is only scrubbed of its userinfo fragment.
func URL(raw string) string {
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return userinfoRegex.ReplaceAllString(raw, "//")
	}

	u.User = nil

	q := u.Query()
	masked := false
	for name, values := range q {
		if !sensitiveParamRegex.MatchString(name) {
			continue
		}
		for i := range values {
			values[i] = RedactionPlaceholder
		}
		q[name] = values
		masked = true
	}
	if masked {
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// String scrubs every URL-shaped substring in s with URL.
func String(s string) string {
	if s == "" {
		return s
	}
	return urlRegex.ReplaceAllStringFunc(s, URL)
}

// Error redacts an error's message for logging. It returns the empty string
// for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
