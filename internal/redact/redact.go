// Package redact removes sensitive information from strings and request
// bodies before they are logged or returned in error details. It covers
// connection strings, credentials, bearer tokens, file paths, stack traces,
// email addresses and SQL fragments.
package redact

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"

	// FilteredPlaceholder replaces the value of a sensitive JSON body field.
	FilteredPlaceholder = "[FILTERED]"
)

// SensitiveFields are the JSON body keys whose values never reach the logs.
var SensitiveFields = []string{"password", "refreshToken", "accessToken"}

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; connection strings go before emails so user:pass@host
// is not half-matched as an address.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|sqlite|file|db|database)://[^@\s]+@`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), RedactedJWTPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|secret|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
	{
		regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\S]*?\b(FROM|INTO|SET|WHERE)\b[^;]*`,
		),
		"[REDACTED_SQL]",
	},
}

var dsnPassword = regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*=\s*('(?:[^'\\]|\\.)*'|[^\s&]*)`)

// DSNPassword replaces password values in key/value connection strings and
// URL query parameters with mask. The key is kept so the DSN stays readable.
func DSNPassword(dsn, mask string) string {
	return dsnPassword.ReplaceAllString(dsn, "${1}="+mask)
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// JSONBody returns a copy of a JSON request body with every SensitiveFields
// value replaced by FilteredPlaceholder, at any depth. A body that is not
// valid JSON is returned as a single placeholder rather than raw.
func JSONBody(body []byte) string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return ""
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return RedactionPlaceholder
	}

	filtered, err := json.Marshal(filterValue(decoded))
	if err != nil {
		return RedactionPlaceholder
	}
	return string(filtered)
}

func filterValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			if isSensitiveField(k) {
				val[k] = FilteredPlaceholder
				continue
			}
			val[k] = filterValue(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = filterValue(inner)
		}
		return val
	default:
		return v
	}
}

func isSensitiveField(key string) bool {
	for _, f := range SensitiveFields {
		if strings.EqualFold(key, f) {
			return true
		}
	}
	return false
}
