// Package redact scrubs credentials from strings before they are logged or
// returned in error responses. Upstream SDK errors and database errors can
// echo API keys, bearer tokens and connection strings back to the caller.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Applied in order; earlier rules see the unmodified input.
var rules = []rule{
	// user:password@ in DSNs; keeps scheme and host
	{regexp.MustCompile(`(?i)\b((?:postgres|postgresql|mysql|mongodb|redis)://)[^@/\s]+@`), "${1}" + RedactedCredentialPlaceholder + "@"},
	// OpenAI keys: sk-..., sk-proj-...
	{regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{8,}`), RedactedKeyPlaceholder},
	// Google API keys
	{regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{20,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/=]{8,}`), "Bearer " + RedactedTokenPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), RedactedTokenPlaceholder},
	// key=value and "key": "value" forms
	{regexp.MustCompile(`(?i)\b(api[_-]?key|x-goog-api-key|password|passwd|secret|access[_-]?token)(["']?\s*[:=]\s*["']?)[^"'&\s,}]{3,}`), "${1}${2}" + RedactedCredentialPlaceholder},
	// absolute paths with at least three segments, e.g. from file errors
	{regexp.MustCompile(`(^|[\s"'(=])(?:/[\w.-]+){3,}`), "${1}" + RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
