package claude

import "strings"

// retryablePatterns are API error signatures worth retrying. The SDK
// surfaces these as error strings; matching on substrings keeps us
// independent of its error types.
var retryablePatterns = []string{
	"rate_limit_error",
	"overloaded_error",
	"api_error",
	"too many requests",
	"request timeout",
	"internal server error",
	"bad gateway",
	"service unavailable",
	"gateway timeout",
}

// IsRetryable reports whether an API error is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range retryablePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}
