package logging

import (
	"regexp"

	"go.uber.org/zap"
)

// RedactedText replaces secrets in logged values.
const RedactedText = "[REDACTED]"

var (
	// password=xxx in key/value DSNs
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)
	// user:pass@host in URL DSNs
	userInfoPattern = regexp.MustCompile(`://[^:/@]+:[^@]+@`)
)

// NewLogger returns a development logger for the local environment and a
// production logger otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "test" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// SanitizeDSN strips passwords from a connection string before logging it.
func SanitizeDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	s := passwordPattern.ReplaceAllString(dsn, "${1}="+RedactedText)
	return userInfoPattern.ReplaceAllString(s, "://"+RedactedText+"@")
}
