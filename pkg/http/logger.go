package http

import (
	"net/url"

	"go.uber.org/zap"

	"weather-widget/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called after an error HTTP status or when no response was received (httpStatus 0)
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)
}

// ZapHTTPLogger writes client traffic through pkg/log at debug level, errors at warn level.
// Query parameters listed in redact are masked before logging.
type ZapHTTPLogger struct {
	name   string
	redact []string
}

// NewZapHTTPLogger creates a logger tagged with the given client name.
func NewZapHTTPLogger(name string, redactQueryParams ...string) *ZapHTTPLogger {
	return &ZapHTTPLogger{name: name, redact: redactQueryParams}
}

func (l *ZapHTTPLogger) LogRequest(method, rawURL string, headers map[string]string, body string) {
	log.Debug("http request",
		zap.String("client", l.name),
		zap.String("method", method),
		zap.String("url", l.RedactURL(rawURL)))
}

func (l *ZapHTTPLogger) LogResponseSuccess(method, rawURL string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64) {
	log.Debug("http response",
		zap.String("client", l.name),
		zap.String("method", method),
		zap.String("url", l.RedactURL(rawURL)),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (l *ZapHTTPLogger) LogResponseError(method, rawURL string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("http response error",
		zap.String("client", l.name),
		zap.String("method", method),
		zap.String("url", l.RedactURL(rawURL)),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("response", responseBody),
		zap.Error(err))
}

// RedactURL masks the configured query parameters of rawURL.
func (l *ZapHTTPLogger) RedactURL(rawURL string) string {
	if len(l.redact) == 0 {
		return rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	for _, key := range l.redact {
		if query.Has(key) {
			query.Set(key, "***")
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
