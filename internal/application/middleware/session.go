package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-widget/pkg/log"
)

const (
	// SessionCookieName is the cookie holding the widget session ID
	SessionCookieName = "widget_session"

	sessionContextKey = "widgetSessionID"
)

// SessionConfig configures the widget session cookie
type SessionConfig struct {
	// Path scopes the cookie, usually the server context path
	Path string
	// MaxAge is the cookie lifetime; zero makes it a browser-session cookie
	MaxAge time.Duration
}

// Session assigns every request a widget session. The ID is read from the
// session cookie, or generated and set on the response when absent or malformed.
func Session(config SessionConfig) echo.MiddlewareFunc {
	path := config.Path
	if path == "" {
		path = "/"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = parsed.String()
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				log.Debug("Starting widget session", zap.String("session_id", sessionID))
			}

			// re-set on every request to extend MaxAge
			cookie := &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     path,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			if config.MaxAge > 0 {
				cookie.MaxAge = int(config.MaxAge.Seconds())
			}
			c.SetCookie(cookie)

			c.Set(sessionContextKey, sessionID)
			return next(c)
		}
	}
}

// SessionID returns the widget session of the request, or "" outside the Session middleware
func SessionID(c echo.Context) string {
	if id, ok := c.Get(sessionContextKey).(string); ok {
		return id
	}
	return ""
}
