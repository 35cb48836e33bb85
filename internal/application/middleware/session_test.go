package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func serveWithSession(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	var seen string
	e.Use(Session(SessionConfig{Path: "/weather-widget", MaxAge: time.Hour}))
	e.GET("/", func(c echo.Context) error {
		seen = SessionID(c)
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionCreatesCookie(t *testing.T) {
	rec, seen := serveWithSession(t, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("session id %q is not a uuid", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName || cookies[0].Value != seen {
		t.Fatalf("unexpected cookies %v", cookies)
	}
	if cookies[0].Path != "/weather-widget" || !cookies[0].HttpOnly || cookies[0].MaxAge != 3600 {
		t.Fatalf("unexpected cookie attributes %+v", cookies[0])
	}
}

func TestSessionReusesCookie(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})

	_, seen := serveWithSession(t, req)
	if seen != id {
		t.Fatalf("session id = %q, want %q", seen, id)
	}
}

func TestSessionReplacesMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})

	_, seen := serveWithSession(t, req)
	if seen == "not-a-uuid" || seen == "" {
		t.Fatalf("session id = %q", seen)
	}
}
