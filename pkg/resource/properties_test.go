package resource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "resource-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "application.yml")
	content := `app:
  server:
    port: ${WIDGET_TEST_PORT:8080}
    context-path: /weather-widget
  weather:
    api-key: ${WIDGET_TEST_MISSING_KEY:}
    read-timeout: 15s
  widget:
    default-city: Tirupati
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	os.Setenv("WIDGET_TEST_PORT", "9191")
	if err := Init(path); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestResolvesEnvironmentPlaceholders(t *testing.T) {
	if got := GetString("app.server.port"); got != "9191" {
		t.Fatalf("port = %q, want 9191", got)
	}
	if got := GetInt("app.server.port"); got != 9191 {
		t.Fatalf("port = %d, want 9191", got)
	}
}

func TestPlainValuesAreKept(t *testing.T) {
	if got := GetString("app.server.context-path"); got != "/weather-widget" {
		t.Fatalf("context path = %q", got)
	}
	if got := GetString("app.widget.default-city"); got != "Tirupati" {
		t.Fatalf("default city = %q", got)
	}
}

func TestEmptyDefaultResolvesToEmpty(t *testing.T) {
	if got := GetStringOrDefault("app.weather.api-key", "fallback"); got != "fallback" {
		t.Fatalf("api key = %q, want fallback", got)
	}
}

func TestDurations(t *testing.T) {
	if got := GetDuration("app.weather.read-timeout"); got != 15*time.Second {
		t.Fatalf("read timeout = %v", got)
	}
	if got := GetDurationOrDefault("app.weather.connection-timeout", 5*time.Second); got != 5*time.Second {
		t.Fatalf("connection timeout = %v", got)
	}
}

func TestResolveEnvVariable(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "plain", value: "metric", want: "metric"},
		{name: "default", value: "${WIDGET_TEST_UNSET:metric}", want: "metric"},
		{name: "env", value: "${WIDGET_TEST_PORT:1}", want: "9191"},
		{name: "embedded is not resolved", value: "prefix-${WIDGET_TEST_PORT}", want: "prefix-${WIDGET_TEST_PORT}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveEnvVariable(tt.value); got != tt.want {
				t.Fatalf("resolveEnvVariable(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
