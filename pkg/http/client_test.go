package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type cityResponse struct {
	Name string  `json:"name"`
	Temp float64 `json:"temp"`
}

type apiError struct {
	Cod     string `json:"cod"`
	Message string `json:"message"`
}

type recordingLogger struct {
	requests  []string
	successes []int
	failures  []int
}

func (l *recordingLogger) LogRequest(method, url string, headers map[string]string, body string) {
	l.requests = append(l.requests, method+" "+url)
}

func (l *recordingLogger) LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64) {
	l.successes = append(l.successes, httpStatus)
}

func (l *recordingLogger) LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error) {
	l.failures = append(l.failures, httpStatus)
}

func TestExecuteDecodesSuccess(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if r.URL.Path != "/data/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"name":"São Paulo","temp":21.7}`))
	}))
	defer srv.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(srv.URL+"/data/", ClientOptions{Logger: logger})

	resp, errResp, status, err := client.Request().
		WithContext(context.Background()).
		WithPath("weather").
		WithQueryParams(map[string]string{"q": "São Paulo", "units": "metric"}).
		WithSuccessResp(&cityResponse{}).
		WithErrorResp(&apiError{}).
		Execute()

	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if errResp != nil {
		t.Fatalf("unexpected error response %v", errResp)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	city := resp.(*cityResponse)
	if city.Name != "São Paulo" || city.Temp != 21.7 {
		t.Fatalf("unexpected body %+v", city)
	}
	if gotQuery != "q=S%C3%A3o+Paulo&units=metric" {
		t.Fatalf("query not escaped: %s", gotQuery)
	}
	if len(logger.requests) != 1 || len(logger.successes) != 1 || len(logger.failures) != 0 {
		t.Fatalf("unexpected logger calls %+v", logger)
	}
}

func TestExecuteDecodesErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	client := NewHttpClient(srv.URL, ClientOptions{})
	resp, errResp, status, err := client.Request().
		WithPath("/weather").
		WithSuccessResp(&cityResponse{}).
		WithErrorResp(&apiError{}).
		Execute()

	if err == nil {
		t.Fatal("expected error")
	}
	if resp != nil {
		t.Fatalf("unexpected success response %v", resp)
	}
	if status != http.StatusNotFound {
		t.Fatalf("status = %d", status)
	}
	body, ok := errResp.(*apiError)
	if !ok || body.Message != "city not found" {
		t.Fatalf("unexpected error response %#v", errResp)
	}
}

func TestExecuteUndecodableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	client := NewHttpClient(srv.URL, ClientOptions{})
	_, errResp, status, err := client.Request().
		WithPath("/weather").
		WithSuccessResp(&cityResponse{}).
		WithErrorResp(&apiError{}).
		Execute()

	if err == nil || status != http.StatusBadGateway {
		t.Fatalf("status = %d, err = %v", status, err)
	}
	if errResp != nil {
		t.Fatalf("expected nil error response, got %#v", errResp)
	}
}

func TestExecuteMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":`))
	}))
	defer srv.Close()

	client := NewHttpClient(srv.URL, ClientOptions{})
	_, _, status, err := client.Request().
		WithPath("/weather").
		WithSuccessResp(&cityResponse{}).
		Execute()

	if err == nil {
		t.Fatal("expected decode error")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
}

func TestExecuteTransportErrorHasZeroStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(url, ClientOptions{ConnectionTimeout: time.Second, ReadTimeout: time.Second, Logger: logger})
	_, _, status, err := client.Request().
		WithPath("/weather").
		WithSuccessResp(&cityResponse{}).
		Execute()

	if err == nil {
		t.Fatal("expected transport error")
	}
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if len(logger.failures) != 1 || logger.failures[0] != 0 {
		t.Fatalf("unexpected logger failures %v", logger.failures)
	}
}

func TestExecuteHonoursContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHttpClient(srv.URL, ClientOptions{})
	_, _, _, err := client.Request().WithContext(ctx).WithPath("/slow").Execute()
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestExecuteTranscodesDeclaredCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=ISO-8859-1")
		_, _ = w.Write([]byte("{\"name\":\"Bras\xedlia\",\"temp\":24.1}"))
	}))
	defer srv.Close()

	client := NewHttpClient(srv.URL, ClientOptions{})
	resp, _, _, err := client.Request().
		WithPath("/weather").
		WithSuccessResp(&cityResponse{}).
		Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := resp.(*cityResponse).Name; got != "Brasília" {
		t.Fatalf("city = %q", got)
	}
}

func TestExecuteUnknownCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=x-unknown")
		_, _ = w.Write([]byte(`{"name":"Pune"}`))
	}))
	defer srv.Close()

	client := NewHttpClient(srv.URL, ClientOptions{})
	_, _, status, err := client.Request().
		WithPath("/weather").
		WithSuccessResp(&cityResponse{}).
		Execute()
	if err == nil || status != http.StatusOK {
		t.Fatalf("status = %d, err = %v", status, err)
	}
}

func TestExecuteSendsDefaultHeaders(t *testing.T) {
	var gotClient, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClient = r.Header.Get("X-Client")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHttpClient(srv.URL, ClientOptions{DefaultHeaders: map[string]string{"X-Client": "widget"}})
	_, _, status, err := client.Request().WithPath("/ping").Execute()
	if err != nil || status != http.StatusNoContent {
		t.Fatalf("status=%d err=%v", status, err)
	}
	if gotClient != "widget" || gotAccept != "application/json" {
		t.Fatalf("x-client %q accept %q", gotClient, gotAccept)
	}
}

func TestZapHTTPLoggerRedactsQuery(t *testing.T) {
	logger := NewZapHTTPLogger("openweather", "appid")
	got := logger.RedactURL("https://api.example.com/weather?appid=secret&q=Pune")
	if strings.Contains(got, "secret") {
		t.Fatalf("credential leaked: %s", got)
	}
	if !strings.Contains(got, "q=Pune") || !strings.Contains(got, "appid=%2A%2A%2A") {
		t.Fatalf("unexpected redacted url: %s", got)
	}
}
