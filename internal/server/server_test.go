package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculator/internal/config"
	"github.com/zephyrtronium/calculator/internal/logging"
)

func testConfig() *config.Config {
	return &config.Config{
		AppName: "calculator",
		RunMode: "test",
		Server: config.Server{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
			MaxBodyBytes:    256,
		},
		Logger: config.Logger{Level: "info", Format: "text", Output: "stderr"},
	}
}

func post(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestCalculate(t *testing.T) {
	s := New(testConfig(), logging.Discard(), nil)
	cases := []struct {
		expr string
		want float64
	}{
		{"2 + 3 * 4", 14},
		{"2 * 3 + 4", 10},
		{"10 - 2 - 3", 5},
		{"100 / 5 / 2", 10},
		{"  2   +   3  ", 5},
		{"7 / 2", 3.5},
	}
	for _, c := range cases {
		body, err := json.Marshal(map[string]string{"expression": c.expr})
		require.NoError(t, err)
		w := post(t, s, string(body))
		assert.Equal(t, http.StatusOK, w.Code, c.expr)

		var resp CalculationResponse
		decode(t, w, &resp)
		assert.Equal(t, c.want, resp.Result, c.expr)
	}
}

func TestCalculateErrors(t *testing.T) {
	s := New(testConfig(), logging.Discard(), nil)
	cases := []struct {
		body string
		kind string
		msg  string
		pos  int
	}{
		{`{"expression": "5 / 0"}`, "DivisionByZero", "Division by zero", 5},
		{`{"expression": "2 3"}`, "MissingOperator", "Missing operator between numbers", 3},
		{`{"expression": "+5"}`, "LeadingOperator", "Expression can't start with operator", 1},
		{`{"expression": "5+"}`, "DanglingOperator", "Operator must be followed by a number", 2},
		{`{"expression": "2 & 3"}`, "InvalidCharacter", "Invalid character in expression '&'", 3},
		{`{"expression": "   "}`, "EmptyExpression", "Expression cannot be empty", 4},
		{`{"expression": null}`, "EmptyExpression", "Expression cannot be empty", 1},
		{`{}`, "EmptyExpression", "Expression cannot be empty", 1},
	}
	for _, c := range cases {
		w := post(t, s, c.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, c.body)

		var resp ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, c.kind, resp.Kind, c.body)
		assert.Equal(t, c.msg, resp.Error, c.body)
		assert.Equal(t, c.pos, resp.Pos, c.body)
	}
}

func TestCalculateBadBody(t *testing.T) {
	s := New(testConfig(), logging.Discard(), nil)
	for _, body := range []string{``, `{`, `"2 + 2"`, `{"expression": 4}`} {
		w := post(t, s, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, msgBadRequest, resp.Error, body)
		assert.Empty(t, resp.Kind, body)
	}
}

func TestCalculateTooLarge(t *testing.T) {
	s := New(testConfig(), logging.Discard(), nil)
	body := `{"expression": "` + strings.Repeat("1 + ", 100) + `1"}`
	w := post(t, s, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCalculateInternalError(t *testing.T) {
	eval := func(string) (float64, error) {
		return 0, errors.New("disk on fire")
	}
	s := New(testConfig(), logging.Discard(), eval)
	w := post(t, s, `{"expression": "1 + 1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, msgServerFailed, resp.Error)
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestCalculatePanic(t *testing.T) {
	eval := func(string) (float64, error) {
		panic("index out of range")
	}
	s := New(testConfig(), logging.Discard(), eval)
	w := post(t, s, `{"expression": "1 + 1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, msgServerFailed, resp.Error)
}

func TestRequestID(t *testing.T) {
	s := New(testConfig(), logging.Discard(), nil)

	w := post(t, s, `{"expression": "1"}`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
}

func TestServe(t *testing.T) {
	s := New(testConfig(), logging.Discard(), nil)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	url := "http://" + l.Addr().String() + "/api/calculate"
	resp, err := http.Post(url, "application/json", strings.NewReader(`{"expression": "6 * 7"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body CalculationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 42.0, body.Result)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
