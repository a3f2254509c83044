package adapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/logger"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func TestGetRetriesAreCapped(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := adapter.NewHTTPClient(5*time.Second, 1)
	err := client.Get(context.Background(), server.URL, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retryable status code 500")

	// One retry on top of the first attempt, then give up
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := adapter.NewHTTPClient(5*time.Second, 3)
	err := client.Get(context.Background(), server.URL, nil, nil)
	require.Error(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestGetUnmarshalsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"GopherCon"}`))
	}))
	defer server.Close()

	client := adapter.NewHTTPClient(5*time.Second, 3)
	var result struct {
		Name string `json:"name"`
	}
	require.NoError(t, client.Get(context.Background(), server.URL, nil, &result))
	assert.Equal(t, "GopherCon", result.Name)
}
