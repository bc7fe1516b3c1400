package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	m := NewManager()
	req, err := http.NewRequest(http.MethodHead, server.URL, nil)
	require.NoError(t, err)

	resp, err := m.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotNil(t, m.Client())
}

func TestManager_CloseOnce(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.Close(context.Background()))
	assert.True(t, m.Closed())
	assert.ErrorIs(t, m.Close(context.Background()), ErrClosed)

	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:1", nil)
	require.NoError(t, err)
	_, err = m.Do(req)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestManager_CloseWaitsForInFlightRequests(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := NewManager()
	done := make(chan error, 1)
	go func() {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := m.Do(req)
		if err == nil {
			resp.Body.Close()
		}
		done <- err
	}()
	<-started

	closed := make(chan error, 1)
	go func() { closed <- m.Close(context.Background()) }()

	select {
	case <-closed:
		t.Fatal("Close returned while a request was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-done)
	require.NoError(t, <-closed)
}

func TestManager_CloseHonoursContext(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer server.Close()
	defer close(release)

	m := NewManager()
	go func() {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		if resp, err := m.Do(req); err == nil {
			resp.Body.Close()
		}
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Close(ctx), context.DeadlineExceeded)
}
