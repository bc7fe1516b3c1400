package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/hashicorp/go-cleanhttp"

	"mediarelay/pkg/logging"
)

// ErrClosed is returned when a closed Manager is used.
var ErrClosed = errors.New("session manager is closed")

// Manager owns the HTTP session shared by every protocol backend of one
// device. Backends get the client through Client and must not close or
// reconfigure it; the Manager is released once by its owner.
type Manager struct {
	transport *http.Transport
	client    *http.Client

	mu     sync.Mutex
	closed bool
	active sync.WaitGroup
}

// NewManager creates a Manager with a pooled transport.
func NewManager() *Manager {
	transport := cleanhttp.DefaultPooledTransport()
	return &Manager{
		transport: transport,
		client:    &http.Client{Transport: transport},
	}
}

// Client returns the shared HTTP client.
func (m *Manager) Client() *http.Client {
	return m.client
}

// Do sends req with the shared client. In-flight requests are waited for by
// Close.
func (m *Manager) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	m.active.Add(1)
	m.mu.Unlock()
	defer m.active.Done()

	return m.client.Do(req)
}

// Closed reports whether Close has been called.
func (m *Manager) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close waits for in-flight requests started through Do, bounded by ctx, and
// drops idle connections. Closing twice returns ErrClosed.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.closed = true
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.active.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		logging.Warn("Session", "Gave up waiting for in-flight requests: %v", ctx.Err())
		err = ctx.Err()
	}

	m.transport.CloseIdleConnections()
	logging.Debug("Session", "Session manager closed")
	return err
}
