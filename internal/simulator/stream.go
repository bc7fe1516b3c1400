package simulator

import (
	"context"
	"net/http"
	"net/url"
	"path"

	"mediarelay/internal/api"
)

// stream implements api.Stream for a Backend. It is a separate type since
// the backend's own lifecycle is driven through relay.SetupData.
type stream struct {
	b *Backend
}

// PlayURL starts playing rawURL. http and https URLs are checked with a HEAD
// request over the shared session first.
func (s *stream) PlayURL(ctx context.Context, rawURL string, opts api.PlayURLOptions) error {
	b := s.b
	if err := b.serve(api.CapabilityStream, api.OpPlayURL); err != nil {
		return err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return b.operationError(api.OpPlayURL, "invalid URL: %w", err)
	}
	if b.sessions != nil && (u.Scheme == "http" || u.Scheme == "https") {
		if err := s.check(ctx, u.String()); err != nil {
			return err
		}
	}

	b.mu.Lock()
	b.streamURL = rawURL
	b.mu.Unlock()

	title := path.Base(u.Path)
	if title == "." || title == "/" {
		title = u.Host
	}
	start := opts.StartPosition
	b.update(func(p *api.Playing) {
		*p = api.Playing{
			MediaType:   api.MediaTypeVideo,
			DeviceState: api.DeviceStatePlaying,
			Title:       title,
			Position:    &start,
		}
	})
	return nil
}

func (s *stream) check(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return s.b.operationError(api.OpPlayURL, "build request: %w", err)
	}
	resp, err := s.b.sessions.Do(req)
	if err != nil {
		return s.b.operationError(api.OpPlayURL, "HEAD %s: %w", target, err)
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return s.b.operationError(api.OpPlayURL, "HEAD %s: unexpected status %s", target, resp.Status)
	}
	return nil
}

// Close stops the current stream.
func (s *stream) Close() error {
	b := s.b
	if err := b.serve(api.CapabilityStream, api.OpStreamClose); err != nil {
		return err
	}
	b.mu.Lock()
	wasStreaming := b.streamURL != ""
	b.streamURL = ""
	b.mu.Unlock()
	if wasStreaming {
		b.update(func(p *api.Playing) { *p = api.Playing{DeviceState: api.DeviceStateIdle} })
	}
	return nil
}

// StreamURL returns the URL being streamed, or "".
func (b *Backend) StreamURL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.streamURL
}

var _ api.Stream = (*stream)(nil)
