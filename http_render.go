package mdpreview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultHTTPMaxBytes caps a fetched document when HTTPRenderRequest.MaxBytes
// is zero.
const DefaultHTTPMaxBytes = 8 << 20

const markdownAccept = "text/markdown, text/x-markdown;q=0.9, text/plain;q=0.8, */*;q=0.1"

// ErrTooLarge reports a fetched document larger than the configured limit.
var ErrTooLarge = errors.New("document too large")

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL      string
	Client   *http.Client
	Writer   io.Writer
	Theme    Theme
	Options  []RenderOption
	MaxBytes int64
}

// HTTPRender fetches a markdown document over HTTP(S) and writes it as a
// compiled HTML page. The body is read in full, up to MaxBytes, before
// anything is written.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	if req.URL == "" {
		return fmt.Errorf("http render: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("http render: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := req.MaxBytes
	if limit <= 0 {
		limit = DefaultHTTPMaxBytes
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("http render: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("http render: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", markdownAccept)
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http render: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("http render: status %s", resp.Status)
	}
	src, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return fmt.Errorf("http render: read: %w", err)
	}
	if int64(len(src)) > limit {
		return fmt.Errorf("http render: %w: more than %d bytes", ErrTooLarge, limit)
	}
	return Render(RenderRequest{
		Reader:  bytes.NewReader(src),
		Writer:  req.Writer,
		Theme:   req.Theme,
		Options: req.Options,
	})
}
