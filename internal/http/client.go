package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultChunkSize is the buffer size used when streaming bodies to disk.
const DefaultChunkSize = 32 * 1024

// StatusError is returned when a server answers with anything but 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// IsStatus reports whether err is a *StatusError.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// Options configures a Client.
type Options struct {
	// UserAgent is sent with every request. Empty means "birdsound-dl".
	UserAgent string

	// Timeout bounds each request including the body read. Zero leaves the
	// transport default (no overall timeout).
	Timeout time.Duration

	// ProxyURL routes requests through a proxy. Empty uses the environment
	// (HTTP_PROXY, HTTPS_PROXY, NO_PROXY).
	ProxyURL string

	// ChunkSize is the copy buffer size for DownloadFile. Zero means
	// DefaultChunkSize.
	ChunkSize int
}

// Client wraps HTTP operations used by the harvester.
//
// Client provides:
//   - Configured User-Agent header
//   - Optional timeout and proxy
//   - Fetching small documents into memory
//   - File download in fixed-size chunks with progress tracking
//   - File size retrieval via HEAD requests
//
// Example usage:
//
//	client, err := NewClient(Options{})
//
//	// Fetch a metadata document
//	body, err := client.Get(ctx, "https://example.org/record/42")
//
//	// Download file with progress
//	n, err := client.DownloadFile(ctx, mp3URL, "/path/to/file.mp3", nil)
type Client struct {
	httpClient *http.Client
	userAgent  string
	chunkSize  int
}

// NewClient creates a new HTTP client from opts.
//
// Returns an error only when opts.ProxyURL does not parse.
func NewClient(opts Options) (*Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if p := strings.TrimSpace(opts.ProxyURL); p != "" {
		u, err := url.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(u)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "birdsound-dl"
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		userAgent: userAgent,
		chunkSize: chunkSize,
	}, nil
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
// Wrapping an *os.File also hides its ReadFrom method, so io.CopyBuffer
// really copies through the given buffer.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// -1 when unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

func (c *Client) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	return c.httpClient.Do(req)
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request cannot be built or sent
//   - The response status is not 200 OK (a *StatusError)
//   - Reading the body fails
//
// Example:
//
//	doc, err := client.Get(ctx, "https://example.org/record/42")
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// This is used to pre-calculate the total download size for progress
// display. Returns an error if the request fails, the status is not
// 200 OK, or the server sends no Content-Length.
func (c *Client) GetFileSize(ctx context.Context, rawURL string) (int64, error) {
	resp, err := c.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", rawURL)
	}

	return resp.ContentLength, nil
}

// DownloadFile streams the body at rawURL into destPath.
//
// The file is only created once the server has answered 200 OK; it is
// truncated if it exists. The body is copied in fixed-size chunks. A
// failure mid-stream leaves the partial file in place and returns the
// number of bytes written so far along with the error.
//
// Parameters:
//   - ctx: Context for cancellation
//   - rawURL: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes)
func (c *Client) DownloadFile(ctx context.Context, rawURL, destPath string, onProgress func(written, total int64)) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	file, err := os.Create(destPath)
	if err != nil {
		return 0, err
	}

	pw := &ProgressWriter{
		Writer:   file,
		Total:    resp.ContentLength,
		OnUpdate: onProgress,
	}

	_, copyErr := io.CopyBuffer(pw, resp.Body, make([]byte, c.chunkSize))
	closeErr := file.Close()
	if copyErr != nil {
		return pw.Written, copyErr
	}
	return pw.Written, closeErr
}
