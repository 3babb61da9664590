// Package http provides the HTTP client used to resolve metadata documents
// and download audio files.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Optional request timeout and proxy
//   - File downloads in fixed-size chunks with progress tracking
//   - File size retrieval via HEAD requests
//
// Non-200 responses are reported as *StatusError so callers can tell a
// missing resource apart from a transport failure.
//
// # Basic Usage
//
//	client, err := http.NewClient(http.Options{UserAgent: "birdsound-dl"})
//
//	// Fetch a metadata document
//	body, err := client.Get(ctx, "https://example.org/record/42")
//
//	// Download file with progress callback
//	n, err := client.DownloadFile(ctx, mp3URL, "/path/to/file.mp3", func(written, total int64) {
//	    fmt.Printf("%d bytes\n", written)
//	})
package http
