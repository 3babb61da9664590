package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// truncatedHandler announces a body of 100 bytes, sends 10 and drops the connection.
func truncatedHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("response writer does not support hijacking")
			return
		}
		conn, buf, err := hj.Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		buf.WriteString("HTTP/1.1 200 OK\r\nContent-Length: 100\r\n\r\n0123456789")
		buf.Flush()
		conn.Close()
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(Options{ChunkSize: 4})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestClient_GetSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<doc/>"))
	}))
	defer srv.Close()

	body, err := newTestClient(t).Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "<doc/>" {
		t.Errorf("body = %q", body)
	}
	if gotUA != "birdsound-dl" {
		t.Errorf("User-Agent = %q, want birdsound-dl", gotUA)
	}
}

func TestClient_GetStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestClient(t).Get(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", se.StatusCode)
	}
	if !IsStatus(err) {
		t.Error("IsStatus should be true")
	}
}

func TestClient_DownloadFile(t *testing.T) {
	payload := bytes.Repeat([]byte("chirp"), 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "call.mp3")
	var updates int
	n, err := newTestClient(t).DownloadFile(context.Background(), srv.URL, dest, func(written, total int64) {
		updates++
	})
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}
	if n != int64(len(payload)) {
		t.Errorf("written = %d, want %d", n, len(payload))
	}
	got, _ := os.ReadFile(dest)
	if !bytes.Equal(got, payload) {
		t.Error("file content mismatch")
	}
	// 500 bytes through a 4 byte buffer must take many writes.
	if updates < 100 {
		t.Errorf("progress updates = %d, expected chunked writes", updates)
	}
}

func TestClient_DownloadFileNon200CreatesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "call.mp3")
	_, err := newTestClient(t).DownloadFile(context.Background(), srv.URL, dest, nil)
	if !IsStatus(err) {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("no file should be created for a non-200 response")
	}
}

func TestClient_DownloadFileTruncated(t *testing.T) {
	srv := httptest.NewServer(truncatedHandler(t))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "call.mp3")
	n, err := newTestClient(t).DownloadFile(context.Background(), srv.URL, dest, nil)
	if err == nil {
		t.Fatal("expected error for dropped connection")
	}
	if n != 10 {
		t.Errorf("written = %d, want 10", n)
	}
	// The partial file is left behind.
	if info, err := os.Stat(dest); err != nil || info.Size() != 10 {
		t.Errorf("partial file: %v, %v", info, err)
	}
}

func TestClient_GetFileSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		w.Header().Set("Content-Length", "1234")
	}))
	defer srv.Close()

	size, err := newTestClient(t).GetFileSize(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetFileSize: %v", err)
	}
	if size != 1234 {
		t.Errorf("size = %d, want 1234", size)
	}
}

func TestNewClient_InvalidProxy(t *testing.T) {
	if _, err := NewClient(Options{ProxyURL: "http://[::1"}); err == nil {
		t.Error("expected error for invalid proxy url")
	}
}

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	var lastWritten, lastTotal int64
	pw := &ProgressWriter{
		Writer: &buf,
		Total:  10,
		OnUpdate: func(written, total int64) {
			lastWritten, lastTotal = written, total
		},
	}
	pw.Write([]byte("abc"))
	pw.Write([]byte("de"))
	if lastWritten != 5 || lastTotal != 10 || pw.Written != 5 {
		t.Errorf("progress = %d/%d, Written=%d", lastWritten, lastTotal, pw.Written)
	}
}
