package figma

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ticketsmith/internal/types"
)

func TestGetDesignDataUnconfigured(t *testing.T) {
	c := NewClient(Config{})
	_, err := c.GetDesignData(context.Background(), "file:1:2")
	if !errors.Is(err, types.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency-unavailable, got %v", err)
	}
}

func TestGetDesignDataParsesNodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Figma-Token") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/v1/files/"):
			_, _ = w.Write([]byte(`{"nodes":{"1:2":{"document":{"id":"1:2","name":"Button","type":"FRAME","children":[{"name":"Label","characters":"Submit"}]}}}}`))
		case strings.HasPrefix(r.URL.Path, "/v1/images/"):
			_, _ = w.Write([]byte(`{"images":{}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(Config{Token: "tok", BaseURL: srv.URL, Timeout: 5 * time.Second})
	data, err := c.GetDesignData(context.Background(), "abc:1:2")
	if err != nil {
		t.Fatalf("get design data: %v", err)
	}
	if data.Document == nil || data.Document.Name != "Button" {
		t.Fatalf("unexpected document: %+v", data.Document)
	}
	if got := CollectText(data.Document, 0); len(got) != 1 || got[0] != "Submit" {
		t.Fatalf("unexpected text: %v", got)
	}
}

func TestGetDesignDataToleratesEmptyDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"nodes":{}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Token: "tok", BaseURL: srv.URL})
	data, err := c.GetDesignData(context.Background(), "abc:9:9")
	if err != nil {
		t.Fatalf("empty document must not error: %v", err)
	}
	if data.Document != nil {
		t.Fatalf("expected nil document")
	}
}

func TestDecodeScreenshotDataURI(t *testing.T) {
	shot, err := DecodeScreenshot("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(shot.Bytes) != "hello" || shot.Format != "png" {
		t.Fatalf("unexpected screenshot: %+v", shot)
	}
}

func TestSplitSelectionRef(t *testing.T) {
	fileKey, nodeID := splitSelectionRef("abc:1:2")
	if fileKey != "abc" || nodeID != "1:2" {
		t.Fatalf("unexpected split: %q %q", fileKey, nodeID)
	}
	fileKey, nodeID = splitSelectionRef("abc")
	if fileKey != "abc" || nodeID != "" {
		t.Fatalf("unexpected split: %q %q", fileKey, nodeID)
	}
}
