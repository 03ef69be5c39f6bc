package updater

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSource_RawVersion(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleRemote))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, WithSourceClient(server.Client()))
	text, err := src.RawVersion(context.Background())
	if err != nil {
		t.Fatalf("RawVersion failed: %v", err)
	}
	if text != sampleRemote {
		t.Errorf("body mismatch")
	}
	if gotUA != defaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, defaultUserAgent)
	}
}

func TestHTTPSource_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, WithSourceClient(server.Client()))
	_, err := src.RawVersion(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPSource(url).RawVersion(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestHTTPSource_InvalidUTF8(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, WithSourceClient(server.Client()))
	_, err := src.RawVersion(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestHTTPSource_UserAgentOption(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, WithSourceClient(server.Client()), WithSourceUserAgent("custom/1.0"))
	if _, err := src.RawVersion(context.Background()); err != nil {
		t.Fatalf("RawVersion failed: %v", err)
	}
	if gotUA != "custom/1.0" {
		t.Errorf("User-Agent = %q, want custom/1.0", gotUA)
	}
}
