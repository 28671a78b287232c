package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"toolchat/internal/tools"
)

func newRelay(t *testing.T, handler http.HandlerFunc) WebFetchHandler {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return WebFetchHandler{Client: ts.Client(), ProxyURL: ts.URL + "/get"}
}

func writeContents(t *testing.T, w http.ResponseWriter, page string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"contents": page, "status": map[string]any{"http_code": 200}}); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func TestWebFetchSuccess(t *testing.T) {
	var gotTarget, gotAccept, gotPath string
	h := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		gotTarget = r.URL.Query().Get("url")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		writeContents(t, w, `<html><head><title> Example Domain </title><style>h1{}</style></head>
<body><script>track()</script><h1>Example</h1>
<p>This   domain is for use in examples.</p></body></html>`)
	})

	got := h.Handle(context.Background(), tools.Invocation{Tool: "fetch", Args: []string{"https://example.com/path?x=1&y=2"}})
	want := "Title: Example Domain\n\nContent preview: Example Domain Example This domain is for use in examples."
	if got != want {
		t.Fatalf("Handle() = %q, want %q", got, want)
	}
	if gotTarget != "https://example.com/path?x=1&y=2" {
		t.Fatalf("relay received url=%q", gotTarget)
	}
	if gotPath != "/get" {
		t.Fatalf("relay path = %q", gotPath)
	}
	if !strings.HasPrefix(gotAccept, "text/html") {
		t.Fatalf("Accept = %q", gotAccept)
	}
}

func TestWebFetchTruncatesPreview(t *testing.T) {
	h := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		writeContents(t, w, "<p>"+strings.Repeat("word ", 200)+"</p>")
	})
	h.PreviewLimit = 20

	got := h.Handle(context.Background(), tools.Invocation{Args: []string{"http://example.com"}})
	want := "Title: No title\n\nContent preview: word word word word ..."
	if got != want {
		t.Fatalf("Handle() = %q, want %q", got, want)
	}
}

func TestWebFetchErrors(t *testing.T) {
	notFound := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	badJSON := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})
	noContents := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":{}}`))
	})

	cases := []struct {
		name   string
		h      WebFetchHandler
		target string
		want   string
	}{
		{"ftp scheme", notFound, "ftp://example.com/file", "Error: Only HTTP and HTTPS URLs are supported"},
		{"mailto scheme", notFound, "mailto:someone@example.com", "Error: Only HTTP and HTTPS URLs are supported"},
		{"not a url", notFound, "not a url", "Error: Invalid URL format"},
		{"empty", notFound, "", "Error: Invalid URL format"},
		{"missing host", notFound, "http://", "Error: Invalid URL format"},
		{"status", notFound, "https://example.com", "Error: Failed to fetch webpage (Status: 502)"},
		{"bad json", badJSON, "https://example.com", "Error: Unable to fetch webpage - relay response is not valid JSON"},
		{"no contents", noContents, "https://example.com", "Error: Unable to fetch webpage - relay response has no contents"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.h.Handle(context.Background(), tools.Invocation{Args: []string{tc.target}})
			if got != tc.want {
				t.Fatalf("Handle(%q) = %q, want %q", tc.target, got, tc.want)
			}
		})
	}
}

func TestWebFetchNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	h := WebFetchHandler{Client: &http.Client{Timeout: 20 * time.Millisecond}, ProxyURL: ts.URL}
	got := h.Handle(context.Background(), tools.Invocation{Args: []string{"https://example.com"}})
	if !strings.HasPrefix(got, "Error: Unable to fetch webpage - ") {
		t.Fatalf("Handle() = %q", got)
	}
}

func TestRelayURLKeepsExistingQuery(t *testing.T) {
	h := WebFetchHandler{ProxyURL: "https://relay.example/get?charset=utf-8"}
	got, err := h.relayURL("https://example.com/?q=a&b=c")
	if err != nil {
		t.Fatalf("relayURL: %v", err)
	}
	want := "https://relay.example/get?charset=utf-8&url=https%3A%2F%2Fexample.com%2F%3Fq%3Da%26b%3Dc"
	if got != want {
		t.Fatalf("relayURL() = %q, want %q", got, want)
	}
}

func TestValidateTargetToleratesMissingSlashes(t *testing.T) {
	cases := map[string]string{
		"http:example.com":          "http://example.com",
		"http:/example.com/a?b=1#c": "http://example.com/a?b=1#c",
		"HTTPS:///example.com/path": "https://example.com/path",
		"https://example.com/x?y=z": "https://example.com/x?y=z",
	}
	for in, want := range cases {
		u, err := ValidateTarget(in)
		if err != nil {
			t.Fatalf("ValidateTarget(%q) error: %v", in, err)
		}
		if got := u.String(); got != want {
			t.Fatalf("ValidateTarget(%q) = %q, want %q", in, got, want)
		}
	}
	for _, in := range []string{"http:", "http:/", "http://"} {
		if _, err := ValidateTarget(in); err != ErrInvalidURL {
			t.Fatalf("ValidateTarget(%q) error = %v, want ErrInvalidURL", in, err)
		}
	}
}

func TestWebFetchSendsNormalizedTargetToRelay(t *testing.T) {
	var gotTarget string
	h := newRelay(t, func(w http.ResponseWriter, r *http.Request) {
		gotTarget = r.URL.Query().Get("url")
		writeContents(t, w, "<title>T</title><p>ok</p>")
	})
	got := h.Handle(context.Background(), tools.Invocation{Args: []string{"http:example.com"}})
	if got != "Title: T\n\nContent preview: Tok" {
		t.Fatalf("Handle() = %q", got)
	}
	if gotTarget != "http://example.com" {
		t.Fatalf("relay received url=%q", gotTarget)
	}
}
