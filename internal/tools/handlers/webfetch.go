package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"toolchat/internal/tools"
	"toolchat/internal/webtext"

	"github.com/tidwall/gjson"
)

const (
	// DefaultProxyURL is the public relay that fetches pages on our behalf and
	// wraps them as {"contents": "<html>"}.
	DefaultProxyURL     = "https://api.allorigins.win/get"
	DefaultPreviewLimit = 500

	maxRelayBody = 5 << 20
	acceptHTML   = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

var (
	ErrInvalidURL        = errors.New("invalid URL format")
	ErrUnsupportedScheme = errors.New("only HTTP and HTTPS URLs are supported")
)

// StatusError is a non-2xx answer from the relay.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay responded with status %d", e.Code)
}

// WebFetchHandler fetches a page through the relay and summarizes it as a
// title plus a short text preview. Args are joined with single spaces.
type WebFetchHandler struct {
	// Client performs the relay request; nil means http.DefaultClient.
	// Timeouts belong on the client.
	Client       *http.Client
	ProxyURL     string
	PreviewLimit int
}

func (WebFetchHandler) Name() string         { return "fetch" }
func (WebFetchHandler) Kind() tools.ToolKind { return tools.ToolWebFetch }
func (WebFetchHandler) Aliases() []string    { return []string{"fetchwebpage", "webpage"} }

func (h WebFetchHandler) Handle(ctx context.Context, inv tools.Invocation) string {
	out, err := h.Fetch(ctx, strings.Join(inv.Args, " "))
	if err != nil {
		return describeFetchError(err)
	}
	return out
}

func describeFetchError(err error) string {
	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrInvalidURL):
		return "Error: Invalid URL format"
	case errors.Is(err, ErrUnsupportedScheme):
		return "Error: Only HTTP and HTTPS URLs are supported"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Error: Failed to fetch webpage (Status: %d)", statusErr.Code)
	default:
		return "Error: Unable to fetch webpage - " + err.Error()
	}
}

// Fetch validates target, retrieves it through the relay and returns
// "Title: <title>\n\nContent preview: <text>".
func (h WebFetchHandler) Fetch(ctx context.Context, target string) (string, error) {
	u, err := ValidateTarget(target)
	if err != nil {
		return "", err
	}
	relayURL, err := h.relayURL(u.String())
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, relayURL, nil)
	if err != nil {
		return "", fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Accept", acceptHTML)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRelayBody))
	if err != nil {
		return "", fmt.Errorf("read relay response: %w", err)
	}
	page, err := relayContents(body)
	if err != nil {
		return "", err
	}

	limit := h.PreviewLimit
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	text := webtext.Truncate(webtext.VisibleText(page), limit)
	return fmt.Sprintf("Title: %s\n\nContent preview: %s", webtext.Title(page), text), nil
}

// ValidateTarget parses target as an absolute http or https URL. Like a
// browser, it tolerates a missing or short "//" after the scheme, so
// "http:example.com" and "http:/example.com" both mean http://example.com.
func ValidateTarget(target string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || u.Scheme == "" {
		return nil, ErrInvalidURL
	}
	// url.Parse lower-cases the scheme; "localhost:8080" is scheme "localhost".
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrUnsupportedScheme
	}
	if u.Host == "" {
		u, err = withAuthority(u)
		if err != nil {
			return nil, ErrInvalidURL
		}
	}
	if u.Host == "" {
		return nil, ErrInvalidURL
	}
	return u, nil
}

// withAuthority re-reads the text after "scheme:" as "//authority/path".
func withAuthority(u *url.URL) (*url.URL, error) {
	rest := u.Opaque
	if rest == "" {
		rest = strings.TrimLeft(u.EscapedPath(), "/")
	}
	if rest == "" {
		return u, nil
	}
	raw := u.Scheme + "://" + rest
	if u.RawQuery != "" || u.ForceQuery {
		raw += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		raw += "#" + u.EscapedFragment()
	}
	return url.Parse(raw)
}

func (h WebFetchHandler) relayURL(target string) (string, error) {
	proxy := strings.TrimSpace(h.ProxyURL)
	if proxy == "" {
		proxy = DefaultProxyURL
	}
	u, err := url.Parse(proxy)
	if err != nil {
		return "", fmt.Errorf("relay url: %w", err)
	}
	q := u.Query()
	q.Set("url", target)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func relayContents(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.New("relay response is not valid JSON")
	}
	contents := gjson.GetBytes(body, "contents")
	if contents.Type != gjson.String {
		return "", errors.New("relay response has no contents")
	}
	return contents.String(), nil
}
