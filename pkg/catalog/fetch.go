package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrDomainNotAllowed = errors.New("domain not allowed")
	ErrTooLarge         = errors.New("page too large")
)

// Fetcher downloads catalog sources from allow-listed hosts.
type Fetcher struct {
	Client   *http.Client
	Allow    map[string]bool
	MaxBytes int
}

func NewFetcher(allow []string, maxBytes int) *Fetcher {
	m := make(map[string]bool, len(allow))
	for _, h := range allow {
		m[strings.ToLower(h)] = true
	}
	f := &Fetcher{Allow: m, MaxBytes: maxBytes}
	f.Client = &http.Client{Timeout: 20 * time.Second, CheckRedirect: f.checkRedirect}
	return f
}

// allowed matches on host name only, so an explicit port does not matter.
func (f *Fetcher) allowed(u *url.URL) bool {
	return f.Allow[strings.ToLower(u.Hostname())]
}

// checkRedirect keeps every hop on the allow list.
func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 5 {
		return errors.New("too many redirects")
	}
	if !f.allowed(req.URL) {
		return fmt.Errorf("%w: redirect to %s", ErrDomainNotAllowed, req.URL.Hostname())
	}
	return nil
}

// Fetch returns the body and its detected format.
func (f *Fetcher) Fetch(ctx context.Context, raw string) (Format, io.Reader, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", nil, fmt.Errorf("bad url %q", raw)
	}
	if !f.allowed(u) {
		return "", nil, fmt.Errorf("%w: %s", ErrDomainNotAllowed, u.Hostname())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("fetch %s: status %d", raw, resp.StatusCode)
	}
	if resp.ContentLength > int64(f.MaxBytes) {
		return "", nil, ErrTooLarge
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(f.MaxBytes)+1))
	if err != nil {
		return "", nil, err
	}
	if len(b) > f.MaxBytes {
		return "", nil, ErrTooLarge
	}

	format, err := FormatOf(resp.Header.Get("Content-Type"))
	if err != nil {
		// servers often send octet-stream for spreadsheets
		if format, err = FormatOf(u.Path); err != nil {
			return "", nil, err
		}
	}
	return format, bytes.NewReader(b), nil
}
