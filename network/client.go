// Package network guards and performs every outgoing HTTP request.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/log"
	"github.com/spf13/viper"
)

// Client is the tuned HTTP client shared across the application.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// ErrNotAllowed is returned for requests to URLs outside the allow-list. No I/O happens for them.
var ErrNotAllowed = errors.New("url is not allowed")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Gate sends only the requests its allow-list permits.
type Gate struct {
	allow *AllowList
	doer  Doer
}

// New returns a gate over doer. A nil doer means Client.
func New(allow *AllowList, doer Doer) *Gate {
	if doer == nil {
		doer = Client
	}
	return &Gate{allow: allow, doer: doer}
}

// Default builds a gate from the network.* configuration.
func Default() (*Gate, error) {
	allow, err := ParseAllowList(viper.GetStringSlice(key.NetworkAllow))
	if err != nil {
		return nil, err
	}

	var doer Doer = Client
	if viper.GetBool(key.NetworkImpersonate) {
		doer = ImpersonatingClient()
	}

	return New(allow, doer), nil
}

// Allowed reports whether url may be requested.
func (g *Gate) Allowed(url string) bool {
	return g.allow.Allowed(url)
}

// Do sends req after checking it against the allow-list.
func (g *Gate) Do(req *http.Request) (*http.Response, error) {
	if !g.allow.Allowed(req.URL.String()) {
		log.WithField("url", req.URL.String()).Warn("blocked request")
		return nil, fmt.Errorf("%w: %s", ErrNotAllowed, req.URL)
	}

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", constant.UserAgent)
	}

	log.Tracef("%s %s", req.Method, req.URL)
	return g.doer.Do(req)
}

// Get issues a GET request for url.
func (g *Gate) Get(ctx context.Context, url string) (*http.Response, error) {
	if !g.allow.Allowed(url) {
		return nil, fmt.Errorf("%w: %s", ErrNotAllowed, url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return g.Do(req)
}

// Fetch reads the whole body of url, failing on non-2xx responses.
func (g *Gate) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := g.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	return body, nil
}
