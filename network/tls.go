package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mapreel/mapreel/log"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

var (
	impersonating     *http.Client
	impersonatingOnce sync.Once
)

// ImpersonatingClient returns a client presenting a Chrome TLS fingerprint.
// HTTPS requests try HTTP/2 first and fall back to HTTP/1.1; plain HTTP goes through the tuned transport.
func ImpersonatingClient() *http.Client {
	impersonatingOnce.Do(func() {
		impersonating = &http.Client{
			Timeout: time.Minute,
			Transport: &fingerprintTransport{
				h2: &http2.Transport{
					DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
						return dialTLS(ctx, network, addr, "h2", "http/1.1")
					},
				},
				h1: &http.Transport{
					DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
						return dialTLS(ctx, network, addr, "http/1.1")
					},
				},
				plain: newTransport(),
			},
		}
	})

	return impersonating
}

type fingerprintTransport struct {
	h2, h1 http.RoundTripper
	plain  http.RoundTripper
}

func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.plain.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// only body-less requests can be replayed
	if req.Body != nil && req.Body != http.NoBody {
		return nil, err
	}

	log.Debugf("h2 to %s failed, retrying over http/1.1: %s", req.URL.Host, err)
	return t.h1.RoundTrip(req)
}

func dialTLS(ctx context.Context, network, addr string, protos ...string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
