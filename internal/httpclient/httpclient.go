// Package httpclient wraps net/http.Client with the knobs the RDDS80 and
// RDAP checks share: a forced literal-IP dial target, a Host header
// override, a redirect cap, and no TLS verification (the probe
// deliberately never validates RDDS80/RDAP server certificates).
package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
)

const userAgent = "ZabbixRsmProbe/1.0"

// Result is the outcome of one HTTP exchange.
type Result struct {
	RTTMillis int
	Body      []byte
}

// Get performs a GET against urlStr, dialing ip directly instead of
// resolving hostHeader, but presenting hostHeader as the virtual host.
// captureBody controls whether the response body is read and returned
// (RDAP needs the JSON payload; RDDS80 only needs the status).
func Get(ctx context.Context, urlStr, hostHeader, ip string, timeout time.Duration, maxRedirects int, captureBody bool) (Result, errcode.HTTPError) {
	dialer := &net.Dialer{Timeout: timeout}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			_, port, err := net.SplitHostPort(addr)
			if err != nil {
				port = portFor(network, urlStr)
			}
			return dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
		},
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // historical behavior, see spec
	}
	client := &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return Result{}, errcode.PreStatusHTTPError(errcode.HTTPPreStatusEHTTP)
	}
	req.Host = hostHeader
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := client.Do(req)
	rtt := time.Since(start)
	if err != nil {
		return Result{}, classifyTransportError(err, urlStr)
	}
	defer resp.Body.Close()

	var body []byte
	if captureBody {
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return Result{}, errcode.PreStatusHTTPError(errcode.HTTPPreStatusNoCode)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{RTTMillis: int(rtt.Milliseconds())}, errcode.StatusHTTPError(resp.StatusCode)
	}
	return Result{RTTMillis: int(rtt.Milliseconds()), Body: body}, errcode.HTTPError{}
}

var errTooManyRedirects = fmt.Errorf("httpclient: too many redirects")

func portFor(network, urlStr string) string {
	if len(urlStr) >= 8 && urlStr[:8] == "https://" {
		return "443"
	}
	return "80"
}

func classifyTransportError(err error, urlStr string) errcode.HTTPError {
	type timeouter interface{ Timeout() bool }
	if t, ok := err.(timeouter); ok && t.Timeout() {
		return errcode.PreStatusHTTPError(errcode.HTTPPreStatusTimeout)
	}
	if errors.Is(err, errTooManyRedirects) {
		return errcode.PreStatusHTTPError(errcode.HTTPPreStatusEMaxRedirects)
	}
	if len(urlStr) >= 8 && urlStr[:8] == "https://" {
		return errcode.PreStatusHTTPError(errcode.HTTPPreStatusEHTTPS)
	}
	if len(urlStr) >= 7 && urlStr[:7] == "http://" {
		return errcode.PreStatusHTTPError(errcode.HTTPPreStatusEHTTP)
	}
	return errcode.PreStatusHTTPError(errcode.HTTPPreStatusEcon)
}
