// Package rdds43 implements the plain-text WHOIS (port 43) client: open a
// TCP connection, send the query line, read the reply to EOF or timeout,
// and extract the advertised name servers.
package rdds43

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
)

const nsBufLimit = 128

// Result is the outcome of one RDDS43 query.
type Result struct {
	RTTMillis   int
	NameServers []string
}

// Query connects to ip:port, sends query+"\r\n", and reads the reply
// until EOF or timeout.
func Query(ctx context.Context, ip string, port int, query string, timeout time.Duration, nsPrefix string) (Result, int) {
	if nsPrefix == "" {
		nsPrefix = "Name Server:"
	}

	dialer := &net.Dialer{Timeout: timeout}
	start := time.Now()

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(ip, fmt.Sprintf("%d", port)))
	if err != nil {
		if isTimeout(err) {
			return Result{}, errcode.RDDS43TO
		}
		return Result{}, errcode.RDDS43Econ
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(timeout))
	}

	if _, err := conn.Write([]byte(query + "\r\n")); err != nil {
		if isTimeout(err) {
			return Result{}, errcode.RDDS43TO
		}
		return Result{}, errcode.RDDS43Econ
	}

	var body strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			body.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	rtt := time.Since(start)

	text := body.String()
	if text == "" {
		return Result{RTTMillis: int(rtt.Milliseconds())}, errcode.RDDS43Empty
	}

	names := extractNameServers(text, nsPrefix)
	if len(names) == 0 {
		return Result{RTTMillis: int(rtt.Milliseconds())}, errcode.RDDS43NoNS
	}
	return Result{RTTMillis: int(rtt.Milliseconds()), NameServers: names}, errcode.NoValue
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	if t, ok := err.(timeouter); ok {
		return t.Timeout()
	}
	return false
}

// extractNameServers scans body case-insensitively for prefix, skips
// leading blanks, then reads a run of host-name characters up to
// whitespace or nsBufLimit bytes. The result is deduplicated and sorted.
func extractNameServers(body, prefix string) []string {
	lower := strings.ToLower(body)
	prefixLower := strings.ToLower(prefix)

	var names []string
	seen := map[string]bool{}

	pos := 0
	for {
		idx := strings.Index(lower[pos:], prefixLower)
		if idx < 0 {
			break
		}
		start := pos + idx + len(prefixLower)
		pos = start

		for start < len(body) && (body[start] == ' ' || body[start] == '\t') {
			start++
		}

		end := start
		for end < len(body) && end-start < nsBufLimit && isHostChar(body[end]) {
			end++
		}

		name := strings.TrimSpace(body[start:end])
		if name != "" && !seen[strings.ToLower(name)] {
			seen[strings.ToLower(name)] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}

func isHostChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-':
		return true
	default:
		return false
	}
}
