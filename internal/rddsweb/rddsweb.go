// Package rddsweb implements the preamble shared by the RDDS80 and RDAP
// drivers: split the configured base URL, resolve the host through the
// probe's resolver, pick a random supported IP, and rebuild the URL with
// the IP literal substituted for the host while keeping the original
// host as the Host header.
package rddsweb

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/dnsprim"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/urlsplit"
)

// Preamble is the outcome of the shared setup: the literal-IP URL ready
// to hand to internal/httpclient, the original host to send as the Host
// header, and the IP chosen (for the JSON result's "ip" field).
type Preamble struct {
	URL        string
	HostHeader string
	IP         string
}

// Prepare runs steps 1-6 of the RDDS80/RDAP driver's common preamble.
// extraPath is appended after the literal-IP substitution (used by RDAP
// to append "/domain/<testedname>"); pass "" for RDDS80.
func Prepare(ctx context.Context, r *resolver.Resolver, baseURL string, family rsmtypes.IPFamily, extraPath string) (Preamble, int) {
	split, err := urlsplit.Parse(baseURL)
	if err != nil {
		return Preamble{}, errcode.RDAPInternalGeneral
	}

	ips, resErr := dnsprim.ResolveHost(ctx, r, split.Host, family)
	if resErr != errcode.ResolverOK {
		return Preamble{}, errcode.RDAPInternalGeneral
	}
	if len(ips) == 0 {
		return Preamble{}, errcode.RDAPInternalIPUnsup
	}

	ip := ips[rand.Intn(len(ips))] //nolint:gosec // not a security-sensitive selection

	path := split.Path
	if extraPath != "" {
		if strings.HasSuffix(path, "/") {
			path += strings.TrimPrefix(extraPath, "/")
		} else {
			path += extraPath
		}
	}

	literalHost := ip
	if strings.Contains(ip, ":") {
		literalHost = "[" + ip + "]"
	}
	url := fmt.Sprintf("%s%s:%d%s", split.Scheme, literalHost, split.Port, path)

	return Preamble{URL: url, HostHeader: split.Host, IP: ip}, errcode.NoValue
}
