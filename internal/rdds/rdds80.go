// Package rdds implements the RDDS80 (web-WHOIS) check, built on the
// shared preamble in internal/rddsweb and the HTTP wrapper in
// internal/httpclient. RDDS43 lives in its own package
// (internal/rdds43) since it shares no code with the HTTP-based checks.
package rdds

import (
	"context"
	"time"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/httpclient"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rddsweb"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

// Result80 is the outcome of one RDDS80 check.
type Result80 struct {
	RTTOrCode int
	IP        string
}

// Run80 executes the RDDS80 check against baseURL.
func Run80(ctx context.Context, r *resolver.Resolver, baseURL string, family rsmtypes.IPFamily, timeout time.Duration, maxRedirects int) Result80 {
	pre, preErr := rddsweb.Prepare(ctx, r, baseURL, family, "")
	if preErr != errcode.NoValue {
		return Result80{RTTOrCode: mapRDDS80InternalCode(preErr)}
	}

	res, herr := httpclient.Get(ctx, pre.URL, pre.HostHeader, pre.IP, timeout, maxRedirects, false)
	if herr != (errcode.HTTPError{}) {
		return Result80{RTTOrCode: errcode.MapHTTPErrorRDDS80(herr), IP: pre.IP}
	}
	return Result80{RTTOrCode: res.RTTMillis, IP: pre.IP}
}

// mapRDDS80InternalCode translates the shared preamble's RDAP-shaped
// internal codes onto the RDDS80 band (rddsweb.Prepare always returns
// its errors in terms of the RDAP internal codes since RDAP is its
// primary caller; RDDS80 shares the exact same failure kinds at the
// preamble stage, just under different numeric codes).
func mapRDDS80InternalCode(code int) int {
	switch code {
	case errcode.RDAPInternalIPUnsup:
		return errcode.RDDS80InternalIPUnsup
	default:
		return errcode.RDDS80InternalGeneral
	}
}
