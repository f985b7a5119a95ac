// Package rdap implements the RDAP check: the shared RDDS80/RDAP
// preamble, followed by a JSON parse and ldhName match against the
// tested name.
package rdap

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/httpclient"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rddsweb"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

// Result is the outcome of one RDAP check.
type Result struct {
	RTTOrCode int
	IP        string
}

type rdapBody struct {
	LdhName string `json:"ldhName"`
}

// Run executes the RDAP check for testedName against baseURL.
// "not listed" and "no https" are special sentinel base URLs applied
// before any network activity.
func Run(ctx context.Context, r *resolver.Resolver, baseURL, testedName string, family rsmtypes.IPFamily, timeout time.Duration, maxRedirects int) Result {
	switch baseURL {
	case "not listed":
		return Result{RTTOrCode: errcode.RDAPNotListed}
	case "no https":
		return Result{RTTOrCode: errcode.RDAPNoHTTPS}
	}

	pre, preErr := rddsweb.Prepare(ctx, r, baseURL, family, "/domain/"+testedName)
	if preErr != errcode.NoValue {
		return Result{RTTOrCode: preErr}
	}

	res, herr := httpclient.Get(ctx, pre.URL, pre.HostHeader, pre.IP, timeout, maxRedirects, true)
	if herr != (errcode.HTTPError{}) {
		return Result{RTTOrCode: errcode.MapHTTPErrorRDAP(herr), IP: pre.IP}
	}

	var body rdapBody
	if err := json.Unmarshal(res.Body, &body); err != nil || len(res.Body) == 0 {
		return Result{RTTOrCode: errcode.RDAPEJSON, IP: pre.IP}
	}
	if body.LdhName == "" {
		return Result{RTTOrCode: errcode.RDAPNoName, IP: pre.IP}
	}
	if !strings.EqualFold(body.LdhName, testedName) {
		return Result{RTTOrCode: errcode.RDAPEName, IP: pre.IP}
	}

	return Result{RTTOrCode: res.RTTMillis, IP: pre.IP}
}
