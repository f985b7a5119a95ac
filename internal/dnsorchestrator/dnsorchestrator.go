// Package dnsorchestrator fans the per-nameserver test out across every
// (NS, IP) endpoint of a DNS check, one goroutine per endpoint guarded by
// a capacity-limited semaphore, and aggregates the results into the
// per-NS and overall up/down verdicts the DNS result document reports.
//
// This mirrors the teacher's RunQueries worker-pool shape, generalized
// from "one resolver per configured server" to "one resolver per
// (nameserver, endpoint) pair, with the per-endpoint DNSSEC/NSID
// bookkeeping the RSM test needs.
package dnsorchestrator

import (
	"context"
	"sync"

	"github.com/miekg/dns"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/nstest"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

// MaxConcurrency bounds how many endpoint workers may be in flight at
// once, matching the original's process-table-sized worker cap.
const MaxConcurrency = 64

// Params bundles the fixed inputs to one DNS test run.
type Params struct {
	NameServers   []*rsmtypes.NameServer
	TestedName    string
	Protocol      rsmtypes.Protocol
	DNSSECEnabled bool
	DNSSECOK      bool
	DNSKeys       []dns.RR
	DNSKeysErr    errcode.DNSKeysError
	Port          int
	Timeout       int
	Retries       int
	UDPLimit      int
	TCPLimit      int
	MinNS         int
}

// Outcome is the aggregated result of one DNS test run.
type Outcome struct {
	NsStatuses   []rsmtypes.NSStatus
	DNSUp        bool
	DNSSECUp     bool
	LastTestFailed bool
}

// Run executes the per-nameserver test for every (NS, IP) pair
// concurrently, then aggregates per-NS and overall status.
func Run(ctx context.Context, p Params) Outcome {
	if p.DNSKeysErr != errcode.DNSKeysOK {
		code := mapDNSKeysCode(p.Protocol, p.DNSKeysErr)
		for _, ns := range p.NameServers {
			for _, ep := range ns.Endpoints {
				ep.RTT = code
			}
		}
		return aggregate(p)
	}

	sem := make(chan struct{}, MaxConcurrency)
	var wg sync.WaitGroup

	for _, ns := range p.NameServers {
		for _, ep := range ns.Endpoints {
			wg.Add(1)
			sem <- struct{}{}
			go func(ns *rsmtypes.NameServer, ep *rsmtypes.Endpoint) {
				defer wg.Done()
				defer func() { <-sem }()

				res := nstest.Run(ctx, nstest.Params{
					Name:          ns.Name,
					IP:            ep.Address,
					Port:          ep.Port,
					Family:        ep.Family,
					Protocol:      p.Protocol,
					TestedName:    p.TestedName,
					DNSSECEnabled: p.DNSSECEnabled,
					DNSSECOK:      p.DNSSECOK,
					DNSKeys:       p.DNSKeys,
					Timeout:       p.Timeout,
					Retries:       p.Retries,
				})
				ep.RTT = res.RTTOrCode
				ep.NSID = res.NSID
			}(ns, ep)
		}
	}
	wg.Wait()

	return aggregate(p)
}

func mapDNSKeysCode(proto rsmtypes.Protocol, e errcode.DNSKeysError) int {
	if proto == rsmtypes.ProtocolTCP {
		return errcode.MapDNSKeysErrorTCP(e)
	}
	return errcode.MapDNSKeysErrorUDP(e)
}

// subtestResult implements the subtest_result predicate: whether a
// single endpoint's RTT-or-errcode counts as a success for quorum
// purposes, per the internal-error-band carve-out.
func subtestResult(rtt, limit int) bool {
	switch {
	case rtt == errcode.NoValue:
		return true
	case rtt > errcode.InternalLast && rtt <= -1:
		// (-199, -1]: every internal-error code, including the knock-down
		// code -1, counts as success for quorum purposes.
		return true
	default:
		return 0 <= rtt && rtt <= limit
	}
}

func dnssecSubband(rtt int, proto rsmtypes.Protocol) bool {
	if proto == rsmtypes.ProtocolTCP {
		return rtt <= errcode.DNSTCPDNSSECFirst && rtt >= errcode.DNSTCPDNSSECLast
	}
	return rtt <= errcode.DNSUDPDNSSECFirst && rtt >= errcode.DNSUDPDNSSECLast
}

func aggregate(p Params) Outcome {
	limit := p.UDPLimit
	if p.Protocol == rsmtypes.ProtocolTCP {
		limit = p.TCPLimit
	}

	statuses := make([]rsmtypes.NSStatus, len(p.NameServers))
	dnsUpCount := 0
	dnssecUpCount := 0

	for i, ns := range p.NameServers {
		nsDown := false
		nsDNSSECDown := false
		for _, ep := range ns.Endpoints {
			if !subtestResult(ep.RTT, limit) {
				nsDown = true
			}
			if p.DNSSECEnabled && dnssecSubband(ep.RTT, p.Protocol) {
				nsDNSSECDown = true
			}
		}

		up := !nsDown
		if up {
			dnsUpCount++
		}
		if p.DNSSECEnabled && !nsDNSSECDown {
			dnssecUpCount++
		}

		// A DNSSEC sub-band code also fails subtestResult, so a Name Server
		// with an endpoint that failed the DNSSEC subtest is DNS down and
		// reported DownDnssecDown; a DNS-up Name Server is reported
		// DnssecUp when DNSSEC is enabled.
		switch {
		case !up && !p.DNSSECEnabled:
			statuses[i] = rsmtypes.NSStatusDownDnssecOff
		case !up && nsDNSSECDown:
			statuses[i] = rsmtypes.NSStatusDownDnssecDown
		case !up:
			statuses[i] = rsmtypes.NSStatusDownDnssecUp
		case !p.DNSSECEnabled:
			statuses[i] = rsmtypes.NSStatusUpDnssecOff
		default:
			statuses[i] = rsmtypes.NSStatusUpDnssecUp
		}
	}

	dnsUp := dnsUpCount >= p.MinNS
	dnssecUp := !p.DNSSECEnabled || dnssecUpCount >= p.MinNS

	return Outcome{NsStatuses: statuses, DNSUp: dnsUp, DNSSECUp: dnssecUp}
}
