// Package nstest runs the per-nameserver test described by the DNS test
// orchestrator's worker contract: one (NS, IP, port) triple in, an RTT-or-
// errcode plus NSID out.
package nstest

import (
	"context"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/dnsprim"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

// Params bundles the fixed inputs to a single endpoint test.
type Params struct {
	Name          string
	IP            string
	Port          int
	Family        rsmtypes.IPFamily
	Protocol      rsmtypes.Protocol
	TestedName    string
	DNSSECEnabled bool
	DNSSECOK      bool // resolver-level DO bit; distinct from DNSSECEnabled (whether to run the verification)
	DNSKeys       []dns.RR
	Timeout       int // seconds
	Retries       int
}

// Result is the outcome of one endpoint test.
type Result struct {
	RTTOrCode int
	NSID      string
}

// Run executes the test described in the per-nameserver test component:
// retarget, NXDOMAIN query, class check, RCODE check, AA-flag check,
// owner-name check, and (if enabled) DNSSEC verification.
func Run(ctx context.Context, p Params) Result {
	r, err := resolver.New(p.Name, p.IP, p.Port, p.Protocol, p.Family, p.DNSSECOK, secondsToDuration(p.Timeout), p.Retries)
	if err != nil {
		return Result{RTTOrCode: errcode.DNSUDPInternalGeneral}
	}

	qr, qerr := dnsprim.NXDomainQuery(ctx, r, p.TestedName)
	if qerr != errcode.NSQueryOK {
		return Result{RTTOrCode: mapNSQueryError(p.Protocol, qerr)}
	}
	reply := qr.Reply

	if classErr := dnsprim.VerifyRRClass(allRRs(reply)); classErr != errcode.RRClassOK {
		return Result{RTTOrCode: mapClassError(p.Protocol, classErr), NSID: qr.NSID}
	}

	if reply.Rcode != dns.RcodeSuccess && reply.Rcode != dns.RcodeNameError {
		return Result{RTTOrCode: mapRcode(p.Protocol, reply.Rcode), NSID: qr.NSID}
	}

	if !reply.Authoritative {
		return Result{RTTOrCode: mapAnswerError(p.Protocol, errcode.NSAnswerNoAAFlag), NSID: qr.NSID}
	}

	if len(reply.Question) == 0 || !strings.EqualFold(dns.Fqdn(reply.Question[0].Name), dns.Fqdn(p.TestedName)) {
		return Result{RTTOrCode: mapAnswerError(p.Protocol, errcode.NSAnswerNoDomain), NSID: qr.NSID}
	}

	if p.DNSSECEnabled {
		if secErr := dnsprim.CheckDNSSECNoEPP(reply, p.DNSKeys); secErr != errcode.DNSSECOK {
			return Result{RTTOrCode: mapDNSSECError(p.Protocol, secErr), NSID: qr.NSID}
		}
	}

	return Result{RTTOrCode: int(qr.RTT.Milliseconds()), NSID: qr.NSID}
}

func allRRs(msg *dns.Msg) []dns.RR {
	rrs := make([]dns.RR, 0, len(msg.Answer)+len(msg.Ns)+len(msg.Extra))
	rrs = append(rrs, msg.Answer...)
	rrs = append(rrs, msg.Ns...)
	rrs = append(rrs, msg.Extra...)
	return rrs
}

func mapNSQueryError(proto rsmtypes.Protocol, e errcode.NSQueryError) int {
	if proto == rsmtypes.ProtocolTCP {
		return errcode.MapNSQueryErrorTCP(e)
	}
	return errcode.MapNSQueryErrorUDP(e)
}

func mapClassError(proto rsmtypes.Protocol, e errcode.RRClassError) int {
	if proto == rsmtypes.ProtocolTCP {
		return errcode.MapRRClassErrorTCP(e)
	}
	return errcode.MapRRClassErrorUDP(e)
}

func mapAnswerError(proto rsmtypes.Protocol, e errcode.NSAnswerError) int {
	if proto == rsmtypes.ProtocolTCP {
		return errcode.MapNSAnswerErrorTCP(e)
	}
	return errcode.MapNSAnswerErrorUDP(e)
}

func mapDNSSECError(proto rsmtypes.Protocol, e errcode.DNSSECError) int {
	if proto == rsmtypes.ProtocolTCP {
		return errcode.MapDNSSECErrorTCP(e)
	}
	return errcode.MapDNSSECErrorUDP(e)
}

func mapRcode(proto rsmtypes.Protocol, rcode int) int {
	if proto == rsmtypes.ProtocolTCP {
		return errcode.RcodeNotNXDomainTCP(rcode)
	}
	return errcode.RcodeNotNXDomainUDP(rcode)
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
