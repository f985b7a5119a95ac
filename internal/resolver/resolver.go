// Package resolver wraps a single outbound DNS client configured against
// exactly one nameserver endpoint at a time, in the style of the teacher's
// QueryServer/RunQueries exchange helpers but built directly on
// github.com/miekg/dns instead of going through an upstream-protocol
// abstraction: every RSM query targets a bare IP:port over plain UDP or
// TCP, so there is no scheme-based dispatch to do.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

// Resolver is mutable and single-tenant: Retarget pops the existing
// nameserver and pushes a new one. Only one goroutine may use a given
// Resolver at a time; the orchestrator gives every worker its own
// instance.
type Resolver struct {
	name     string
	addr     string
	port     int
	useVC    bool
	dnssecOK bool
	cd       bool
	family   rsmtypes.IPFamily
	timeout  time.Duration
	retries  int

	client *dns.Client
}

// New constructs a Resolver configured for a single nameserver.
func New(name, ip string, port int, protocol rsmtypes.Protocol, family rsmtypes.IPFamily, dnssecOK bool, timeout time.Duration, retries int) (*Resolver, error) {
	r := &Resolver{}
	if err := r.reconfigure(name, ip, port, family); err != nil {
		return nil, err
	}
	r.useVC = protocol == rsmtypes.ProtocolTCP
	r.dnssecOK = dnssecOK
	r.cd = false
	r.timeout = timeout
	r.retries = retries
	r.client = &dns.Client{Timeout: timeout}
	if r.useVC {
		r.client.Net = "tcp"
	}
	return r, nil
}

// Retarget pops the existing nameserver and pushes a new one; protocol,
// timeout, retry and DNSSEC-OK settings are left untouched.
func (r *Resolver) Retarget(name, ip string, port int, family rsmtypes.IPFamily) error {
	return r.reconfigure(name, ip, port, family)
}

func (r *Resolver) reconfigure(name, ip string, port int, family rsmtypes.IPFamily) error {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return fmt.Errorf("resolver: %q is not a valid IP literal", ip)
	}
	isV4 := parsed.To4() != nil
	switch family {
	case rsmtypes.FamilyV4Only:
		if !isV4 {
			return fmt.Errorf("resolver: %q is not an IPv4 address but only IPv4 is enabled", ip)
		}
	case rsmtypes.FamilyV6Only:
		if isV4 {
			return fmt.Errorf("resolver: %q is not an IPv6 address but only IPv6 is enabled", ip)
		}
	}
	r.name = name
	r.addr = ip
	r.port = port
	r.family = family
	return nil
}

// Protocol reports whether the resolver is currently configured for TCP.
func (r *Resolver) Protocol() rsmtypes.Protocol {
	if r.useVC {
		return rsmtypes.ProtocolTCP
	}
	return rsmtypes.ProtocolUDP
}

func (r *Resolver) serverAddr() string {
	return net.JoinHostPort(r.addr, fmt.Sprintf("%d", r.port))
}

// Send transmits query and returns the reply together with the measured
// round-trip time. It retries up to r.retries times on transport failure,
// matching the original resolver's "retry" knob. RecursionDesired is left
// exactly as the caller set it on query: some queries (the NXDOMAIN proof
// of absence, the root-server reachability check) are deliberately
// non-recursive.
func (r *Resolver) Send(ctx context.Context, query *dns.Msg) (*dns.Msg, time.Duration, error) {
	if r.dnssecOK {
		opt := query.IsEdns0()
		if opt == nil {
			query.SetEdns0(4096, r.dnssecOK)
			opt = query.IsEdns0()
		}
		opt.SetDo(true)
	}

	var lastErr error
	attempts := r.retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		reply, rtt, err := r.exchangeOnce(ctx, query)
		if err == nil {
			return reply, rtt, nil
		}
		lastErr = err
	}
	return nil, 0, lastErr
}

func (r *Resolver) exchangeOnce(ctx context.Context, query *dns.Msg) (*dns.Msg, time.Duration, error) {
	type result struct {
		reply *dns.Msg
		rtt   time.Duration
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		reply, rtt, err := r.client.ExchangeContext(ctx, query, r.serverAddr())
		ch <- result{reply: reply, rtt: rtt, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	case res := <-ch:
		return res.reply, res.rtt, res.err
	}
}

// NewNXDomainQuery builds the query described in the DNS primitives
// component: a type-A query for testedname carrying an empty EDNS0 NSID
// option (code 3).
func NewNXDomainQuery(testedName string) *dns.Msg {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(testedName), dns.TypeA)
	msg.RecursionDesired = false
	opt := new(dns.OPT)
	opt.Hdr.Name = "."
	opt.Hdr.Rrtype = dns.TypeOPT
	opt.SetUDPSize(4096)
	opt.Option = append(opt.Option, &dns.EDNS0_NSID{
		Code: dns.EDNS0NSID,
		Nsid: "",
	})
	msg.Extra = append(msg.Extra, opt)
	return msg
}

// ClassifyTransportErrorUDP maps a Send() transport failure for the
// NXDOMAIN query to its UDP-band NSQueryError kind.
func ClassifyTransportErrorUDP(err error) errcode.NSQueryError {
	return errcode.NSQueryNoReply
}

// ClassifyTransportErrorTCP maps a Send() transport failure for the
// NXDOMAIN query to its TCP-band NSQueryError kind.
func ClassifyTransportErrorTCP(err error) errcode.NSQueryError {
	if isTimeout(err) {
		return errcode.NSQueryTO
	}
	return errcode.NSQueryEcon
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	if t, ok := err.(timeouter); ok {
		return t.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
