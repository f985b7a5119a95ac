package dnsorchestrator

import (
	"testing"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

func TestSubtestResultNoValueSucceeds(t *testing.T) {
	if !subtestResult(errcode.NoValue, 100) {
		t.Error("expected NoValue to count as success")
	}
}

func TestSubtestResultKnockDownStillSucceeds(t *testing.T) {
	if !subtestResult(-1, 100) {
		t.Error("expected -1 to count as success (probe knock-down)")
	}
}

func TestSubtestResultInternalBandSucceeds(t *testing.T) {
	if !subtestResult(-150, 100) {
		t.Error("expected an internal-band code to count as success")
	}
}

func TestSubtestResultWithinLimitSucceeds(t *testing.T) {
	if !subtestResult(50, 100) {
		t.Error("expected an RTT within limit to succeed")
	}
	if subtestResult(150, 100) {
		t.Error("expected an RTT over limit to fail")
	}
}

func TestAggregateQuorum(t *testing.T) {
	mkNS := func(name string, rtt int) *rsmtypes.NameServer {
		return &rsmtypes.NameServer{
			Name:      name,
			Endpoints: []*rsmtypes.Endpoint{{Address: "192.0.2.1", RTT: rtt}},
		}
	}
	p := Params{
		NameServers: []*rsmtypes.NameServer{
			mkNS("ns1.example.", 50),
			mkNS("ns2.example.", 50),
			mkNS("ns3.example.", errcode.DNSUDPNoAAFlag),
		},
		Protocol: rsmtypes.ProtocolUDP,
		UDPLimit: 100,
		MinNS:    2,
	}
	out := aggregate(p)
	if !out.DNSUp {
		t.Errorf("expected DNS up with 2/3 name servers succeeding against minns=2")
	}
	if out.NsStatuses[2] != rsmtypes.NSStatusDownDnssecOff {
		t.Errorf("expected the failing NS to be DownDnssecOff, got %v", out.NsStatuses[2])
	}
}

func TestAggregateDNSSECFailureMarksNSDownDnssecDown(t *testing.T) {
	ns := &rsmtypes.NameServer{
		Name: "ns1.example.",
		Endpoints: []*rsmtypes.Endpoint{
			{Address: "192.0.2.1", RTT: 50},
			{Address: "192.0.2.2", RTT: errcode.DNSUDPSigBogus},
		},
	}
	p := Params{
		NameServers:   []*rsmtypes.NameServer{ns},
		Protocol:      rsmtypes.ProtocolUDP,
		UDPLimit:      100,
		MinNS:         1,
		DNSSECEnabled: true,
	}
	out := aggregate(p)
	if out.NsStatuses[0] != rsmtypes.NSStatusDownDnssecDown {
		t.Errorf("expected an NS with a failing DNSSEC endpoint to report DownDnssecDown, got %v", out.NsStatuses[0])
	}
	if out.DNSSECUp {
		t.Errorf("expected the DNSSEC quorum itself to reflect the real per-endpoint failure")
	}
}

func TestRunSkipsWorkersWhenDNSKeysFailed(t *testing.T) {
	ns := &rsmtypes.NameServer{
		Name:      "ns1.example.",
		Endpoints: []*rsmtypes.Endpoint{{Address: "192.0.2.1", RTT: errcode.NoValue}},
	}
	p := Params{
		NameServers: []*rsmtypes.NameServer{ns},
		Protocol:    rsmtypes.ProtocolUDP,
		UDPLimit:    100,
		MinNS:       1,
		DNSKeysErr:  errcode.DNSKeysNone,
	}
	out := Run(nil, p) //nolint:staticcheck // no network I/O occurs on this path
	if ns.Endpoints[0].RTT == errcode.NoValue {
		t.Error("expected the endpoint RTT to be set to the mapped DNSKEY failure code")
	}
	if out.DNSUp {
		t.Error("expected DNS down when DNSKEY retrieval failed")
	}
}
