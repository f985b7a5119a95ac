package resolver

import (
	"testing"

	"github.com/miekg/dns"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

func TestNewRejectsBadIP(t *testing.T) {
	if _, err := New("ns1", "not-an-ip", 53, rsmtypes.ProtocolUDP, rsmtypes.FamilyEither, false, 0, 0); err == nil {
		t.Fatal("expected error for invalid IP literal")
	}
}

func TestNewRejectsFamilyMismatch(t *testing.T) {
	if _, err := New("ns1", "2001:db8::1", 53, rsmtypes.ProtocolUDP, rsmtypes.FamilyV4Only, false, 0, 0); err == nil {
		t.Fatal("expected error for IPv6 address with IPv4-only family")
	}
	if _, err := New("ns1", "192.0.2.1", 53, rsmtypes.ProtocolUDP, rsmtypes.FamilyV6Only, false, 0, 0); err == nil {
		t.Fatal("expected error for IPv4 address with IPv6-only family")
	}
}

func TestProtocolReflectsConstruction(t *testing.T) {
	r, err := New("ns1", "192.0.2.1", 53, rsmtypes.ProtocolTCP, rsmtypes.FamilyEither, false, 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Protocol() != rsmtypes.ProtocolTCP {
		t.Errorf("expected TCP, got %v", r.Protocol())
	}
}

func TestRetargetChangesAddress(t *testing.T) {
	r, err := New("ns1", "192.0.2.1", 53, rsmtypes.ProtocolUDP, rsmtypes.FamilyEither, false, 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Retarget("ns2", "192.0.2.2", 53, rsmtypes.FamilyEither); err != nil {
		t.Fatalf("Retarget: %v", err)
	}
	if r.addr != "192.0.2.2" || r.name != "ns2" {
		t.Errorf("retarget did not update endpoint: addr=%s name=%s", r.addr, r.name)
	}
}

func TestNewNXDomainQueryCarriesNSID(t *testing.T) {
	msg := NewNXDomainQuery("www.zz--rsm-monitoring.example.")
	if msg.Question[0].Qtype != dns.TypeA {
		t.Fatalf("expected type A question, got %d", msg.Question[0].Qtype)
	}
	opt := msg.IsEdns0()
	if opt == nil {
		t.Fatal("expected an OPT record")
	}
	found := false
	for _, o := range opt.Option {
		if nsid, ok := o.(*dns.EDNS0_NSID); ok {
			found = true
			if nsid.Nsid != "" {
				t.Errorf("expected empty NSID payload in request, got %q", nsid.Nsid)
			}
		}
	}
	if !found {
		t.Error("expected an EDNS0 NSID option in the query")
	}
}
