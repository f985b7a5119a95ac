package dnsprim

import (
	"testing"

	"github.com/miekg/dns"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
)

func TestVerifyRRClassAcceptsIN(t *testing.T) {
	rrs := []dns.RR{
		&dns.A{Hdr: dns.RR_Header{Name: "example.", Class: dns.ClassINET, Rrtype: dns.TypeA}},
	}
	if got := VerifyRRClass(rrs); got != errcode.RRClassOK {
		t.Errorf("expected RRClassOK, got %v", got)
	}
}

func TestVerifyRRClassRejectsChaos(t *testing.T) {
	rrs := []dns.RR{
		&dns.TXT{Hdr: dns.RR_Header{Name: "version.bind.", Class: dns.ClassCHAOS, Rrtype: dns.TypeTXT}},
	}
	if got := VerifyRRClass(rrs); got != errcode.RRClassChaos {
		t.Errorf("expected RRClassChaos, got %v", got)
	}
}

func TestVerifyDenialOfExistenceAcceptsNoError(t *testing.T) {
	reply := new(dns.Msg)
	reply.Rcode = dns.RcodeSuccess
	if got := VerifyDenialOfExistence(reply); got != errcode.DNSSECOK {
		t.Errorf("expected DNSSECOK on NOERROR, got %v", got)
	}
}

func TestVerifyDenialOfExistenceRequiresNSECOrNSEC3(t *testing.T) {
	reply := new(dns.Msg)
	reply.Rcode = dns.RcodeNameError
	reply.Question = []dns.Question{{Name: "www.zz--rsm-monitoring.example.", Qtype: dns.TypeA}}
	if got := VerifyDenialOfExistence(reply); got != errcode.DNSSECNoNSECInAuth {
		t.Errorf("expected DNSSECNoNSECInAuth, got %v", got)
	}
}

func TestVerifyDenialOfExistenceRequiresRRSIGAlongsideNSEC(t *testing.T) {
	reply := new(dns.Msg)
	reply.Rcode = dns.RcodeNameError
	reply.Question = []dns.Question{{Name: "www.zz--rsm-monitoring.example.", Qtype: dns.TypeA}}
	reply.Ns = []dns.RR{
		&dns.NSEC{Hdr: dns.RR_Header{Name: "a.example.", Rrtype: dns.TypeNSEC}, NextDomain: "z.example."},
	}
	if got := VerifyDenialOfExistence(reply); got != errcode.DNSSECRRSIGNone {
		t.Errorf("expected DNSSECRRSIGNone, got %v", got)
	}
}

func TestCoversNameHandlesWraparound(t *testing.T) {
	if !coversName("z.example.", "a.example.", "zz.example.") {
		t.Error("expected wraparound coverage to include names after the last owner")
	}
	if !coversName("z.example.", "a.example.", "0.example.") {
		t.Error("expected wraparound coverage to include names before the first owner")
	}
	if coversName("b.example.", "d.example.", "e.example.") {
		t.Error("name outside the non-wrapping range must not be covered")
	}
}
