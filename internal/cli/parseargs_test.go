package cli

import "testing"

func dnsArgs(overrides map[int]string) []string {
	args := []string{
		"example.test",              // 0 rsmhost
		"nb",                        // 1 testprefix
		"ns1.example.,192.0.2.1",    // 2 ns-list
		"1",                         // 3 dnssec?
		"0",                         // 4 reserved1
		"0",                         // 5 reserved2
		"1",                         // 6 udp?
		"0",                         // 7 tcp?
		"1",                         // 8 ipv4?
		"0",                         // 9 ipv6?
		"192.0.2.53",                // 10 resolver-ip
		"500",                       // 11 udp_rtt_limit
		"1500",                      // 12 tcp_rtt_limit
		"10",                        // 13 tcp_ratio
		"3",                         // 14 recover_udp
		"3",                         // 15 recover_tcp
		"2",                         // 16 minns-expr
	}
	for i, v := range overrides {
		args[i] = v
	}
	return args
}

func TestParseDNSArgsValid(t *testing.T) {
	p, err := parseDNSArgs(dnsArgs(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RsmHost != "example.test" || !p.DNSSECEnabled || !p.UDPEnabled || p.TCPEnabled {
		t.Errorf("unexpected parsed params: %+v", p)
	}
	if len(p.NameServers) != 1 {
		t.Fatalf("expected one name server, got %d", len(p.NameServers))
	}
}

func TestParseDNSArgsRejectsNoProtocol(t *testing.T) {
	if _, err := parseDNSArgs(dnsArgs(map[int]string{6: "0", 7: "0"})); err == nil {
		t.Error("expected an error when neither udp? nor tcp? is enabled")
	}
}

func TestParseDNSArgsRejectsNoFamily(t *testing.T) {
	if _, err := parseDNSArgs(dnsArgs(map[int]string{8: "0", 9: "0"})); err == nil {
		t.Error("expected an error when neither ipv4? nor ipv6? is enabled")
	}
}

func rddsArgs(overrides map[int]string) []string {
	args := []string{
		"example.test",          // 0 rsmhost
		"whois.example.test;43", // 1 rdds43-server
		"https://rdap.example.test/", // 2 rdds80-url
		"example.test",          // 3 rdds43-testedname
		"Name Server:",          // 4 rdds43-ns-string
		"1",                     // 5 probe-rdds?
		"1",                     // 6 rdds43?
		"1",                     // 7 rdds80?
		"1",                     // 8 ipv4?
		"0",                     // 9 ipv6?
		"192.0.2.53",            // 10 resolver
		"2000",                  // 11 rtt_limit
		"3",                     // 12 maxredirs
	}
	for i, v := range overrides {
		args[i] = v
	}
	return args
}

func TestParseRDDSArgsValid(t *testing.T) {
	p, err := parseRDDSArgs(rddsArgs(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RDDS43Server != "whois.example.test" || p.RDDS43Port != 43 {
		t.Errorf("expected parsed rdds43 server/port, got %q/%d", p.RDDS43Server, p.RDDS43Port)
	}
	if !p.ProbeRDDSEnabled || !p.RDDS43Enabled || !p.RDDS80Enabled {
		t.Errorf("unexpected parsed params: %+v", p)
	}
}

func TestParseRDDSArgsAllowsEmptyRDDS43Server(t *testing.T) {
	p, err := parseRDDSArgs(rddsArgs(map[int]string{1: ""}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RDDS43Server != "" {
		t.Errorf("expected empty rdds43 server to pass through, got %q", p.RDDS43Server)
	}
}
