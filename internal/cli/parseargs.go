package cli

import (
	"fmt"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/normalize"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

const defaultDNSPort = 53

func parseDNSArgs(args []string) (*rsmtypes.DNSParams, error) {
	if err := requireNonEmpty("rsmhost", args[0]); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("testprefix", args[1]); err != nil {
		return nil, err
	}
	dnssec, err := parseBoolFlag("dnssec?", args[3])
	if err != nil {
		return nil, err
	}
	reserved1, err := parseUint31("reserved1", args[4])
	if err != nil {
		return nil, err
	}
	reserved2, err := parseUint31("reserved2", args[5])
	if err != nil {
		return nil, err
	}
	udp, err := parseBoolFlag("udp?", args[6])
	if err != nil {
		return nil, err
	}
	tcp, err := parseBoolFlag("tcp?", args[7])
	if err != nil {
		return nil, err
	}
	ipv4, err := parseBoolFlag("ipv4?", args[8])
	if err != nil {
		return nil, err
	}
	ipv6, err := parseBoolFlag("ipv6?", args[9])
	if err != nil {
		return nil, err
	}
	if !udp && !tcp {
		return nil, fmt.Errorf("at least one of udp? or tcp? must be enabled")
	}
	if !ipv4 && !ipv6 {
		return nil, fmt.Errorf("at least one of ipv4? or ipv6? must be enabled")
	}

	nameServers, _, err := normalize.ParseNSList(args[2], ipv4, ipv6, defaultDNSPort)
	if err != nil {
		return nil, err
	}
	if len(nameServers) == 0 {
		return nil, fmt.Errorf("ns-list: no supported name servers")
	}

	resolverIP, resolverPort, err := normalize.ParseHostPort(args[10], defaultDNSPort)
	if err != nil {
		return nil, err
	}

	udpLimit, err := parseUint31("udp_rtt_limit", args[11])
	if err != nil {
		return nil, err
	}
	tcpLimit, err := parseUint31("tcp_rtt_limit", args[12])
	if err != nil {
		return nil, err
	}
	tcpRatio, err := parseUint31("tcp_ratio", args[13])
	if err != nil {
		return nil, err
	}
	recoverUDP, err := parseUint31("recover_udp", args[14])
	if err != nil {
		return nil, err
	}
	recoverTCP, err := parseUint31("recover_tcp", args[15])
	if err != nil {
		return nil, err
	}
	if err := requireNonEmpty("minns-expr", args[16]); err != nil {
		return nil, err
	}

	return &rsmtypes.DNSParams{
		RsmHost:       args[0],
		TestPrefix:    args[1],
		NameServers:   nameServers,
		DNSSECEnabled: dnssec,
		Reserved1:     uint64(reserved1),
		Reserved2:     uint64(reserved2),
		UDPEnabled:    udp,
		TCPEnabled:    tcp,
		IPv4Enabled:   ipv4,
		IPv6Enabled:   ipv6,
		ResolverIP:    resolverIP,
		ResolverPort:  resolverPort,
		UDPRTTLimit:   udpLimit,
		TCPRTTLimit:   tcpLimit,
		TCPRatio:      tcpRatio,
		RecoverUDP:    recoverUDP,
		RecoverTCP:    recoverTCP,
		MinNSExpr:     args[16],
	}, nil
}

const defaultRDDS43Port = 43

func parseRDDSArgs(args []string) (*rsmtypes.RDDSParams, error) {
	if err := requireNonEmpty("rsmhost", args[0]); err != nil {
		return nil, err
	}
	probeRDDS, err := parseBoolFlag("probe-rdds?", args[5])
	if err != nil {
		return nil, err
	}
	rdds43, err := parseBoolFlag("rdds43?", args[6])
	if err != nil {
		return nil, err
	}
	rdds80, err := parseBoolFlag("rdds80?", args[7])
	if err != nil {
		return nil, err
	}
	ipv4, err := parseBoolFlag("ipv4?", args[8])
	if err != nil {
		return nil, err
	}
	ipv6, err := parseBoolFlag("ipv6?", args[9])
	if err != nil {
		return nil, err
	}

	var rdds43Server string
	var rdds43Port int
	if args[1] != "" {
		rdds43Server, rdds43Port, err = normalize.ParseHostPort(args[1], defaultRDDS43Port)
		if err != nil {
			return nil, err
		}
	}

	rttLimit, err := parseUint31("rtt_limit", args[11])
	if err != nil {
		return nil, err
	}
	maxRedirects, err := parseUint31("maxredirs", args[12])
	if err != nil {
		return nil, err
	}

	return &rsmtypes.RDDSParams{
		RsmHost:          args[0],
		RDDS43Server:     rdds43Server,
		RDDS43Port:       rdds43Port,
		RDDS80URL:        args[2],
		RDDS43TestedName: args[3],
		RDDS43NSString:   args[4],
		ProbeRDDSEnabled: probeRDDS,
		RDDS43Enabled:    rdds43,
		RDDS80Enabled:    rdds80,
		IPv4Enabled:      ipv4,
		IPv6Enabled:      ipv6,
		Resolver:         args[10],
		RTTLimit:         rttLimit,
		MaxRedirects:     maxRedirects,
	}, nil
}

func parseRDAPArgs(args []string) (*rsmtypes.RDAPParams, error) {
	if err := requireNonEmpty("rsmhost", args[0]); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("testedname", args[1]); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("base-url", args[2]); err != nil {
		return nil, err
	}
	maxRedirects, err := parseUint31("maxredirs", args[3])
	if err != nil {
		return nil, err
	}
	rttLimit, err := parseUint31("rtt_limit", args[4])
	if err != nil {
		return nil, err
	}
	tld, err := parseBoolFlag("tld?", args[5])
	if err != nil {
		return nil, err
	}
	probeEnabled, err := parseBoolFlag("probe?", args[6])
	if err != nil {
		return nil, err
	}
	ipv4, err := parseBoolFlag("ipv4?", args[7])
	if err != nil {
		return nil, err
	}
	ipv6, err := parseBoolFlag("ipv6?", args[8])
	if err != nil {
		return nil, err
	}

	return &rsmtypes.RDAPParams{
		RsmHost:      args[0],
		TestedName:   args[1],
		BaseURL:      args[2],
		MaxRedirects: maxRedirects,
		RTTLimit:     rttLimit,
		TLD:          tld,
		ProbeEnabled: probeEnabled,
		IPv4Enabled:  ipv4,
		IPv6Enabled:  ipv6,
		Resolver:     args[9],
	}, nil
}

func parseProbeStatusArgs(args []string) (*rsmtypes.ProbeStatusParams, error) {
	if args[0] != "automatic" {
		return nil, fmt.Errorf(`mode must be "automatic", got %q`, args[0])
	}
	ipv4, err := parseBoolFlag("ipv4?", args[1])
	if err != nil {
		return nil, err
	}
	ipv6, err := parseBoolFlag("ipv6?", args[2])
	if err != nil {
		return nil, err
	}
	v4min, err := parseUint31("v4-min", args[5])
	if err != nil {
		return nil, err
	}
	v6min, err := parseUint31("v6-min", args[6])
	if err != nil {
		return nil, err
	}
	v4rtt, err := parseUint31("v4-rtt-ms", args[7])
	if err != nil {
		return nil, err
	}
	v6rtt, err := parseUint31("v6-rtt-ms", args[8])
	if err != nil {
		return nil, err
	}
	onlineDelay, err := parseUint31("online-delay", args[9])
	if err != nil {
		return nil, err
	}

	return &rsmtypes.ProbeStatusParams{
		Mode:        args[0],
		IPv4Enabled: ipv4,
		IPv6Enabled: ipv6,
		V4Roots:     normalize.ParseIPList(args[3]),
		V6Roots:     normalize.ParseIPList(args[4]),
		V4Min:       v4min,
		V6Min:       v6min,
		V4RTTLimit:  v4rtt,
		V6RTTLimit:  v6rtt,
		OnlineDelay: onlineDelay,
	}, nil
}

func parseResolverStatusArgs(args []string) (*rsmtypes.ResolverStatusParams, error) {
	if err := requireNonEmpty("resolver-ip", args[0]); err != nil {
		return nil, err
	}
	timeout, err := parseUint31("timeout", args[1])
	if err != nil {
		return nil, err
	}
	tries, err := parseUint31("tries", args[2])
	if err != nil {
		return nil, err
	}
	ipv4, err := parseBoolFlag("ipv4?", args[3])
	if err != nil {
		return nil, err
	}
	ipv6, err := parseBoolFlag("ipv6?", args[4])
	if err != nil {
		return nil, err
	}

	return &rsmtypes.ResolverStatusParams{
		ResolverIP:  args[0],
		Timeout:     timeout,
		Tries:       tries,
		IPv4Enabled: ipv4,
		IPv6Enabled: ipv6,
	}, nil
}
