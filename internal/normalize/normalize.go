// Package normalize handles domain-name normalization (IDN/punycode),
// IP-literal validation against the probe's enabled address families,
// and parsing of the ns-list / minns-expr CLI argument grammars.
package normalize

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"golang.org/x/net/idna"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

// Domain converts a user-supplied domain name (possibly containing
// non-ASCII labels) to its ASCII/punycode form.
func Domain(name string) (string, error) {
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("normalize: %q is not a valid domain name: %w", name, err)
	}
	return ascii, nil
}

// ValidateIPForFamilies reports whether ip is a valid literal that
// matches one of the enabled families, mirroring the original's
// zbx_validate_ip helper.
func ValidateIPForFamilies(ip string, ipv4Enabled, ipv6Enabled bool) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	if parsed.To4() != nil {
		return ipv4Enabled
	}
	return ipv6Enabled
}

// ParseNSList parses the ns-list argument: space-separated entries, each
// "NAME,IP[;PORT]". Entries sharing the same NAME are grouped into one
// NameServer with multiple endpoints. Endpoints whose address family is
// not enabled are dropped with a warning, not rejected.
func ParseNSList(expr string, ipv4Enabled, ipv6Enabled bool, defaultPort int) ([]*rsmtypes.NameServer, []string, error) {
	byName := map[string]*rsmtypes.NameServer{}
	var order []string
	var warnings []string

	for _, entry := range strings.Fields(expr) {
		namePart, rest, ok := strings.Cut(entry, ",")
		if !ok || namePart == "" || rest == "" {
			return nil, nil, fmt.Errorf("normalize: malformed ns-list entry %q", entry)
		}
		ipPart, port := rest, defaultPort
		if ip, portStr, ok := strings.Cut(rest, ";"); ok {
			ipPart = ip
			p, err := parsePort(portStr)
			if err != nil {
				return nil, nil, fmt.Errorf("normalize: invalid port in ns-list entry %q: %w", entry, err)
			}
			port = p
		}

		parsed := net.ParseIP(ipPart)
		if parsed == nil {
			return nil, nil, fmt.Errorf("normalize: %q is not a valid IP literal in entry %q", ipPart, entry)
		}
		family := rsmtypes.FamilyV4Only
		if parsed.To4() == nil {
			family = rsmtypes.FamilyV6Only
		}

		ns, exists := byName[namePart]
		if !exists {
			ns = &rsmtypes.NameServer{Name: namePart}
			byName[namePart] = ns
			order = append(order, namePart)
		}

		if !ValidateIPForFamilies(ipPart, ipv4Enabled, ipv6Enabled) {
			warnings = append(warnings, fmt.Sprintf("%s: dropping %s, address family not enabled", namePart, ipPart))
			continue
		}
		ns.Endpoints = append(ns.Endpoints, &rsmtypes.Endpoint{Address: ipPart, Port: port, Family: family, RTT: errcode.NoValue, UPD: errcode.NoValue})
	}

	var nss []*rsmtypes.NameServer
	for _, name := range order {
		if ns := byName[name]; len(ns.Endpoints) > 0 {
			nss = append(nss, ns)
		}
	}
	return nss, warnings, nil
}

// parsePort parses a port number, rejecting anything outside the valid
// 16-bit port range instead of silently truncating it (the original's
// atoi-based parsing truncated out-of-range ports; this rejects them).
func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("port %d out of range", p)
	}
	return p, nil
}

// ParseMinNSExpr parses the minns-expr argument: "<value>" or
// "<value>;<ts>:<newvalue>[;<ts>:<newvalue>...]". Overrides are scanned
// left to right; the first whose timestamp is still in the future wins.
// now is the current unix time, injected for testability.
func ParseMinNSExpr(expr string, now int64) (int, error) {
	fields := strings.Split(expr, ";")
	value, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, fmt.Errorf("normalize: invalid minns-expr base value %q: %w", fields[0], err)
	}

	for _, override := range fields[1:] {
		tsStr, valStr, ok := strings.Cut(override, ":")
		if !ok {
			return 0, fmt.Errorf("normalize: malformed minns-expr override %q", override)
		}
		ts, err := strconv.ParseInt(strings.TrimSpace(tsStr), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("normalize: invalid minns-expr override timestamp %q: %w", tsStr, err)
		}
		newValue, err := strconv.Atoi(strings.TrimSpace(valStr))
		if err != nil {
			return 0, fmt.Errorf("normalize: invalid minns-expr override value %q: %w", valStr, err)
		}
		if ts > now {
			return newValue, nil
		}
	}
	return value, nil
}

// ParseHostPort parses a "HOST[;PORT]" argument, used by resolver-ip and
// rdds43-server, applying defaultPort when no explicit port is given.
func ParseHostPort(expr string, defaultPort int) (host string, port int, err error) {
	host, portStr, ok := strings.Cut(expr, ";")
	if !ok {
		return expr, defaultPort, nil
	}
	port, err = parsePort(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("normalize: invalid port in %q: %w", expr, err)
	}
	return host, port, nil
}

// ParseIPList parses a comma-separated list of IP literals, used for the
// probe-status check's root-server argument.
func ParseIPList(expr string) []string {
	var ips []string
	for _, ip := range strings.Split(expr, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}
