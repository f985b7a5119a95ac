// Package rsmtypes holds the plain data structures shared by every check:
// the name server / endpoint model, the persisted mode metadata, and the
// JSON result documents described by the external interface.
package rsmtypes

// IPFamily is the IP-version gate applied to an address or a resolver.
type IPFamily int

const (
	FamilyEither IPFamily = iota
	FamilyV4Only
	FamilyV6Only
)

// Protocol is the wire transport used for a DNS test.
type Protocol int

const (
	ProtocolUDP Protocol = iota
	ProtocolTCP
)

func (p Protocol) String() string {
	if p == ProtocolTCP {
		return "tcp"
	}
	return "udp"
}

// Mode is the persistent per-rsmhost test mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCriticalUDP
	ModeCriticalTCP
)

// NSStatus is the aggregated per-name-server verdict reported in the DNS
// JSON result. The "Old*" members are retained for backward compatibility
// with historical item values; current code paths never emit them.
type NSStatus int

const (
	NSStatusOldDown NSStatus = iota
	NSStatusOldUp
	NSStatusDownDnssecOff
	NSStatusDownDnssecDown
	NSStatusDownDnssecUp
	NSStatusUpDnssecOff
	NSStatusUpDnssecUp
)

// Endpoint is one (IP, port) pair belonging to a NameServer. It is mutated
// exactly once, by the worker goroutine assigned to it, and is otherwise
// read-only once the orchestrator has waited for all workers.
type Endpoint struct {
	Address string
	Port    int
	Family  IPFamily

	// RTT is either a non-negative round-trip time in milliseconds, or a
	// negative errcode value. It starts at errcode.NoValue.
	RTT int
	// UPD is always errcode.NoValue in this implementation; the legacy
	// EPP-only "update time" measurement is out of scope.
	UPD int
	NSID string
}

// NameServer is a named group of endpoints parsed from the ns-list
// argument. Endpoints whose address family the probe does not support are
// dropped at parse time, with a warning, per the external interface.
type NameServer struct {
	Name      string
	Endpoints []*Endpoint
}

// ModeMetadata is the 2-tuple persisted per rsmhost: the current mode plus
// the count of consecutive successful tests observed while in a critical
// mode.
type ModeMetadata struct {
	Mode            Mode
	SuccessfulTests int32
}

// DNSParams is the parsed and validated form of the 17 positional DNS
// check arguments (external interface, §6).
type DNSParams struct {
	RsmHost      string
	TestPrefix   string
	NameServers  []*NameServer
	DNSSECEnabled bool
	// Reserved1/Reserved2 carry the host platform's scheduling
	// coordinates (historically named hostid/itemid); the core only
	// reads them to desynchronize the UDP/TCP ratio pick.
	Reserved1 uint64
	Reserved2 uint64
	UDPEnabled   bool
	TCPEnabled   bool
	IPv4Enabled  bool
	IPv6Enabled  bool
	ResolverIP   string
	ResolverPort int
	UDPRTTLimit  int
	TCPRTTLimit  int
	TCPRatio     int
	RecoverUDP   int
	RecoverTCP   int
	MinNSExpr    string
}

// RDDSParams is the parsed form of the 13 positional RDDS arguments.
type RDDSParams struct {
	RsmHost         string
	RDDS43Server    string
	RDDS43Port      int
	RDDS80URL       string
	RDDS43TestedName string
	RDDS43NSString  string
	ProbeRDDSEnabled bool
	RDDS43Enabled   bool
	RDDS80Enabled   bool
	IPv4Enabled     bool
	IPv6Enabled     bool
	Resolver        string
	RTTLimit        int
	MaxRedirects    int
}

// RDAPParams is the parsed form of the 10 positional RDAP arguments.
type RDAPParams struct {
	RsmHost      string
	TestedName   string
	BaseURL      string
	MaxRedirects int
	RTTLimit     int
	TLD          bool
	ProbeEnabled bool
	IPv4Enabled  bool
	IPv6Enabled  bool
	Resolver     string
}

// ProbeStatusParams is the parsed form of the 10 positional probe-status
// arguments.
type ProbeStatusParams struct {
	Mode        string // must be "automatic"
	IPv4Enabled bool
	IPv6Enabled bool
	V4Roots     []string
	V6Roots     []string
	V4Min       int
	V6Min       int
	V4RTTLimit  int
	V6RTTLimit  int
	OnlineDelay int
}

// ResolverStatusParams is the parsed form of the 5 positional
// resolver-status arguments.
type ResolverStatusParams struct {
	ResolverIP  string
	Timeout     int
	Tries       int
	IPv4Enabled bool
	IPv6Enabled bool
}

// --- JSON result documents (§6) ---

// DNSNsIP is one row of the "nsips" array in the DNS result document.
type DNSNsIP struct {
	NS       string `json:"ns"`
	IP       string `json:"ip"`
	NSID     *string `json:"nsid"`
	Protocol string  `json:"protocol"`
	RTT      int     `json:"rtt"`
}

// DNSNs is one row of the "nss" array in the DNS result document.
type DNSNs struct {
	NS     string `json:"ns"`
	Status int    `json:"status"`
}

// DNSResult is the top-level DNS check result document.
type DNSResult struct {
	NsIPs        []DNSNsIP `json:"nsips"`
	Nss          []DNSNs   `json:"nss"`
	Mode         int       `json:"mode"`
	Status       int       `json:"status"`
	Protocol     int       `json:"protocol"`
	TestedName   string    `json:"testedname"`
	DNSSECStatus *int      `json:"dnssecstatus,omitempty"`
}

// RDDSSub is a sub-object ("rdds43" or "rdds80") of the RDDS result.
type RDDSSub struct {
	RTT        int     `json:"rtt"`
	IP         *string `json:"ip,omitempty"`
	UPD        *int    `json:"upd,omitempty"`
	Target     string  `json:"target"`
	TestedName *string `json:"testedname,omitempty"`
	Status     int     `json:"status"`
}

// RDDSResult is the top-level RDDS check result document.
type RDDSResult struct {
	RDDS43 *RDDSSub `json:"rdds43,omitempty"`
	RDDS80 *RDDSSub `json:"rdds80,omitempty"`
	Status int      `json:"status"`
}

// RDAPResult is the top-level RDAP check result document.
type RDAPResult struct {
	IP         *string `json:"ip,omitempty"`
	RTT        int     `json:"rtt"`
	Target     string  `json:"target"`
	TestedName string  `json:"testedname"`
	Status     int     `json:"status"`
}
