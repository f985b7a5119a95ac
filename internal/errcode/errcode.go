// Package errcode is the closed taxonomy of negative integer result codes
// that every measurement surface (DNS over UDP/TCP, RDDS43, RDDS80, RDAP)
// reports instead of a Go error. The numeric values are fixed by the
// monitoring platform's historical item definitions and must never change.
package errcode

// Sentinels shared across every interface.
const (
	// NoValue means a measurement was not taken for this subtest.
	NoValue = -1000

	// ProbeOffline and ProbeOnline are the two values the probe-status
	// and resolver-status checks report. ProbeUnsupported is returned
	// out of band via the "not supported" channel, never as an item
	// value, but is kept here for completeness.
	ProbeOffline     = 0
	ProbeOnline      = 1
	ProbeUnsupported = 2

	// InternalLast is the last code in the internal-error band shared by
	// every interface (-1 .. -199).
	InternalLast = -199
)

// Internal error codes, identical for DNS_UDP/DNS_TCP/RDDS43/RDDS80/RDAP
// except where a later-assigned catch-all code needed disambiguation.
const (
	DNSUDPInternalGeneral      = -1
	DNSUDPInternalResCatchall  = -2
	DNSTCPInternalGeneral      = DNSUDPInternalGeneral
	DNSTCPInternalResCatchall  = -3
	RDDS43InternalGeneral      = -1
	RDDS43InternalIPUnsup      = -2
	RDDS43InternalResCatchall  = -3
	RDDS80InternalGeneral      = RDDS43InternalGeneral
	RDDS80InternalIPUnsup      = RDDS43InternalIPUnsup
	RDDS80InternalResCatchall  = -4
	RDAPInternalGeneral        = -1
	RDAPInternalIPUnsup        = -2
	RDAPInternalResCatchall    = -5
)

// DNS over UDP.
const (
	DNSUDPNSNoReply      = -200
	DNSUDPClassChaos     = -207
	DNSUDPClassHesiod    = -208
	DNSUDPClassCatchall  = -209
	DNSUDPHeader         = -210
	DNSUDPQuestion       = -211
	DNSUDPAnswer         = -212
	DNSUDPAuthority      = -213
	DNSUDPAdditional     = -214
	DNSUDPCatchall       = -215
	DNSUDPNoAAFlag       = -250
	DNSUDPNoDomain       = -251
	DNSUDPRcodeFormErr      = -253
	DNSUDPRcodeServFail     = -254
	DNSUDPRcodeNotImp       = -255
	DNSUDPRcodeRefused      = -256
	DNSUDPRcodeYXDomain     = -257
	DNSUDPRcodeYXRRSet      = -258
	DNSUDPRcodeNXRRSet      = -259
	DNSUDPRcodeNotAuth      = -260
	DNSUDPRcodeNotZone      = -261
	DNSUDPRcodeBadVersOr    = -262
	DNSUDPRcodeBadKey       = -263
	DNSUDPRcodeBadTime      = -264
	DNSUDPRcodeBadMode      = -265
	DNSUDPRcodeBadName      = -266
	DNSUDPRcodeBadAlg       = -267
	DNSUDPRcodeBadTrunc     = -268
	DNSUDPRcodeBadCookie    = -269
	DNSUDPRcodeCatchall     = -270
	DNSUDPResNoReply     = -400
	DNSUDPDNSSECFirst    = -401
	DNSUDPDNSKeyNone     = -401
	DNSUDPDNSKeyNoAdBit  = -402
	DNSUDPResNxDomain    = -403
	DNSUDPAlgoUnknown    = -405
	DNSUDPAlgoNotImpl    = -406
	DNSUDPRRSIGNone      = -407
	DNSUDPNoNSECInAuth   = -408
	DNSUDPRRSIGNotCovered  = -410
	DNSUDPRRSIGNotSigned   = -414
	DNSUDPSigBogus         = -415
	DNSUDPSigExpired       = -416
	DNSUDPSigNotIncepted   = -417
	DNSUDPSigExBeforeIn    = -418
	DNSUDPNSEC3Error       = -419
	DNSUDPRRNotCovered     = -422
	DNSUDPWildNotCovered   = -423
	DNSUDPRRSIGMissRData   = -425
	DNSUDPDNSSECCatchall   = -427
	DNSUDPDNSSECLast       = -427
)

// DNS over TCP.
const (
	DNSTCPNSTO           = -600
	DNSTCPNSEcon         = -601
	DNSTCPClassChaos     = -607
	DNSTCPClassHesiod    = -608
	DNSTCPClassCatchall  = -609
	DNSTCPHeader         = -610
	DNSTCPQuestion       = -611
	DNSTCPAnswer         = -612
	DNSTCPAuthority      = -613
	DNSTCPAdditional     = -614
	DNSTCPCatchall       = -615
	DNSTCPNoAAFlag       = -650
	DNSTCPNoDomain       = -651
	DNSTCPRcodeFormErr      = -653
	DNSTCPRcodeServFail     = -654
	DNSTCPRcodeNotImp       = -655
	DNSTCPRcodeRefused      = -656
	DNSTCPRcodeYXDomain     = -657
	DNSTCPRcodeYXRRSet      = -658
	DNSTCPRcodeNXRRSet      = -659
	DNSTCPRcodeNotAuth      = -660
	DNSTCPRcodeNotZone      = -661
	DNSTCPRcodeBadVersOr    = -662
	DNSTCPRcodeBadKey       = -663
	DNSTCPRcodeBadTime      = -664
	DNSTCPRcodeBadMode      = -665
	DNSTCPRcodeBadName      = -666
	DNSTCPRcodeBadAlg       = -667
	DNSTCPRcodeBadTrunc     = -668
	DNSTCPRcodeBadCookie    = -669
	DNSTCPRcodeCatchall     = -670
	DNSTCPResNoReply     = -800
	DNSTCPDNSSECFirst    = -801
	DNSTCPDNSKeyNone     = -801
	DNSTCPDNSKeyNoAdBit  = -802
	DNSTCPResNxDomain    = -803
	DNSTCPAlgoUnknown    = -805
	DNSTCPAlgoNotImpl    = -806
	DNSTCPRRSIGNone      = -807
	DNSTCPNoNSECInAuth   = -808
	DNSTCPRRSIGNotCovered  = -810
	DNSTCPRRSIGNotSigned   = -814
	DNSTCPSigBogus         = -815
	DNSTCPSigExpired       = -816
	DNSTCPSigNotIncepted   = -817
	DNSTCPSigExBeforeIn    = -818
	DNSTCPNSEC3Error       = -819
	DNSTCPRRNotCovered     = -822
	DNSTCPWildNotCovered   = -823
	DNSTCPRRSIGMissRData   = -825
	DNSTCPDNSSECCatchall   = -827
	DNSTCPDNSSECLast       = -827

	// DNSTCPNSNoReply/DNSUDPNSEcon/DNSUDPNSTO do not have dedicated codes;
	// they collapse onto the general internal error, mirroring the
	// original taxonomy's aliasing (a TCP-only or UDP-only failure kind
	// observed on the wrong transport degrades to INTERNAL_GENERAL).
	DNSTCPNSNoReply = DNSTCPInternalGeneral
	DNSUDPNSEcon    = DNSUDPInternalGeneral
	DNSUDPNSTO      = DNSUDPInternalGeneral
)

// RDDS43/RDDS80.
const (
	RDDS43NoNS        = -201
	RDDS80NoCode      = -206
	RDDS43ResNoReply  = -222
	RDDS43ResServFail = -224
	RDDS43ResNxDomain = -225
	RDDS43TO          = -227
	RDDS43Econ        = -228
	RDDS43Empty       = -229

	RDDS80ResNoReply  = -250
	RDDS80ResServFail = -252
	RDDS80ResNxDomain = -253
	RDDS80TO          = -255
	RDDS80Econ        = -256
	RDDS80EHTTP       = -257
	RDDS80EHTTPS      = -258
	RDDS80EMaxRedirects = -259
	RDDS80HTTPBase    = -300
)

// RDAP.
const (
	RDAPNotListed     = -390
	RDAPNoHTTPS       = -391
	RDAPResNoReply    = -400
	RDAPResServFail   = -402
	RDAPResNxDomain   = -403
	RDAPTO            = -405
	RDAPEcon          = -406
	RDAPEJSON         = -407
	RDAPNoName        = -408
	RDAPEName         = -409
	RDAPEHTTP         = -413
	RDAPEHTTPS        = -414
	RDAPEMaxRedirects = -415
	RDAPHTTPBase      = -500
)

// EPP is carried for reference only; the probe never executes the legacy
// EPP path (see spec's Non-goals), so these constants are unused by any
// check implementation but are kept for parity with the original taxonomy.
const (
	EPPNoIP        = -200
	EPPConnect     = -201
	EPPCrypt       = -202
	EPPFirstTO     = -203
	EPPFirstInval  = -204
	EPPLoginTO     = -205
	EPPLoginInval  = -206
	EPPUpdateTO    = -207
	EPPUpdateInval = -208
	EPPInfoTO      = -209
	EPPInfoInval   = -210
	EPPServerCert  = -211
)

// ResolverError is the result of resolving a hostname through the probe's
// local caching resolver.
type ResolverError int

// ResolverOK is returned by resolution helpers in place of a real
// ResolverError value to mean "no failure occurred". It is negative so it
// can never collide with a real enumerator, which all start at 0.
const ResolverOK ResolverError = -1

const (
	ResolverInternal ResolverError = iota
	ResolverNoReply
	ResolverServFail
	ResolverNxDomain
	ResolverCatchall
)

// DNSKeysError classifies a failed DNSKEY fetch.
type DNSKeysError int

// DNSKeysOK means the DNSKEY fetch succeeded.
const DNSKeysOK DNSKeysError = -1

const (
	DNSKeysInternal DNSKeysError = iota
	DNSKeysNoReply
	DNSKeysNone
	DNSKeysNoAdBit
	DNSKeysNxDomain
	DNSKeysCatchall
)

// NSAnswerError classifies why a per-nameserver reply's answer was rejected
// after a successful transport exchange.
type NSAnswerError int

// NSAnswerOK means the reply's answer was accepted.
const NSAnswerOK NSAnswerError = -1

const (
	NSAnswerInternal NSAnswerError = iota
	NSAnswerNoAAFlag
	NSAnswerNoDomain
)

// NSQueryError classifies transport/parse failures of the NXDOMAIN test
// query itself.
type NSQueryError int

// NSQueryOK means the NXDOMAIN test query succeeded.
const NSQueryOK NSQueryError = -1

const (
	NSQueryInternal NSQueryError = iota
	NSQueryNoReply // UDP only
	NSQueryEcon    // TCP only
	NSQueryTO      // TCP only
	NSQueryIncHeader
	NSQueryIncQuestion
	NSQueryIncAnswer
	NSQueryIncAuthority
	NSQueryIncAdditional
	NSQueryCatchall
)

// RRClassError classifies a non-IN record class encountered in a reply.
type RRClassError int

// RRClassOK means every RR in the list had class IN.
const RRClassOK RRClassError = -1

const (
	RRClassInternal RRClassError = iota
	RRClassChaos
	RRClassHesiod
	RRClassCatchall
)

// DNSSECError enumerates every DNSSEC validation failure kind, mirroring the
// ldns status codes the original implementation surfaced plus two
// library-agnostic kinds (RRSIGNone, NoNSECInAuth) added for a validator
// that is not ldns-shaped.
type DNSSECError int

// DNSSECOK means DNSSEC validation succeeded.
const DNSSECOK DNSSECError = -1

const (
	DNSSECInternal DNSSECError = iota
	DNSSECAlgoUnknown
	DNSSECAlgoNotImpl
	DNSSECRRSIGNone
	DNSSECNoNSECInAuth
	DNSSECRRSIGNotCovered
	DNSSECRRSIGNotSigned
	DNSSECSigBogus
	DNSSECSigExpired
	DNSSECSigNotIncepted
	DNSSECSigExBeforeIn
	DNSSECNSEC3Error
	DNSSECRRNotCovered
	DNSSECWildNotCovered
	DNSSECRRSIGMissRData
	DNSSECCatchall
)

// HTTPPreStatusError classifies an HTTP exchange failure that happens
// before a status code is known.
type HTTPPreStatusError int

const (
	HTTPPreStatusInternal HTTPPreStatusError = iota
	HTTPPreStatusTimeout
	HTTPPreStatusEcon
	HTTPPreStatusEHTTP
	HTTPPreStatusEHTTPS
	HTTPPreStatusNoCode
	HTTPPreStatusEMaxRedirects
)

// HTTPError is either a pre-status failure or a non-200 status code.
type HTTPError struct {
	PreStatus HTTPPreStatusError
	Status    int // 0 if PreStatus is meaningful
	IsStatus  bool
}

func PreStatusHTTPError(e HTTPPreStatusError) HTTPError {
	return HTTPError{PreStatus: e}
}

func StatusHTTPError(code int) HTTPError {
	return HTTPError{Status: code, IsStatus: true}
}
