package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/miekg/dns"
	"github.com/spf13/cobra"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/dnsorchestrator"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/dnsprim"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/metrics"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/mode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/normalize"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/opconfig"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resultenc"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

const dnsArity = 17

// NewDNSCommand creates the 'dns' subcommand.
func NewDNSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns rsmhost testprefix ns-list dnssec? reserved1 reserved2 udp? tcp? ipv4? ipv6? resolver-ip[;port] udp_rtt_limit tcp_rtt_limit tcp_ratio recover_udp recover_tcp minns-expr",
		Short: "Run a DNS test for one rsmhost",
		Args:  cobra.ExactArgs(dnsArity),
		RunE:  runDNS,
	}
	addAmbientFlags(cmd)
	return cmd
}

func runDNS(cmd *cobra.Command, args []string) error {
	start := time.Now()
	p, err := parseDNSArgs(args)
	if err != nil {
		return notSupported(cmd, "%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	logger, closer, err := openLog(cfg, p.RsmHost, "dns")
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	defer closer.Close()
	defer finishMetrics(logger, "dns", start)

	logger.Info("starting dns test", "rsmhost", p.RsmHost)

	store := mode.NewStore(cfg.GetStateDir())
	meta, err := store.Load(p.RsmHost)
	if err != nil {
		logger.Error("failed to load mode metadata", "error", err.Error())
		meta = rsmtypes.ModeMetadata{Mode: rsmtypes.ModeNormal}
	}

	now := nowUnix()
	protocol := mode.PickProtocol(mode.ProtocolParams{
		UDPEnabled: p.UDPEnabled,
		TCPEnabled: p.TCPEnabled,
		Mode:       meta.Mode,
		Nextcheck:  now,
		Reserved1:  p.Reserved1,
		Reserved2:  p.Reserved2,
		TCPRatio:   int64(p.TCPRatio),
	})

	minNS, err := normalize.ParseMinNSExpr(p.MinNSExpr, now)
	if err != nil {
		return notSupported(cmd, "%v", err)
	}

	timeout := time.Duration(cfg.GetDNSTimeout())*time.Second*time.Duration(cfg.GetDNSRetries()+1) + 5*time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	family := familyFromFlags(p.IPv4Enabled, p.IPv6Enabled)
	testedName := p.TestPrefix + "." + p.RsmHost

	var dnsKeys []dns.RR
	dnsKeysErr := errcode.DNSKeysOK
	if p.DNSSECEnabled {
		dnsKeys, dnsKeysErr = fetchDNSKeys(ctx, p, protocol, family, cfg)
	}

	outcome := dnsorchestrator.Run(ctx, dnsorchestrator.Params{
		NameServers:   p.NameServers,
		TestedName:    testedName,
		Protocol:      protocol,
		DNSSECEnabled: p.DNSSECEnabled,
		DNSSECOK:      p.DNSSECEnabled,
		DNSKeys:       dnsKeys,
		DNSKeysErr:    dnsKeysErr,
		Port:          p.ResolverPort,
		Timeout:       cfg.GetDNSTimeout(),
		Retries:       cfg.GetDNSRetries(),
		UDPLimit:      p.UDPRTTLimit,
		TCPLimit:      p.TCPRTTLimit,
		MinNS:         minNS,
	})

	newMeta := mode.Advance(meta, outcome.DNSUp, protocol, mode.Thresholds{
		RecoverUDP: int32(p.RecoverUDP),
		RecoverTCP: int32(p.RecoverTCP),
	})
	if err := store.Save(p.RsmHost, newMeta); err != nil {
		logger.Error("failed to save mode metadata", "error", err.Error())
	}

	knockedDown := false
	for _, ns := range p.NameServers {
		for _, ep := range ns.Endpoints {
			if ep.RTT == errcode.DNSUDPInternalGeneral {
				knockedDown = true
			}
			if ep.RTT < 0 {
				metrics.EndpointErrorsTotal.WithLabelValues("dns-"+protocol.String(), strconv.Itoa(ep.RTT)).Inc()
			}
		}
	}
	if knockedDown {
		metrics.ProbeKnockdownsTotal.Inc()
	}

	result := encodeDNSResult(p, protocol, testedName, outcome, newMeta.Mode)
	body, err := resultenc.DNS(result)
	if err != nil {
		logger.Error("failed to encode result", "error", err.Error())
		return notSupported(cmd, "failed to encode result: %v", err)
	}

	outcomeLabel := "down"
	if outcome.DNSUp {
		outcomeLabel = "up"
	}
	metrics.ChecksTotal.WithLabelValues("dns", outcomeLabel).Inc()

	cmd.Println(string(body))
	return nil
}

func fetchDNSKeys(ctx context.Context, p *rsmtypes.DNSParams, protocol rsmtypes.Protocol, family rsmtypes.IPFamily, cfg *opconfig.Config) ([]dns.RR, errcode.DNSKeysError) {
	r, err := resolver.New("resolver", p.ResolverIP, p.ResolverPort, protocol, family, true, time.Duration(cfg.GetDNSTimeout())*time.Second, cfg.GetDNSRetries())
	if err != nil {
		return nil, errcode.DNSKeysInternal
	}
	return dnsprim.GetDNSKeys(ctx, r, p.RsmHost)
}

func encodeDNSResult(p *rsmtypes.DNSParams, protocol rsmtypes.Protocol, testedName string, outcome dnsorchestrator.Outcome, resultMode rsmtypes.Mode) rsmtypes.DNSResult {
	var nsips []rsmtypes.DNSNsIP
	var nss []rsmtypes.DNSNs
	for i, ns := range p.NameServers {
		for _, ep := range ns.Endpoints {
			var nsid *string
			if ep.NSID != "" {
				n := ep.NSID
				nsid = &n
			}
			nsips = append(nsips, rsmtypes.DNSNsIP{
				NS:       ns.Name,
				IP:       ep.Address,
				NSID:     nsid,
				Protocol: protocol.String(),
				RTT:      ep.RTT,
			})
		}
		nss = append(nss, rsmtypes.DNSNs{NS: ns.Name, Status: int(outcome.NsStatuses[i])})
	}

	status := 0
	if outcome.DNSUp {
		status = 1
	}
	protoInt := 0
	if protocol == rsmtypes.ProtocolTCP {
		protoInt = 1
	}

	result := rsmtypes.DNSResult{
		NsIPs:      nsips,
		Nss:        nss,
		Mode:       int(resultMode),
		Status:     status,
		Protocol:   protoInt,
		TestedName: testedName,
	}
	if p.DNSSECEnabled {
		d := 0
		if outcome.DNSSECUp {
			d = 1
		}
		result.DNSSECStatus = &d
	}
	return result
}

func familyFromFlags(ipv4, ipv6 bool) rsmtypes.IPFamily {
	switch {
	case ipv4 && !ipv6:
		return rsmtypes.FamilyV4Only
	case ipv6 && !ipv4:
		return rsmtypes.FamilyV6Only
	default:
		return rsmtypes.FamilyEither
	}
}
