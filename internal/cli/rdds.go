package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/dnsprim"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/metrics"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/opconfig"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rdds"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rdds43"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resultenc"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

const rddsArity = 13

// NewRDDSCommand creates the 'rdds' subcommand.
func NewRDDSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rdds rsmhost rdds43-server[;port] rdds80-url rdds43-testedname rdds43-ns-string probe-rdds? rdds43? rdds80? ipv4? ipv6? resolver rtt_limit maxredirs",
		Short: "Run an RDDS43/RDDS80 test for one rsmhost",
		Args:  cobra.ExactArgs(rddsArity),
		RunE:  runRDDS,
	}
	addAmbientFlags(cmd)
	return cmd
}

func runRDDS(cmd *cobra.Command, args []string) error {
	start := time.Now()
	p, err := parseRDDSArgs(args)
	if err != nil {
		return notSupported(cmd, "%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	logger, closer, err := openLog(cfg, p.RsmHost, "rdds")
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	defer closer.Close()
	defer finishMetrics(logger, "rdds", start)

	logger.Info("starting rdds test", "rsmhost", p.RsmHost)

	if !p.ProbeRDDSEnabled {
		body, _ := resultenc.RDDS(rsmtypes.RDDSResult{Status: 0})
		cmd.Println(string(body))
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(p.RTTLimit+5000)*time.Millisecond)
	defer cancel()

	family := familyFromFlags(p.IPv4Enabled, p.IPv6Enabled)
	timeout := time.Duration(p.RTTLimit) * time.Millisecond

	overallUp := true
	result := rsmtypes.RDDSResult{}

	if p.RDDS43Enabled {
		sub := runRDDS43(ctx, p, family, timeout, cfg)
		result.RDDS43 = &sub
		if !subtestOK(sub.RTT, p.RTTLimit) {
			overallUp = false
		}
		recordSubError("rdds43", sub.RTT)
	}

	if p.RDDS80Enabled {
		r, rerr := resolver.New("resolver", p.Resolver, 53, rsmtypes.ProtocolUDP, family, false, timeout, cfg.GetDNSRetries())
		var sub rsmtypes.RDDSSub
		if rerr != nil {
			sub = rsmtypes.RDDSSub{RTT: errcode.RDDS80InternalGeneral, Target: p.RDDS80URL, Status: 0}
		} else {
			res := rdds.Run80(ctx, r, p.RDDS80URL, family, timeout, p.MaxRedirects)
			sub = rsmtypes.RDDSSub{RTT: res.RTTOrCode, Target: p.RDDS80URL, Status: 0}
			if res.IP != "" {
				ip := res.IP
				sub.IP = &ip
			}
		}
		if subtestOK(sub.RTT, p.RTTLimit) {
			sub.Status = 1
		} else {
			overallUp = false
		}
		result.RDDS80 = &sub
		recordSubError("rdds80", sub.RTT)
	}

	if overallUp {
		result.Status = 1
	}

	body, err := resultenc.RDDS(result)
	if err != nil {
		logger.Error("failed to encode result", "error", err.Error())
		return notSupported(cmd, "failed to encode result: %v", err)
	}

	outcomeLabel := "down"
	if overallUp {
		outcomeLabel = "up"
	}
	metrics.ChecksTotal.WithLabelValues("rdds", outcomeLabel).Inc()

	cmd.Println(string(body))
	return nil
}

func runRDDS43(ctx context.Context, p *rsmtypes.RDDSParams, family rsmtypes.IPFamily, timeout time.Duration, cfg *opconfig.Config) rsmtypes.RDDSSub {
	testedName := p.RDDS43TestedName
	sub := rsmtypes.RDDSSub{Target: p.RDDS43Server, TestedName: &testedName}

	r, rerr := resolver.New("resolver", p.Resolver, 53, rsmtypes.ProtocolUDP, family, false, timeout, cfg.GetDNSRetries())
	if rerr != nil {
		sub.RTT = errcode.RDDS43InternalGeneral
		return sub
	}

	ips, reserr := dnsprim.ResolveHost(ctx, r, p.RDDS43Server, family)
	if reserr != errcode.ResolverOK {
		sub.RTT = errcode.MapResolverErrorRDDS43(reserr)
		return sub
	}
	if len(ips) == 0 {
		sub.RTT = errcode.RDDS43InternalIPUnsup
		return sub
	}
	ip := ips[0]
	sub.IP = &ip

	res, code := rdds43.Query(ctx, ip, p.RDDS43Port, testedName, timeout, p.RDDS43NSString)
	sub.RTT = res.RTTMillis
	if code != errcode.NoValue {
		sub.RTT = code
	}
	if subtestOK(sub.RTT, p.RTTLimit) {
		sub.Status = 1
	}
	return sub
}
