package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
	"github.com/spf13/cobra"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/metrics"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

const resolverStatusArity = 5

// NewResolverStatusCommand creates the 'resolverstatus' subcommand: a
// single SOA query against the local caching resolver, reported as a
// bare integer.
func NewResolverStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolverstatus resolver-ip timeout tries ipv4? ipv6?",
		Short: "Run the resolver-status reachability check",
		Args:  cobra.ExactArgs(resolverStatusArity),
		RunE:  runResolverStatus,
	}
	addAmbientFlags(cmd)
	return cmd
}

func runResolverStatus(cmd *cobra.Command, args []string) error {
	start := time.Now()
	p, err := parseResolverStatusArgs(args)
	if err != nil {
		return notSupported(cmd, "%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	logger, closer, err := openLog(cfg, "", "resolverstatus")
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	defer closer.Close()
	defer finishMetrics(logger, "resolverstatus", start)

	logger.Info("starting resolver-status test", "resolver", p.ResolverIP)

	family := familyFromFlags(p.IPv4Enabled, p.IPv6Enabled)
	timeout := time.Duration(p.Timeout) * time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout*time.Duration(p.Tries+1)+5*time.Second)
	defer cancel()

	up := resolverUp(ctx, p.ResolverIP, family, timeout, p.Tries)

	if !up {
		logger.Warn("resolver-status down", "resolver", p.ResolverIP)
		metrics.ProbeKnockdownsTotal.Inc()
	}

	status := 0
	outcomeLabel := "down"
	if up {
		status = 1
		outcomeLabel = "up"
	}
	metrics.ChecksTotal.WithLabelValues("resolverstatus", outcomeLabel).Inc()

	cmd.Println(fmt.Sprintf("%d", status))
	return nil
}

// resolverUp sends a recursive SOA query for the root zone, resent up to
// tries more times only while no reply arrives within timeout, and
// reports whether the reply's RCODE is NOERROR.
func resolverUp(ctx context.Context, resolverIP string, family rsmtypes.IPFamily, timeout time.Duration, tries int) bool {
	r, err := resolver.New("resolver", resolverIP, 53, rsmtypes.ProtocolUDP, family, false, timeout, tries)
	if err != nil {
		return false
	}
	msg := new(dns.Msg)
	msg.SetQuestion(".", dns.TypeSOA)
	msg.RecursionDesired = true

	reply, _, err := r.Send(ctx, msg)
	if err != nil || reply == nil {
		return false
	}
	return reply.Rcode == dns.RcodeSuccess
}
