package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/metrics"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rdap"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resultenc"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

const rdapArity = 10

// NewRDAPCommand creates the 'rdap' subcommand.
func NewRDAPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rdap rsmhost testedname base-url maxredirs rtt_limit tld? probe? ipv4? ipv6? resolver",
		Short: "Run an RDAP test for one rsmhost",
		Args:  cobra.ExactArgs(rdapArity),
		RunE:  runRDAP,
	}
	addAmbientFlags(cmd)
	return cmd
}

func runRDAP(cmd *cobra.Command, args []string) error {
	start := time.Now()
	p, err := parseRDAPArgs(args)
	if err != nil {
		return notSupported(cmd, "%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	logger, closer, err := openLog(cfg, p.RsmHost, "rdap")
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	defer closer.Close()
	defer finishMetrics(logger, "rdap", start)

	logger.Info("starting rdap test", "rsmhost", p.RsmHost)

	if !p.ProbeEnabled || !p.TLD {
		body, _ := resultenc.RDAP(rsmtypes.RDAPResult{Target: p.BaseURL, TestedName: p.TestedName, Status: 0})
		cmd.Println(string(body))
		return nil
	}

	timeout := time.Duration(p.RTTLimit) * time.Millisecond
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout+5*time.Second)
	defer cancel()

	family := familyFromFlags(p.IPv4Enabled, p.IPv6Enabled)

	var res rdap.Result
	r, rerr := resolver.New("resolver", p.Resolver, 53, rsmtypes.ProtocolUDP, family, false, timeout, cfg.GetDNSRetries())
	if rerr != nil {
		res = rdap.Result{RTTOrCode: errcode.RDAPInternalGeneral}
	} else {
		res = rdap.Run(ctx, r, p.BaseURL, p.TestedName, family, timeout, p.MaxRedirects)
	}

	result := rsmtypes.RDAPResult{Target: p.BaseURL, TestedName: p.TestedName, RTT: res.RTTOrCode}
	if res.IP != "" {
		ip := res.IP
		result.IP = &ip
	}
	up := subtestOK(res.RTTOrCode, p.RTTLimit)
	if up {
		result.Status = 1
	}
	recordSubError("rdap", res.RTTOrCode)

	body, err := resultenc.RDAP(result)
	if err != nil {
		logger.Error("failed to encode result", "error", err.Error())
		return notSupported(cmd, "failed to encode result: %v", err)
	}

	outcomeLabel := "down"
	if up {
		outcomeLabel = "up"
	}
	metrics.ChecksTotal.WithLabelValues("rdap", outcomeLabel).Inc()

	cmd.Println(string(body))
	return nil
}
