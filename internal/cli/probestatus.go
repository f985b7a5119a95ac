package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/metrics"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/probestatus"
)

const probeStatusArity = 10

// NewProbeStatusCommand creates the 'probestatus' subcommand. Unlike the
// other checks, this one reports a bare integer rather than a JSON
// document, per spec.md §6.
func NewProbeStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probestatus automatic ipv4? ipv6? v4-roots v6-roots v4-min v6-min v4-rtt-ms v6-rtt-ms online-delay",
		Short: "Run the probe-status root-server quorum check",
		Args:  cobra.ExactArgs(probeStatusArity),
		RunE:  runProbeStatus,
	}
	addAmbientFlags(cmd)
	return cmd
}

func runProbeStatus(cmd *cobra.Command, args []string) error {
	start := time.Now()
	p, err := parseProbeStatusArgs(args)
	if err != nil {
		return notSupported(cmd, "%v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	logger, closer, err := openLog(cfg, "", "probestatus")
	if err != nil {
		return notSupported(cmd, "%v", err)
	}
	defer closer.Close()
	defer finishMetrics(logger, "probestatus", start)

	logger.Info("starting probe-status test")

	timeout := time.Duration(maxInt(p.V4RTTLimit, p.V6RTTLimit)) * time.Millisecond
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout+5*time.Second)
	defer cancel()

	v4Quorum := p.V4Min
	v6Quorum := p.V6Min

	candidate := probestatus.Check(ctx, probestatus.Params{
		V4: probestatus.FamilyCheck{Enabled: p.IPv4Enabled, RootIPs: p.V4Roots, Quorum: v4Quorum, RTTLimit: p.V4RTTLimit},
		V6: probestatus.FamilyCheck{Enabled: p.IPv6Enabled, RootIPs: p.V6Roots, Quorum: v6Quorum, RTTLimit: p.V6RTTLimit},
		Timeout: timeout,
	})

	store := probestatus.NewStore(cfg.GetStateDir())
	state, err := store.Load()
	if err != nil {
		logger.Error("failed to load online-since state", "error", err.Error())
		state = probestatus.OnlineSince{}
	}

	status, newState := probestatus.ApplyHysteresis(candidate, state, nowUnix(), int64(p.OnlineDelay))
	if err := store.Save(newState); err != nil {
		logger.Error("failed to save online-since state", "error", err.Error())
	}

	outcomeLabel := "down"
	if status == errcode.ProbeOnline {
		outcomeLabel = "up"
	}
	metrics.ChecksTotal.WithLabelValues("probestatus", outcomeLabel).Inc()

	cmd.Println(fmt.Sprintf("%d", status))
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
