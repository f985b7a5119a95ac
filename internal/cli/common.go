package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/metrics"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/opconfig"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmlog"
)

// Ambient flags shared by every subcommand, per SPEC_FULL.md §6.
var (
	opconfigPath string
	logDirFlag   string
	metricsFile  string
	debugFlag    bool
)

func addAmbientFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opconfigPath, "opconfig", "", "path to the ambient-defaults YAML config")
	cmd.Flags().StringVar(&logDirFlag, "log-dir", "", "log directory (overrides opconfig)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile-collector output to this path after the check completes")
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "mirror log lines to stderr in addition to the log file")
}

func loadConfig() (*opconfig.Config, error) {
	cfg, err := opconfig.Load(opconfigPath)
	if err != nil {
		return nil, fmt.Errorf("cli: load opconfig: %w", err)
	}
	return cfg, nil
}

// openLog opens the per-check log file named per spec.md §6, honoring
// --log-dir and --debug.
func openLog(cfg *opconfig.Config, rsmhost, check string) (*slog.Logger, io.Closer, error) {
	dir := cfg.GetLogDir()
	if logDirFlag != "" {
		dir = logDirFlag
	}
	return rsmlog.OpenTee(dir, cfg.GetProbeName(), rsmhost, check, debugFlag)
}

// finishMetrics writes the process-local registry to --metrics-file, if
// the flag was given. A failure here is logged but never turns a
// completed measurement into a parameter-error result.
func finishMetrics(logger *slog.Logger, check string, start time.Time) {
	metrics.CheckDuration.WithLabelValues(check).Observe(time.Since(start).Seconds())
	if metricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(metricsFile); err != nil && logger != nil {
		logger.Warn("failed to write metrics textfile", "error", err.Error())
	}
}

// notSupported prints the "not supported" diagnostic to stdout (the
// check's text result channel, per spec.md §6) and returns an error,
// which the root command turns into a non-zero exit code. Cobra's own
// usage/error banner is silenced: the diagnostic line above is the only
// output a caller should see.
func notSupported(cmd *cobra.Command, format string, args ...any) error {
	diag := fmt.Sprintf(format, args...)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	fmt.Fprintf(cmd.OutOrStdout(), "not supported: %s\n", diag)
	return fmt.Errorf("%s", diag)
}

func nowUnix() int64 {
	return time.Now().Unix()
}

// recordSubError counts a negative RTT-or-errcode value in the
// per-interface endpoint error metric.
func recordSubError(iface string, rttOrCode int) {
	if rttOrCode < 0 {
		metrics.EndpointErrorsTotal.WithLabelValues(iface, strconv.Itoa(rttOrCode)).Inc()
	}
}

// subtestOK applies the subtest_result predicate (spec.md §4.5) to a
// single RTT-or-errcode value outside the DNS orchestrator's per-NS
// quorum context: RDDS43, RDDS80 and RDAP each report their own
// top-level status the same way, one measurement against one limit.
func subtestOK(rttOrCode, limit int) bool {
	switch {
	case rttOrCode == errcode.NoValue:
		return true
	case rttOrCode > errcode.InternalLast && rttOrCode <= -1:
		return true
	default:
		return 0 <= rttOrCode && rttOrCode <= limit
	}
}
