// Package metrics defines the probe's Prometheus collectors. Unlike a
// long-running server, this probe runs once per check and exits, so
// /metrics is never scraped directly; instead WriteTextfile dumps the
// registry in the textfile-collector format node_exporter expects.
package metrics

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Registry is the process-local collector registry. A fresh one is used
// instead of the global default so a single probe invocation's textfile
// dump carries only metrics this run actually touched.
var Registry = prometheus.NewRegistry()

var (
	// ChecksTotal counts check invocations by kind and outcome.
	ChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rsmprobe_checks_total",
		Help: "Total number of checks run, by check kind and outcome.",
	}, []string{"check", "outcome"})

	// CheckDuration observes wall-clock check duration in seconds.
	CheckDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rsmprobe_check_duration_seconds",
		Help:    "Check wall-clock duration in seconds, by check kind.",
		Buckets: prometheus.DefBuckets,
	}, []string{"check"})

	// EndpointErrorsTotal counts per-endpoint errcode failures, by
	// interface (dns-udp, dns-tcp, rdds43, rdds80, rdap) and errcode.
	EndpointErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rsmprobe_endpoint_errors_total",
		Help: "Endpoint-level failures, by interface and errcode.",
	}, []string{"interface", "errcode"})

	// ProbeKnockdownsTotal counts probe knock-downs, the probe-wide
	// failure side effect: a DNS endpoint reporting
	// DNS_UDP_INTERNAL_GENERAL, or a resolver-status check finding the
	// resolver down.
	ProbeKnockdownsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rsmprobe_knockdowns_total",
		Help: "Number of probe knock-downs (DNS internal-general failures and resolver-status down results).",
	})
)

func init() {
	Registry.MustRegister(ChecksTotal, CheckDuration, EndpointErrorsTotal, ProbeKnockdownsTotal)
}

// WriteTextfile atomically writes the registry's current metrics to path
// in the Prometheus text exposition format, via a temp file plus rename so
// node_exporter's textfile collector never observes a partial write.
func WriteTextfile(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("metrics: create %s: %w", tmp, err)
	}

	families, err := Registry.Gather()
	if err != nil {
		f.Close()
		return fmt.Errorf("metrics: gather: %w", err)
	}
	enc := expfmt.NewEncoder(f, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			f.Close()
			return fmt.Errorf("metrics: encode: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("metrics: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("metrics: rename %s: %w", path, err)
	}
	return nil
}

// Handler exposes the registry over HTTP for the rare case the probe runs
// under a harness that scrapes it directly instead of reading a textfile.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
