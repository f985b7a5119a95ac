// Package opconfig loads the probe's ambient YAML configuration: paths,
// timeouts, and concurrency limits that are not part of a single check's
// positional argument vector. CLI flags always take precedence over a
// configured value, and a configured value always takes precedence over
// the package's built-in default.
package opconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root ambient configuration structure.
type Config struct {
	LogDir      string      `yaml:"log_dir,omitempty"`
	StateDir    string      `yaml:"state_dir,omitempty"`
	MetricsFile string      `yaml:"metrics_file,omitempty"`
	Probe       ProbeConfig `yaml:"probe,omitempty"`
	DNS         DNSConfig   `yaml:"dns,omitempty"`
}

// ProbeConfig controls the probe's own identity and concurrency.
type ProbeConfig struct {
	Name           string `yaml:"name,omitempty"`
	MaxConcurrency int    `yaml:"max_concurrency,omitempty"`
}

// DNSConfig controls default DNS query behavior shared across checks.
type DNSConfig struct {
	Timeout int `yaml:"timeout,omitempty"`
	Retries int `yaml:"retries,omitempty"`
}

// Load reads YAML from path and returns an empty Config if the file does
// not exist — the probe runs fine on built-in defaults alone.
func Load(path string) (*Config, error) {
	// #nosec G304 -- path is operator-controlled via CLI flag by design
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("opconfig: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("opconfig: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// GetLogDir provides the default fallback for LogDir.
func (c *Config) GetLogDir() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	return "/var/log/rsmprobe"
}

// GetStateDir provides the default fallback for StateDir.
func (c *Config) GetStateDir() string {
	if c.StateDir != "" {
		return c.StateDir
	}
	return "/var/tmp/rsmprobe"
}

// GetMetricsFile provides the default fallback for MetricsFile, a
// Prometheus textfile-collector target.
func (c *Config) GetMetricsFile() string {
	if c.MetricsFile != "" {
		return c.MetricsFile
	}
	return "/var/lib/node_exporter/textfile_collector/rsmprobe.prom"
}

// GetProbeName provides the default fallback for ProbeConfig.Name.
func (c *Config) GetProbeName() string {
	if c.Probe.Name != "" {
		return c.Probe.Name
	}
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "probe"
	}
	return hostname
}

// GetMaxConcurrency provides the default fallback for the per-process
// endpoint-worker concurrency cap.
func (c *Config) GetMaxConcurrency() int {
	if c.Probe.MaxConcurrency > 0 {
		return c.Probe.MaxConcurrency
	}
	return 64
}

// GetDNSTimeout provides the default fallback, in seconds, for a DNS
// query's per-try timeout.
func (c *Config) GetDNSTimeout() int {
	if c.DNS.Timeout > 0 {
		return c.DNS.Timeout
	}
	return 2
}

// GetDNSRetries provides the default fallback for the DNS query retry
// count.
func (c *Config) GetDNSRetries() int {
	if c.DNS.Retries > 0 {
		return c.DNS.Retries
	}
	return 1
}

// ApplyIntOverride applies a CLI flag override to a config int field with
// default fallback: a changed, positive flag value wins; otherwise a zero
// target falls back to defaultVal.
func ApplyIntOverride(flagChanged bool, flagValue int, target *int, defaultVal int) {
	if flagChanged && flagValue > 0 {
		*target = flagValue
	} else if *target == 0 {
		*target = defaultVal
	}
}

// ApplyStringOverride applies a CLI flag override to a config string field
// with default fallback.
func ApplyStringOverride(cliValue string, target *string, defaultVal string) {
	if cliValue != "" {
		*target = cliValue
	} else if *target == "" {
		*target = defaultVal
	}
}
