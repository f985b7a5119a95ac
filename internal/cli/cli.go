// Package cli provides the rsmprobe command-line interface: one cobra
// subcommand per check type, each taking the exact positional argument
// vector the monitoring platform passes for that check.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// PackageVersion is the current version of the CLI.
const PackageVersion = "1.0.0"

// NewRootCmd creates the root CLI command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "rsmprobe",
		Short:   "Registry Service Monitoring probe",
		Long:    `rsmprobe runs a single DNS, RDDS, RDAP, probe-status, or resolver-status test and reports its result as JSON or as an integer, for invocation once per test by a monitoring platform.`,
		Version: PackageVersion,
	}

	rootCmd.AddCommand(NewDNSCommand())
	rootCmd.AddCommand(NewRDDSCommand())
	rootCmd.AddCommand(NewRDAPCommand())
	rootCmd.AddCommand(NewProbeStatusCommand())
	rootCmd.AddCommand(NewResolverStatusCommand())
	return rootCmd
}

// Execute runs the CLI and exits non-zero on any error. A subcommand
// returns a non-nil error for a parameter error, and also when the
// operational config cannot be loaded, the log file cannot be opened or
// the result cannot be encoded; these non-parameter failures exit
// non-zero as well. Measurement failures are reported via a well-formed
// result and a nil error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
