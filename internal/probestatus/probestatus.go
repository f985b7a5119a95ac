// Package probestatus implements the probe-status check: a per-family
// root-server quorum check with online-delay hysteresis on the
// Offline-to-Online transition.
package probestatus

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/miekg/dns"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

// FamilyCheck bundles one family's root-server quorum inputs.
type FamilyCheck struct {
	Enabled  bool
	RootIPs  []string
	Quorum   int
	RTTLimit int
}

// Params bundles the probe-status check's inputs.
type Params struct {
	V4 FamilyCheck
	V6 FamilyCheck

	Timeout time.Duration
	Retries int
}

// checkFamily iterates RootIPs for one family, stopping once Quorum
// servers have answered OK, and reports whether the family's quorum was
// reached.
func checkFamily(ctx context.Context, fc FamilyCheck, family rsmtypes.IPFamily) bool {
	if !fc.Enabled {
		return true
	}
	ok := 0
	for _, ip := range fc.RootIPs {
		if ok >= fc.Quorum {
			break
		}
		if rootServerOK(ctx, ip, family, fc.RTTLimit) {
			ok++
		}
	}
	return ok >= fc.Quorum
}

func rootServerOK(ctx context.Context, ip string, family rsmtypes.IPFamily, rttLimit int) bool {
	r, err := resolver.New("root", ip, 53, rsmtypes.ProtocolUDP, family, true, 2*time.Second, 0)
	if err != nil {
		return false
	}
	msg := new(dns.Msg)
	msg.SetQuestion(".", dns.TypeSOA)
	msg.RecursionDesired = false

	reply, rtt, err := r.Send(ctx, msg)
	if err != nil {
		return false
	}
	if int(rtt.Milliseconds()) > rttLimit {
		return false
	}
	hasSOA, hasRRSIG := false, false
	for _, rr := range reply.Answer {
		switch rr.Header().Rrtype {
		case dns.TypeSOA:
			hasSOA = true
		case dns.TypeRRSIG:
			hasRRSIG = true
		}
	}
	return hasSOA && hasRRSIG
}

// Check runs the quorum check for every enabled family and returns the
// candidate status, ignoring the online-delay hysteresis (see
// ApplyHysteresis for that).
func Check(ctx context.Context, p Params) int {
	v4OK := checkFamily(ctx, p.V4, rsmtypes.FamilyV4Only)
	v6OK := checkFamily(ctx, p.V6, rsmtypes.FamilyV6Only)
	if v4OK && v6OK {
		return errcode.ProbeOnline
	}
	return errcode.ProbeOffline
}

// OnlineSince is the persistent hysteresis state kept across invocations
// of this one-shot check: Store reads and writes it in a state file, and
// ApplyHysteresis applies the rule to it.
type OnlineSince struct {
	// Seconds is 0 when the probe is not currently tracking an
	// Offline-to-Online transition.
	Seconds int64
}

// ApplyHysteresis applies the online-delay rule on top of a candidate
// status: the probe must stay apparently-Online for onlineDelay seconds
// before it is actually reported Online.
func ApplyHysteresis(candidate int, state OnlineSince, now int64, onlineDelay int64) (int, OnlineSince) {
	if candidate != errcode.ProbeOnline {
		return errcode.ProbeOffline, OnlineSince{Seconds: 0}
	}
	if state.Seconds == 0 {
		state.Seconds = now
	}
	if now-state.Seconds < onlineDelay {
		return errcode.ProbeOffline, state
	}
	return errcode.ProbeOnline, state
}

// Store persists OnlineSince across invocations, since the probe-status
// check is a one-shot CLI with no process-wide state of its own — the
// host platform's accessor functions described in spec.md §5 become a
// plain file here, named the same way internal/mode names its metadata
// file.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, "probe-status-online-since.bin")
}

// Load returns the persisted OnlineSince, or a zero value if no file
// exists yet.
func (s *Store) Load() (OnlineSince, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return OnlineSince{}, nil
		}
		return OnlineSince{}, fmt.Errorf("probestatus: read online-since: %w", err)
	}
	if len(data) != 8 {
		return OnlineSince{}, fmt.Errorf("probestatus: corrupt online-since file (%d bytes)", len(data))
	}
	return OnlineSince{Seconds: int64(binary.NativeEndian.Uint64(data))}, nil
}

// Save persists state, or removes the file when state tracks no
// transition.
func (s *Store) Save(state OnlineSince) error {
	if state.Seconds == 0 {
		err := os.Remove(s.path())
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("probestatus: remove online-since: %w", err)
		}
		return nil
	}
	buf := make([]byte, 8)
	binary.NativeEndian.PutUint64(buf, uint64(state.Seconds))
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("probestatus: write online-since: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("probestatus: rename online-since: %w", err)
	}
	return nil
}
