// Package mode implements the persistent Normal/CriticalUDP/CriticalTCP
// test-mode state machine kept per rsmhost, plus the protocol pick that
// runs before each DNS test.
package mode

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

// Store persists ModeMetadata for one rsmhost under dir, named
// dns-test-metadata-<rsmhost>.bin, matching the on-disk naming the
// monitoring platform's other tooling already expects.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(rsmhost string) string {
	return filepath.Join(s.dir, fmt.Sprintf("dns-test-metadata-%s.bin", rsmhost))
}

// Load returns the persisted metadata for rsmhost, or (Normal, 0) if no
// file exists.
func (s *Store) Load(rsmhost string) (rsmtypes.ModeMetadata, error) {
	data, err := os.ReadFile(s.path(rsmhost))
	if err != nil {
		if os.IsNotExist(err) {
			return rsmtypes.ModeMetadata{Mode: rsmtypes.ModeNormal}, nil
		}
		return rsmtypes.ModeMetadata{}, fmt.Errorf("mode: read %s: %w", rsmhost, err)
	}
	if len(data) != 8 {
		return rsmtypes.ModeMetadata{}, fmt.Errorf("mode: %s: corrupt metadata file (%d bytes)", rsmhost, len(data))
	}
	m := int32(binary.NativeEndian.Uint32(data[0:4]))
	counter := int32(binary.NativeEndian.Uint32(data[4:8]))
	return rsmtypes.ModeMetadata{Mode: rsmtypes.Mode(m), SuccessfulTests: counter}, nil
}

// Save persists meta for rsmhost, or removes the file entirely when meta
// is Normal — Normal is the implicit default and carries no counter worth
// keeping around.
func (s *Store) Save(rsmhost string, meta rsmtypes.ModeMetadata) error {
	if meta.Mode == rsmtypes.ModeNormal {
		err := os.Remove(s.path(rsmhost))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("mode: remove %s: %w", rsmhost, err)
		}
		return nil
	}

	buf := make([]byte, 8)
	binary.NativeEndian.PutUint32(buf[0:4], uint32(int32(meta.Mode)))
	binary.NativeEndian.PutUint32(buf[4:8], uint32(meta.SuccessfulTests))

	tmp := s.path(rsmhost) + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("mode: write %s: %w", rsmhost, err)
	}
	if err := os.Rename(tmp, s.path(rsmhost)); err != nil {
		return fmt.Errorf("mode: rename %s: %w", rsmhost, err)
	}
	return nil
}

// Thresholds bundles the recovery thresholds the state machine needs.
type Thresholds struct {
	RecoverUDP int32
	RecoverTCP int32
}

// Advance runs one state-machine step given the aggregate DNS up/down
// verdict for the test that just ran under protocol, and returns the new
// metadata to persist.
func Advance(current rsmtypes.ModeMetadata, dnsUp bool, protocol rsmtypes.Protocol, th Thresholds) rsmtypes.ModeMetadata {
	switch current.Mode {
	case rsmtypes.ModeNormal:
		if dnsUp {
			return current
		}
		next := rsmtypes.ModeCriticalUDP
		if protocol == rsmtypes.ProtocolTCP {
			next = rsmtypes.ModeCriticalTCP
		}
		return rsmtypes.ModeMetadata{Mode: next, SuccessfulTests: 0}

	case rsmtypes.ModeCriticalUDP, rsmtypes.ModeCriticalTCP:
		if !dnsUp {
			return rsmtypes.ModeMetadata{Mode: current.Mode, SuccessfulTests: 0}
		}
		threshold := th.RecoverUDP
		if current.Mode == rsmtypes.ModeCriticalTCP {
			threshold = th.RecoverTCP
		}
		counter := current.SuccessfulTests + 1
		if counter >= threshold {
			return rsmtypes.ModeMetadata{Mode: rsmtypes.ModeNormal}
		}
		return rsmtypes.ModeMetadata{Mode: current.Mode, SuccessfulTests: counter}

	default:
		return current
	}
}

// ProtocolParams bundles the inputs to PickProtocol.
type ProtocolParams struct {
	UDPEnabled bool
	TCPEnabled bool
	Mode       rsmtypes.Mode
	Nextcheck  int64 // unix seconds of the scheduled check
	Reserved1  uint64
	Reserved2  uint64
	TCPRatio   int64
}

// PickProtocol selects UDP or TCP for the upcoming test, before the state
// machine runs, per the desynchronization rule: when both protocols are
// enabled and the host is Normal, the minute-quantized nextcheck time plus
// the host platform's scheduling coordinates pick TCP once every
// TCPRatio ticks, spreading the switchover across probes instead of
// having every probe flip to TCP on the same minute.
func PickProtocol(p ProtocolParams) rsmtypes.Protocol {
	switch {
	case p.UDPEnabled && !p.TCPEnabled:
		return rsmtypes.ProtocolUDP
	case p.TCPEnabled && !p.UDPEnabled:
		return rsmtypes.ProtocolTCP
	}

	switch p.Mode {
	case rsmtypes.ModeCriticalUDP:
		return rsmtypes.ProtocolUDP
	case rsmtypes.ModeCriticalTCP:
		return rsmtypes.ProtocolTCP
	}

	if p.TCPRatio <= 0 {
		return rsmtypes.ProtocolUDP
	}
	quantum := p.Nextcheck/60 + int64(p.Reserved1) + int64(p.Reserved2)
	if quantum%p.TCPRatio == 0 {
		return rsmtypes.ProtocolTCP
	}
	return rsmtypes.ProtocolUDP
}
