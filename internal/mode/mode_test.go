package mode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

func TestAdvanceNormalStaysOnSuccess(t *testing.T) {
	current := rsmtypes.ModeMetadata{Mode: rsmtypes.ModeNormal}
	got := Advance(current, true, rsmtypes.ProtocolUDP, Thresholds{RecoverUDP: 3, RecoverTCP: 3})
	if got.Mode != rsmtypes.ModeNormal {
		t.Errorf("expected to stay Normal, got %v", got.Mode)
	}
}

func TestAdvanceNormalDropsToCriticalOnFailure(t *testing.T) {
	current := rsmtypes.ModeMetadata{Mode: rsmtypes.ModeNormal}
	got := Advance(current, false, rsmtypes.ProtocolTCP, Thresholds{RecoverUDP: 3, RecoverTCP: 3})
	if got.Mode != rsmtypes.ModeCriticalTCP || got.SuccessfulTests != 0 {
		t.Errorf("expected CriticalTCP/0, got %v/%d", got.Mode, got.SuccessfulTests)
	}
}

func TestAdvanceCriticalRecoversAtThreshold(t *testing.T) {
	current := rsmtypes.ModeMetadata{Mode: rsmtypes.ModeCriticalUDP, SuccessfulTests: 2}
	got := Advance(current, true, rsmtypes.ProtocolUDP, Thresholds{RecoverUDP: 3, RecoverTCP: 3})
	if got.Mode != rsmtypes.ModeNormal {
		t.Errorf("expected recovery to Normal at threshold, got %v/%d", got.Mode, got.SuccessfulTests)
	}
}

func TestAdvanceCriticalCountsUpBelowThreshold(t *testing.T) {
	current := rsmtypes.ModeMetadata{Mode: rsmtypes.ModeCriticalUDP, SuccessfulTests: 0}
	got := Advance(current, true, rsmtypes.ProtocolUDP, Thresholds{RecoverUDP: 3, RecoverTCP: 3})
	if got.Mode != rsmtypes.ModeCriticalUDP || got.SuccessfulTests != 1 {
		t.Errorf("expected CriticalUDP/1, got %v/%d", got.Mode, got.SuccessfulTests)
	}
}

func TestAdvanceCriticalResetsCounterOnFailure(t *testing.T) {
	current := rsmtypes.ModeMetadata{Mode: rsmtypes.ModeCriticalUDP, SuccessfulTests: 2}
	got := Advance(current, false, rsmtypes.ProtocolUDP, Thresholds{RecoverUDP: 3, RecoverTCP: 3})
	if got.Mode != rsmtypes.ModeCriticalUDP || got.SuccessfulTests != 0 {
		t.Errorf("expected counter reset to 0, got %d", got.SuccessfulTests)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	meta, err := s.Load("example.test")
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if meta.Mode != rsmtypes.ModeNormal {
		t.Errorf("expected Normal default, got %v", meta.Mode)
	}

	want := rsmtypes.ModeMetadata{Mode: rsmtypes.ModeCriticalTCP, SuccessfulTests: 2}
	if err := s.Save("example.test", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("example.test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestStoreSaveNormalDeletesFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Save("example.test", rsmtypes.ModeMetadata{Mode: rsmtypes.ModeCriticalUDP, SuccessfulTests: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("example.test", rsmtypes.ModeMetadata{Mode: rsmtypes.ModeNormal}); err != nil {
		t.Fatalf("Save normal: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dns-test-metadata-example.test.bin")); !os.IsNotExist(err) {
		t.Errorf("expected metadata file to be removed, stat err = %v", err)
	}
	meta, err := s.Load("example.test")
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if meta.Mode != rsmtypes.ModeNormal {
		t.Errorf("expected Normal after delete, got %v", meta.Mode)
	}
}

func TestPickProtocolSingleEnabled(t *testing.T) {
	if got := PickProtocol(ProtocolParams{UDPEnabled: true}); got != rsmtypes.ProtocolUDP {
		t.Errorf("expected UDP, got %v", got)
	}
	if got := PickProtocol(ProtocolParams{TCPEnabled: true}); got != rsmtypes.ProtocolTCP {
		t.Errorf("expected TCP, got %v", got)
	}
}

func TestPickProtocolCriticalForcesProtocol(t *testing.T) {
	p := ProtocolParams{UDPEnabled: true, TCPEnabled: true, Mode: rsmtypes.ModeCriticalTCP}
	if got := PickProtocol(p); got != rsmtypes.ProtocolTCP {
		t.Errorf("expected TCP while CriticalTCP, got %v", got)
	}
}

func TestPickProtocolDesyncRatio(t *testing.T) {
	p := ProtocolParams{
		UDPEnabled: true, TCPEnabled: true, Mode: rsmtypes.ModeNormal,
		Nextcheck: 600, Reserved1: 0, Reserved2: 0, TCPRatio: 10,
	}
	if got := PickProtocol(p); got != rsmtypes.ProtocolTCP {
		t.Errorf("expected TCP at the desync tick, got %v", got)
	}
	p.Nextcheck = 660
	if got := PickProtocol(p); got != rsmtypes.ProtocolUDP {
		t.Errorf("expected UDP off the desync tick, got %v", got)
	}
}
