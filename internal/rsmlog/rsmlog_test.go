package rsmlog

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestPathWithRsmhost(t *testing.T) {
	got := Path("/var/log", "probe1", "example.test", "dns-udp")
	want := "/var/log/probe1-example.test-dns-udp.log"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPathWithoutRsmhost(t *testing.T) {
	got := Path("/var/log", "probe1", "", "probestatus")
	want := "/var/log/probe1-probestatus.log"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestOpenWritesFixedLineFormat(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := Open(dir, "probe1", "example.test", "dns-udp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("starting test", "rsmhost", "example.test")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "probe1-example.test-dns-udp.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	pattern := `^\d+:\d{8}:\d{6}\.\d{3} INFO: starting test invocation=[0-9a-f-]{36} rsmhost=example\.test\n$`
	if matched, _ := regexp.MatchString(pattern, line); !matched {
		t.Errorf("log line %q does not match expected format %q", line, pattern)
	}
}

func TestOpenTagsEachInvocationWithADistinctUUID(t *testing.T) {
	dir := t.TempDir()
	logger1, closer1, err := Open(dir, "probe1", "example.test", "dns-udp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger1.Info("first")
	closer1.Close()

	logger2, closer2, err := Open(dir, "probe1", "example.test", "dns-udp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger2.Info("second")
	closer2.Close()

	data, err := os.ReadFile(Path(dir, "probe1", "example.test", "dns-udp"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	ids := regexp.MustCompile(`invocation=([0-9a-f-]{36})`).FindAllStringSubmatch(string(data), -1)
	if len(ids) != 2 {
		t.Fatalf("expected 2 invocation attrs, got %d in %q", len(ids), string(data))
	}
	if ids[0][1] == ids[1][1] {
		t.Errorf("expected distinct invocation UUIDs, both were %q", ids[0][1])
	}
}

func TestOpenAppendsAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := Open(dir, "probe1", "", "probestatus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("first")
	closer.Close()

	logger2, closer2, err := Open(dir, "probe1", "", "probestatus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger2.Info("second")
	closer2.Close()

	data, err := os.ReadFile(Path(dir, "probe1", "", "probestatus"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := len(regexp.MustCompile(`\n`).FindAllString(string(data), -1)); got != 2 {
		t.Errorf("expected 2 lines across both opens, got %d", got)
	}
}
