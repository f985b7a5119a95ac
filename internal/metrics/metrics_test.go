package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfileProducesPrometheusFormat(t *testing.T) {
	ChecksTotal.WithLabelValues("dns-udp", "up").Inc()

	path := filepath.Join(t.TempDir(), "rsmprobe.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "rsmprobe_checks_total") {
		t.Errorf("expected the checks_total metric family in the textfile, got:\n%s", data)
	}
}

func TestHandlerIsNotNil(t *testing.T) {
	if Handler() == nil {
		t.Error("expected a non-nil HTTP handler")
	}
}
