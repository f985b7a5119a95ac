package cli

import "testing"

func TestParseBoolFlag(t *testing.T) {
	v, err := parseBoolFlag("udp?", "1")
	if err != nil || !v {
		t.Fatalf("expected true, nil; got %v, %v", v, err)
	}
	v, err = parseBoolFlag("udp?", "0")
	if err != nil || v {
		t.Fatalf("expected false, nil; got %v, %v", v, err)
	}
	if _, err := parseBoolFlag("udp?", "yes"); err == nil {
		t.Error("expected an error for a non-0/1 value")
	}
}

func TestParseUint31(t *testing.T) {
	n, err := parseUint31("udp_rtt_limit", "500")
	if err != nil || n != 500 {
		t.Fatalf("expected 500, nil; got %d, %v", n, err)
	}
	if _, err := parseUint31("udp_rtt_limit", "-1"); err == nil {
		t.Error("expected an error for a negative value")
	}
	if _, err := parseUint31("udp_rtt_limit", ""); err == nil {
		t.Error("expected an error for an empty value")
	}
	if _, err := parseUint31("udp_rtt_limit", "abc"); err == nil {
		t.Error("expected an error for a non-numeric value")
	}
}

func TestRequireNonEmpty(t *testing.T) {
	if err := requireNonEmpty("rsmhost", "example.test"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := requireNonEmpty("rsmhost", ""); err == nil {
		t.Error("expected an error for an empty value")
	}
}
