package rdds

import (
	"context"
	"testing"
	"time"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

func TestRun80UnresolvableHostIsNegative(t *testing.T) {
	r, err := resolver.New("resolver", "192.0.2.53", 53, rsmtypes.ProtocolUDP, rsmtypes.FamilyEither, false, 200*time.Millisecond, 0)
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got := Run80(ctx, r, "http://whois.example.test/", rsmtypes.FamilyEither, 200*time.Millisecond, 5)
	if got.RTTOrCode >= 0 {
		t.Errorf("expected a negative errcode when the resolver is unreachable, got %d", got.RTTOrCode)
	}
}
