package rdap

import (
	"context"
	"testing"
	"time"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/resolver"
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

func TestRunNotListedSentinel(t *testing.T) {
	got := Run(context.Background(), nil, "not listed", "example.test", rsmtypes.FamilyEither, time.Second, 5)
	if got.RTTOrCode != errcode.RDAPNotListed {
		t.Errorf("expected RDAPNotListed, got %d", got.RTTOrCode)
	}
}

func TestRunNoHTTPSSentinel(t *testing.T) {
	got := Run(context.Background(), nil, "no https", "example.test", rsmtypes.FamilyEither, time.Second, 5)
	if got.RTTOrCode != errcode.RDAPNoHTTPS {
		t.Errorf("expected RDAPNoHTTPS, got %d", got.RTTOrCode)
	}
}

func TestRunUnreachableResolverIsNegative(t *testing.T) {
	r, err := resolver.New("resolver", "192.0.2.53", 53, rsmtypes.ProtocolUDP, rsmtypes.FamilyEither, false, 200*time.Millisecond, 0)
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got := Run(ctx, r, "https://rdap.example.test/rdap", "example.test", rsmtypes.FamilyEither, 200*time.Millisecond, 5)
	if got.RTTOrCode >= 0 {
		t.Errorf("expected a negative errcode when the resolver is unreachable, got %d", got.RTTOrCode)
	}
}
