package cli

import (
	"testing"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
)

func TestSubtestOKNoValueIsSuccess(t *testing.T) {
	if !subtestOK(errcode.NoValue, 500) {
		t.Error("expected errcode.NoValue to pass regardless of limit")
	}
}

func TestSubtestOKKnockdownCodeIsSuccess(t *testing.T) {
	if !subtestOK(-1, 500) {
		t.Error("expected -1 (knockdown) to still count as success")
	}
}

func TestSubtestOKInternalErrorRangeIsSuccess(t *testing.T) {
	if !subtestOK(-150, 500) {
		t.Error("expected an internal-error-range code to count as success")
	}
}

func TestSubtestOKWithinLimitIsSuccess(t *testing.T) {
	if !subtestOK(200, 500) {
		t.Error("expected an RTT within the limit to succeed")
	}
}

func TestSubtestOKAboveLimitIsFailure(t *testing.T) {
	if subtestOK(600, 500) {
		t.Error("expected an RTT above the limit to fail")
	}
}

func TestSubtestOKBelowInternalRangeIsFailure(t *testing.T) {
	if subtestOK(errcode.InternalLast-1, 500) {
		t.Error("expected a code below the internal-error range to fail")
	}
}
