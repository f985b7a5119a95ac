package probestatus

import (
	"testing"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
)

func TestApplyHysteresisStaysOfflineUntilDelayElapses(t *testing.T) {
	status, state := ApplyHysteresis(errcode.ProbeOnline, OnlineSince{}, 1000, 60)
	if status != errcode.ProbeOffline {
		t.Errorf("expected Offline on first successful check, got %d", status)
	}
	if state.Seconds != 1000 {
		t.Errorf("expected online_since to be set to now, got %d", state.Seconds)
	}

	status, state = ApplyHysteresis(errcode.ProbeOnline, state, 1030, 60)
	if status != errcode.ProbeOffline {
		t.Errorf("expected still Offline before the delay elapses, got %d", status)
	}

	status, state = ApplyHysteresis(errcode.ProbeOnline, state, 1061, 60)
	if status != errcode.ProbeOnline {
		t.Errorf("expected Online once the delay has elapsed, got %d", status)
	}
}

func TestApplyHysteresisResetsOnFailure(t *testing.T) {
	_, state := ApplyHysteresis(errcode.ProbeOnline, OnlineSince{}, 1000, 60)
	status, state := ApplyHysteresis(errcode.ProbeOffline, state, 1010, 60)
	if status != errcode.ProbeOffline || state.Seconds != 0 {
		t.Errorf("expected a failed check to reset online_since, got status=%d state=%+v", status, state)
	}
}

func TestApplyHysteresisZeroDelayIsImmediate(t *testing.T) {
	status, _ := ApplyHysteresis(errcode.ProbeOnline, OnlineSince{}, 1000, 0)
	if status != errcode.ProbeOnline {
		t.Errorf("expected immediate Online with a zero delay, got %d", status)
	}
}
