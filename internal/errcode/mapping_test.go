package errcode

import "testing"

func TestMapHTTPCodeKnownOrdinals(t *testing.T) {
	cases := map[int]int{
		100: 0,
		103: 3,
		201: 4,
		226: 12,
		300: 13,
		304: 17,
		305: 18,
		306: 19,
		308: 21,
		400: 22,
		451: 48,
		500: 49,
		511: 59,
	}
	for status, want := range cases {
		if got := MapHTTPCode(status); got != want {
			t.Errorf("MapHTTPCode(%d) = %d, want %d", status, got, want)
		}
	}
}

func TestMapHTTPCodeObsoletesFollowedRedirects(t *testing.T) {
	for _, status := range []int{301, 302, 303} {
		if got := MapHTTPCode(status); got != httpCatchallOrdinal {
			t.Errorf("MapHTTPCode(%d) = %d, want catch-all %d since redirects are followed", status, got, httpCatchallOrdinal)
		}
	}
}

func TestMapHTTPCodeCatchallForUnassigned(t *testing.T) {
	if got := MapHTTPCode(299); got != httpCatchallOrdinal {
		t.Errorf("MapHTTPCode(299) = %d, want catch-all %d", got, httpCatchallOrdinal)
	}
	if httpCatchallOrdinal != 60 {
		t.Errorf("httpCatchallOrdinal = %d, want 60", httpCatchallOrdinal)
	}
}

func TestMapHTTPErrorRDDS80StatusUsesOrdinal(t *testing.T) {
	got := MapHTTPErrorRDDS80(StatusHTTPError(404))
	want := RDDS80HTTPBase - 26
	if got != want {
		t.Errorf("MapHTTPErrorRDDS80(404) = %d, want %d", got, want)
	}
}

func TestMapHTTPErrorRDAPStatusUsesOrdinal(t *testing.T) {
	got := MapHTTPErrorRDAP(StatusHTTPError(500))
	want := RDAPHTTPBase - 49
	if got != want {
		t.Errorf("MapHTTPErrorRDAP(500) = %d, want %d", got, want)
	}
}
