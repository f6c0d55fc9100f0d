package netif

import (
	"errors"
	"net/netip"
	"testing"
)

func assertNoError(t testing.TB, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
}

func assertStatusError(t testing.TB, err error, call string, code Status) {
	t.Helper()

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("got %v want *StatusError", err)
	}
	if se.Call != call || se.Code != code {
		t.Errorf("got %s/%s want %s/%s", se.Call, se.Code, call, code)
	}
}

func assertAddr(t testing.TB, got netip.Addr, want string) {
	t.Helper()

	if got != netip.MustParseAddr(want) {
		t.Errorf("got %s want %s", got, want)
	}
}

func layoutOf(ip, netmask, gw string) IpInfoLayout {
	return IpInfoLayout{
		IP:      netip.MustParseAddr(ip).As4(),
		Netmask: netip.MustParseAddr(netmask).As4(),
		Gw:      netip.MustParseAddr(gw).As4(),
	}
}
