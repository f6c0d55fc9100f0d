package netif

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFromNative(t *testing.T) {
	t.Run("all zero is absent", func(t *testing.T) {
		_, ok := fromNative(IpInfoLayout{})
		if ok {
			t.Error("all-zero record should be absent")
		}
	})

	t.Run("network byte order", func(t *testing.T) {
		config, ok := fromNative(IpInfoLayout{IP: [4]byte{192, 168, 1, 42}})
		if !ok {
			t.Fatal("record with an address should be present")
		}
		assertAddr(t, config.Address(), "192.168.1.42")
		assertAddr(t, config.Netmask(), "0.0.0.0")
		assertAddr(t, config.Gateway(), "0.0.0.0")
	})

	t.Run("single non-zero field", func(t *testing.T) {
		config, ok := fromNative(IpInfoLayout{Gw: [4]byte{0, 0, 0, 1}})
		if !ok {
			t.Fatal("record with only a gateway should be present")
		}
		assertAddr(t, config.Gateway(), "0.0.0.1")
	})

	t.Run("round trip", func(t *testing.T) {
		want, ok := fromNative(layoutOf("172.16.4.9", "255.240.0.0", "172.16.0.1"))
		if !ok {
			t.Fatal("round trip source should be present")
		}
		got, ok := fromNative(want.Layout())
		if !ok || got != want {
			t.Errorf("got %+v want %+v", got, want)
		}
	})
}

func TestReadIpConfiguration(t *testing.T) {
	mf := NewMockFirmware()
	mf.SetIpInfo(Station, layoutOf("10.0.0.5", "255.255.255.0", "10.0.0.1"))

	t.Run("dhcp station", func(t *testing.T) {
		config, ok, err := ReadIpConfiguration(mf, Station)
		assertNoError(t, err)
		if !ok {
			t.Fatal("station should be configured")
		}
		assertAddr(t, config.Address(), "10.0.0.5")
		assertAddr(t, config.Netmask(), "255.255.255.0")
		assertAddr(t, config.Gateway(), "10.0.0.1")
	})

	t.Run("access point never up", func(t *testing.T) {
		_, ok, err := ReadAccessPoint(mf)
		assertNoError(t, err)
		if ok {
			t.Error("access point should have no configuration")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		first, firstOk, err := ReadStation(mf)
		assertNoError(t, err)
		second, secondOk, err := ReadStation(mf)
		assertNoError(t, err)
		if first != second || firstOk != secondOk {
			t.Errorf("got %+v then %+v", first, second)
		}
	})

	t.Run("live state", func(t *testing.T) {
		local := NewMockFirmware()
		local.SetIpInfo(AccessPoint, layoutOf("192.168.4.1", "255.255.255.0", "192.168.4.1"))

		_, ok, err := ReadAccessPoint(local)
		assertNoError(t, err)
		if !ok {
			t.Fatal("access point should be configured")
		}

		local.SetIpInfo(AccessPoint, IpInfoLayout{})
		_, ok, err = ReadAccessPoint(local)
		assertNoError(t, err)
		if ok {
			t.Error("cleared access point should have no configuration")
		}
	})
}

func TestReadIpConfigurationFailure(t *testing.T) {
	mf := NewMockFirmware()
	mf.SetIpInfo(Station, layoutOf("10.0.0.5", "255.255.255.0", "10.0.0.1"))
	mf.Fail(Station, StatusNetifIfNotReady)

	config, ok, err := ReadIpConfiguration(mf, Station)
	assertStatusError(t, err, getIpInfoCall, StatusNetifIfNotReady)
	if ok || config != (IpConfiguration{}) {
		t.Errorf("failed call leaked a configuration: %+v", config)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustReadIpConfiguration did not panic")
		}
	}()
	MustReadIpConfiguration(mf, Station)
}

func TestReadIpConfigurationRejects(t *testing.T) {
	mf := NewMockFirmware()

	_, _, err := ReadIpConfiguration(mf, Interface(17))
	if !errors.Is(err, ErrUnknownInterface) {
		t.Errorf("got %v want ErrUnknownInterface", err)
	}

	for _, iface := range Interfaces() {
		if iface == Station || iface == AccessPoint {
			continue
		}
		_, _, err := ReadIpConfiguration(mf, iface)
		if !errors.Is(err, ErrNoIpState) {
			t.Errorf("%s: got %v want ErrNoIpState", iface, err)
		}
	}

	if mf.Calls() != 0 {
		t.Errorf("firmware was called %d times", mf.Calls())
	}
}

func TestIpConfigurationPrefix(t *testing.T) {
	config, _ := fromNative(layoutOf("10.0.0.5", "255.255.255.0", "10.0.0.1"))
	prefix, ok := config.Prefix()
	if !ok || prefix.String() != "10.0.0.5/24" {
		t.Errorf("got %s, %v want 10.0.0.5/24", prefix, ok)
	}

	config, _ = fromNative(layoutOf("10.0.0.5", "255.0.255.0", "10.0.0.1"))
	_, ok = config.Prefix()
	if ok {
		t.Error("non-contiguous netmask should not make a prefix")
	}
}

func TestIpConfigurationJson(t *testing.T) {
	config, _ := fromNative(layoutOf("10.0.0.5", "255.255.255.0", "10.0.0.1"))
	out, err := json.Marshal(config)
	assertNoError(t, err)

	want := `{"address":"10.0.0.5","netmask":"255.255.255.0","gateway":"10.0.0.1"}`
	if string(out) != want {
		t.Errorf("got %s want %s", out, want)
	}
}
