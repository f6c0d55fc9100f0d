//go:build !esp8266

package netif

import "testing"

func TestInterfacesFull(t *testing.T) {
	got := Interfaces()
	want := []Interface{Station, AccessPoint, Bluetooth, Ethernet}

	if len(got) != len(want) {
		t.Fatalf("len(got) = %d len(want) = %d", len(got), len(want))
	}
	for key, val := range got {
		if want[key] != val {
			t.Errorf("for key [%d] got: %v want: %v", key, val, want[key])
		}
	}

	if Bluetooth.String() != "bt" || Ethernet.String() != "eth" {
		t.Errorf("got %s, %s want bt, eth", Bluetooth, Ethernet)
	}
}
