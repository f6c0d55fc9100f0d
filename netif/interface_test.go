package netif

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseInterface(t *testing.T) {
	for _, iface := range Interfaces() {
		t.Run(iface.String(), func(t *testing.T) {
			got, err := ParseInterface(iface.String())
			assertNoError(t, err)
			if got != iface {
				t.Errorf("got %v want %v", got, iface)
			}
		})
	}

	t.Run("aliases", func(t *testing.T) {
		got, err := ParseInterface(" Station ")
		assertNoError(t, err)
		if got != Station {
			t.Errorf("got %v want %v", got, Station)
		}

		got, err = ParseInterface("SoftAP")
		assertNoError(t, err)
		if got != AccessPoint {
			t.Errorf("got %v want %v", got, AccessPoint)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseInterface("wlan9")
		if !errors.Is(err, ErrUnknownInterface) {
			t.Errorf("got %v want ErrUnknownInterface", err)
		}
	})
}

func TestInterfaceJson(t *testing.T) {
	var config struct {
		Interfaces []Interface
	}

	err := json.Unmarshal([]byte(`{"Interfaces": ["sta", "ap"]}`), &config)
	assertNoError(t, err)

	if len(config.Interfaces) != 2 || config.Interfaces[0] != Station || config.Interfaces[1] != AccessPoint {
		t.Errorf("got %v want [sta ap]", config.Interfaces)
	}

	out, err := json.Marshal(config)
	assertNoError(t, err)
	if string(out) != `{"Interfaces":["sta","ap"]}` {
		t.Errorf("got %s", out)
	}

	_, err = json.Marshal(Interface(42))
	if err == nil {
		t.Error("marshalling unknown interface should fail")
	}
}
