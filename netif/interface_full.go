//go:build !esp8266

package netif

const (
	// Bluetooth is the Bluetooth controller interface.
	Bluetooth Interface = iota + AccessPoint + 1
	// Ethernet is the wired Ethernet interface.
	Ethernet
)

var extraInterfaces = []Interface{Bluetooth, Ethernet}

func init() {
	interfaceNames[Bluetooth] = "bt"
	interfaceNames[Ethernet] = "eth"
	interfaceAliases["bluetooth"] = Bluetooth
	interfaceAliases["ethernet"] = Ethernet

	macTypes[Bluetooth] = MacBT
	macTypes[Ethernet] = MacEth
}
