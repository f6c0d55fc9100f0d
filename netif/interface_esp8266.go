//go:build esp8266

package netif

// the esp8266 family has neither Bluetooth nor Ethernet
var extraInterfaces []Interface
