package netif

// AdapterType is the tcpip_adapter interface code of the legacy api.
type AdapterType int

const (
	AdapterSta AdapterType = iota
	AdapterAp
	AdapterEth
)

// Handle is the opaque esp-netif interface handle. Zero is the nil handle.
type Handle uintptr

// IfKey returns the NUL terminated esp-netif key of the default
// interface for i, or nil when there is none.
func IfKey(i Interface) []byte {
	switch i {
	case Station:
		return []byte("WIFI_STA_DEF\x00")
	case AccessPoint:
		return []byte("WIFI_AP_DEF\x00")
	}
	return nil
}
