//go:build !esp8266

package netif

const getIpInfoCall = "esp_netif_get_ip_info"

// IpInfoReader is the handle based esp-netif api.
type IpInfoReader interface {
	HandleFromIfKey(key []byte) Handle
	GetIpInfo(handle Handle, buf *IpInfoLayout) Status
}

func readIpInfo(fw IpInfoReader, iface Interface, buf *IpInfoLayout) error {
	handle := fw.HandleFromIfKey(IfKey(iface))
	return checkStatus(getIpInfoCall, fw.GetIpInfo(handle, buf))
}
