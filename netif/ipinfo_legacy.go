//go:build esp8266

package netif

const getIpInfoCall = "tcpip_adapter_get_ip_info"

var adapterTypes = map[Interface]AdapterType{
	Station:     AdapterSta,
	AccessPoint: AdapterAp,
}

// IpInfoReader is the legacy tcpip_adapter api.
type IpInfoReader interface {
	GetIpInfoByAdapter(adapter AdapterType, buf *IpInfoLayout) Status
}

func readIpInfo(fw IpInfoReader, iface Interface, buf *IpInfoLayout) error {
	return checkStatus(getIpInfoCall, fw.GetIpInfoByAdapter(adapterTypes[iface], buf))
}
