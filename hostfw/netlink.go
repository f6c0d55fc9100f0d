//go:build linux

package hostfw

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/vishvananda/netlink"

	"github.com/hubertat/swnet/netif"
)

const defaultBluetoothSysfs = "/sys/class/bluetooth"

var DefaultLinks = map[netif.Interface]string{
	netif.Station:     "wlan0",
	netif.AccessPoint: "uap0",
}

// Netlink serves the native firmware calls from the Linux kernel, for
// boards where the radios are managed by the OS. Logical interfaces are
// mapped to link names; Bluetooth controllers are read from sysfs.
type Netlink struct {
	Links          map[netif.Interface]string
	BluetoothSysfs string

	logger *log.Logger
}

func NewNetlink(links map[netif.Interface]string) *Netlink {
	nl := &Netlink{
		Links: make(map[netif.Interface]string),
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "netlink",
			Level:  log.GetLevel(),
		}),
	}

	for iface, name := range DefaultLinks {
		nl.Links[iface] = name
	}
	for iface, name := range links {
		nl.Links[iface] = name
	}

	return nl
}

func (nl *Netlink) String() string {
	return "netlink"
}

func (nl *Netlink) getLogger() *log.Logger {
	if nl.logger == nil {
		return log.Default()
	}
	return nl.logger
}

func (nl *Netlink) linkName(iface netif.Interface) (string, bool) {
	name, found := nl.Links[iface]
	return name, found && len(name) > 0
}

func (nl *Netlink) link(iface netif.Interface) (netlink.Link, netif.Status) {
	name, found := nl.linkName(iface)
	if !found {
		nl.getLogger().Debug("no link configured", "iface", iface)
		return nil, netif.StatusNotFound
	}

	link, err := netlink.LinkByName(name)
	if err != nil {
		return nil, nl.status(err, "link", name)
	}
	return link, netif.StatusOK
}

func (nl *Netlink) status(err error, keyvals ...interface{}) netif.Status {
	nl.getLogger().Warn("kernel call failed", append(keyvals, "err", err)...)

	var notFound netlink.LinkNotFoundError
	if errors.As(err, &notFound) || os.IsNotExist(err) {
		return netif.StatusNotFound
	}
	return netif.StatusFail
}

func (nl *Netlink) ReadMac(buf *[6]byte, macType netif.MacType) netif.Status {
	iface, found := netif.InterfaceOfMacType(macType)
	if !found {
		return netif.StatusInvalidArg
	}

	name, found := nl.linkName(iface)
	if found && strings.HasPrefix(name, "hci") {
		return nl.readBluetoothMac(buf, name)
	}

	link, status := nl.link(iface)
	if status != netif.StatusOK {
		return status
	}

	hw := link.Attrs().HardwareAddr
	if len(hw) != len(buf) {
		nl.getLogger().Warn("link has no 6 byte hardware address", "link", link.Attrs().Name, "addr", hw)
		return netif.StatusInvalidSize
	}

	copy(buf[:], hw)
	return netif.StatusOK
}

func (nl *Netlink) readBluetoothMac(buf *[6]byte, controller string) netif.Status {
	sysfs := nl.BluetoothSysfs
	if len(sysfs) == 0 {
		sysfs = defaultBluetoothSysfs
	}

	raw, err := os.ReadFile(filepath.Join(sysfs, controller, "address"))
	if err != nil {
		return nl.status(err, "controller", controller)
	}

	hw, err := net.ParseMAC(string(bytes.TrimSpace(raw)))
	if err != nil || len(hw) != len(buf) {
		nl.getLogger().Warn("unreadable controller address", "controller", controller, "raw", string(raw))
		return netif.StatusInvalidSize
	}

	copy(buf[:], hw)
	return netif.StatusOK
}

func (nl *Netlink) HandleFromIfKey(key []byte) netif.Handle {
	for _, iface := range []netif.Interface{netif.Station, netif.AccessPoint} {
		if !bytes.Equal(key, netif.IfKey(iface)) {
			continue
		}

		link, status := nl.link(iface)
		if status != netif.StatusOK {
			return 0
		}
		return netif.Handle(link.Attrs().Index)
	}

	nl.getLogger().Debug("unknown interface key", "key", string(bytes.TrimRight(key, "\x00")))
	return 0
}

func (nl *Netlink) GetIpInfo(handle netif.Handle, buf *netif.IpInfoLayout) netif.Status {
	if handle == 0 {
		return netif.StatusNetifInvalidParams
	}

	link, err := netlink.LinkByIndex(int(handle))
	if err != nil {
		return nl.status(err, "index", handle)
	}
	return nl.fillIpInfo(link, buf)
}

func (nl *Netlink) GetIpInfoByAdapter(adapter netif.AdapterType, buf *netif.IpInfoLayout) netif.Status {
	var iface netif.Interface
	switch adapter {
	case netif.AdapterSta:
		iface = netif.Station
	case netif.AdapterAp:
		iface = netif.AccessPoint
	default:
		return netif.StatusInvalidArg
	}

	link, status := nl.link(iface)
	if status != netif.StatusOK {
		return status
	}
	return nl.fillIpInfo(link, buf)
}

// fillIpInfo writes the primary IPv4 address, its netmask and the default
// gateway of link. Missing parts stay zero, as the firmware reports them.
func (nl *Netlink) fillIpInfo(link netlink.Link, buf *netif.IpInfoLayout) netif.Status {
	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return nl.status(err, "link", link.Attrs().Name)
	}

	routes, err := netlink.RouteList(link, netlink.FAMILY_V4)
	if err != nil {
		return nl.status(err, "link", link.Attrs().Name)
	}

	*buf = netif.IpInfoLayout{}

	for _, addr := range addrs {
		if addr.IPNet == nil || addr.IP.To4() == nil {
			continue
		}
		copy(buf.IP[:], addr.IP.To4())
		if len(addr.Mask) == net.IPv4len {
			copy(buf.Netmask[:], addr.Mask)
		}
		break
	}

	for _, route := range routes {
		if !isDefaultRoute(route) || route.Gw.To4() == nil {
			continue
		}
		copy(buf.Gw[:], route.Gw.To4())
		break
	}

	return netif.StatusOK
}

func isDefaultRoute(route netlink.Route) bool {
	if route.Dst == nil {
		return true
	}
	ones, _ := route.Dst.Mask.Size()
	return ones == 0 && route.Dst.IP.IsUnspecified()
}
