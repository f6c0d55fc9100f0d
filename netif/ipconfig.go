package netif

import (
	"encoding/binary"
	"encoding/json"
	"net/netip"

	"github.com/pkg/errors"
)

// ErrNoIpState is returned for interfaces that carry no IP configuration
// on this platform family.
var ErrNoIpState = errors.New("interface carries no ip state")

// IpInfoLayout mirrors the native ip info record. Every field holds an
// IPv4 address in network byte order.
type IpInfoLayout struct {
	IP      [4]byte
	Netmask [4]byte
	Gw      [4]byte
}

// IpConfiguration is the IPv4 configuration bound to an interface. A
// value is only built when at least one of its addresses is non-zero.
type IpConfiguration struct {
	address netip.Addr
	netmask netip.Addr
	gateway netip.Addr
}

func (ic IpConfiguration) Address() netip.Addr {
	return ic.address
}

func (ic IpConfiguration) Netmask() netip.Addr {
	return ic.netmask
}

func (ic IpConfiguration) Gateway() netip.Addr {
	return ic.gateway
}

// Prefix combines address and netmask. It returns false for netmasks with
// non-contiguous bits.
func (ic IpConfiguration) Prefix() (netip.Prefix, bool) {
	if !ic.netmask.Is4() {
		return netip.Prefix{}, false
	}

	mask := binary.BigEndian.Uint32(ic.netmask.AsSlice())
	ones := 0
	for mask&0x80000000 != 0 {
		ones++
		mask <<= 1
	}
	if mask != 0 {
		return netip.Prefix{}, false
	}
	return netip.PrefixFrom(ic.address, ones), true
}

func (ic IpConfiguration) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Address string `json:"address"`
		Netmask string `json:"netmask"`
		Gateway string `json:"gateway"`
	}{ic.address.String(), ic.netmask.String(), ic.gateway.String()})
}

// Layout encodes the configuration back into the native record.
func (ic IpConfiguration) Layout() IpInfoLayout {
	return IpInfoLayout{
		IP:      ic.address.As4(),
		Netmask: ic.netmask.As4(),
		Gw:      ic.gateway.As4(),
	}
}

func hostOrder(field [4]byte) uint32 {
	return binary.BigEndian.Uint32(field[:])
}

func addrFromHost(value uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], value)
	return netip.AddrFrom4(b)
}

// fromNative converts a record the firmware reported as filled. An
// all-zero record means nothing is assigned yet.
func fromNative(layout IpInfoLayout) (IpConfiguration, bool) {
	ip := hostOrder(layout.IP)
	netmask := hostOrder(layout.Netmask)
	gateway := hostOrder(layout.Gw)

	if ip == 0 && netmask == 0 && gateway == 0 {
		return IpConfiguration{}, false
	}

	return IpConfiguration{
		address: addrFromHost(ip),
		netmask: addrFromHost(netmask),
		gateway: addrFromHost(gateway),
	}, true
}

// ReadIpConfiguration reads the live IPv4 configuration of iface, which
// must be Station or AccessPoint. ok is false when the firmware reports
// no address assigned.
func ReadIpConfiguration(fw IpInfoReader, iface Interface) (config IpConfiguration, ok bool, err error) {
	if !iface.valid() {
		err = errors.Wrapf(ErrUnknownInterface, "read ip configuration of %d", int(iface))
		return
	}
	if iface != Station && iface != AccessPoint {
		err = errors.Wrapf(ErrNoIpState, "read ip configuration of %s", iface)
		return
	}

	var layout IpInfoLayout
	err = readIpInfo(fw, iface, &layout)
	if err != nil {
		return
	}

	config, ok = fromNative(layout)
	return
}

func ReadStation(fw IpInfoReader) (IpConfiguration, bool, error) {
	return ReadIpConfiguration(fw, Station)
}

func ReadAccessPoint(fw IpInfoReader) (IpConfiguration, bool, error) {
	return ReadIpConfiguration(fw, AccessPoint)
}

func MustReadIpConfiguration(fw IpInfoReader, iface Interface) (IpConfiguration, bool) {
	config, ok, err := ReadIpConfiguration(fw, iface)
	if err != nil {
		panic(err)
	}
	return config, ok
}

// Firmware provides every native primitive the package needs.
type Firmware interface {
	MacReader
	IpInfoReader
}
