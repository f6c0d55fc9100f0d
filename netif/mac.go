package netif

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// MacType is the native interface type code understood by the MAC read call.
type MacType int

const (
	MacWifiSta MacType = iota
	MacWifiSoftAP
	MacBT
	MacEth
)

const readMacCall = "esp_read_mac"

var macTypes = map[Interface]MacType{
	Station:     MacWifiSta,
	AccessPoint: MacWifiSoftAP,
}

// InterfaceOfMacType is the inverse of the interface to MacType mapping.
func InterfaceOfMacType(macType MacType) (Interface, bool) {
	for iface, mt := range macTypes {
		if mt == macType {
			return iface, true
		}
	}
	return 0, false
}

// MacReader fills buf with the factory MAC of the given interface type.
type MacReader interface {
	ReadMac(buf *[6]byte, macType MacType) Status
}

type MacAddress [6]byte

func (m MacAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

func (m MacAddress) HardwareAddr() net.HardwareAddr {
	return net.HardwareAddr(m[:])
}

// IsZero reports an all-zero address. Such an address is still a valid
// hardware value.
func (m MacAddress) IsZero() bool {
	return m == MacAddress{}
}

func (m MacAddress) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MacAddress) UnmarshalText(text []byte) error {
	hw, err := net.ParseMAC(string(text))
	if err != nil {
		return errors.Wrap(err, "parse mac address")
	}
	if len(hw) != len(m) {
		return errors.Errorf("mac address %q is not 6 bytes long", text)
	}
	copy(m[:], hw)
	return nil
}

// ResolveMac reads the MAC address of iface from firmware. The returned
// address is never derived from a buffer the firmware failed to fill.
func ResolveMac(fw MacReader, iface Interface) (MacAddress, error) {
	macType, found := macTypes[iface]
	if !found {
		return MacAddress{}, errors.Wrapf(ErrUnknownInterface, "resolve mac of %d", int(iface))
	}

	var buf [6]byte
	err := checkStatus(readMacCall, fw.ReadMac(&buf, macType))
	if err != nil {
		return MacAddress{}, err
	}

	return MacAddress(buf), nil
}

// MustResolveMac is ResolveMac for callers that cannot continue without
// the address.
func MustResolveMac(fw MacReader, iface Interface) MacAddress {
	mac, err := ResolveMac(fw, iface)
	if err != nil {
		panic(err)
	}
	return mac
}
