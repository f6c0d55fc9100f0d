package netif

import (
	"strings"

	"github.com/pkg/errors"
)

// Interface selects one logical network role of the device.
type Interface int

const (
	// Station is the Wi-Fi interface in station mode.
	Station Interface = iota
	// AccessPoint is the Wi-Fi interface in soft access point mode.
	AccessPoint
)

var ErrUnknownInterface = errors.New("unknown interface")

var interfaceNames = map[Interface]string{
	Station:     "sta",
	AccessPoint: "ap",
}

var interfaceAliases = map[string]Interface{
	"station":     Station,
	"accesspoint": AccessPoint,
	"softap":      AccessPoint,
}

// Interfaces returns every interface available on the build target.
func Interfaces() []Interface {
	return append([]Interface{Station, AccessPoint}, extraInterfaces...)
}

func (i Interface) String() string {
	name, found := interfaceNames[i]
	if !found {
		return "unknown"
	}
	return name
}

func (i Interface) valid() bool {
	_, found := interfaceNames[i]
	return found
}

func ParseInterface(name string) (Interface, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for iface, ifaceName := range interfaceNames {
		if name == ifaceName {
			return iface, nil
		}
	}

	iface, found := interfaceAliases[name]
	if !found {
		return 0, errors.Wrapf(ErrUnknownInterface, "parse %q", name)
	}
	return iface, nil
}

func (i Interface) MarshalText() ([]byte, error) {
	if !i.valid() {
		return nil, errors.Wrapf(ErrUnknownInterface, "marshal %d", int(i))
	}
	return []byte(i.String()), nil
}

func (i *Interface) UnmarshalText(text []byte) error {
	iface, err := ParseInterface(string(text))
	if err != nil {
		return err
	}
	*i = iface
	return nil
}
