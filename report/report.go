package report

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/hubertat/swnet/netif"
)

// Report is a snapshot of one interface's identity.
type Report struct {
	Interface netif.Interface        `json:"iface"`
	Mac       netif.MacAddress       `json:"mac"`
	Ip        *netif.IpConfiguration `json:"ip,omitempty"`
	ReadAt    time.Time              `json:"read_at"`
}

func (r Report) Configured() bool {
	return r.Ip != nil
}

func carriesIp(iface netif.Interface) bool {
	return iface == netif.Station || iface == netif.AccessPoint
}

// Read queries firmware for a single interface.
func Read(fw netif.Firmware, iface netif.Interface) (rep Report, err error) {
	rep.Interface = iface

	rep.Mac, err = netif.ResolveMac(fw, iface)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s mac", iface)
		return
	}

	if carriesIp(iface) {
		config, ok, readErr := netif.ReadIpConfiguration(fw, iface)
		if readErr != nil {
			err = errors.Wrapf(readErr, "failed to read %s ip configuration", iface)
			return
		}
		if ok {
			rep.Ip = &config
		}
	}

	rep.ReadAt = time.Now()
	return
}

// Collect reads every interface in order and stops on the first failure.
func Collect(fw netif.Firmware, ifaces []netif.Interface) ([]Report, error) {
	reports := make([]Report, 0, len(ifaces))
	for _, iface := range ifaces {
		rep, err := Read(fw, iface)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, nil
}

// Sink forwards collected reports somewhere outside the device.
type Sink interface {
	Send(ctx context.Context, device string, reports []Report) error
	String() string
}
