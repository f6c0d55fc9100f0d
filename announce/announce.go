package announce

import (
	"context"
	"net"
	"os"
	"strconv"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/hubertat/swnet/netif"
)

const ServiceType = "_swnet._tcp"

// Announcer advertises the http api on the station address over mDNS.
type Announcer struct {
	Name     string
	HttpAddr string
	Firmware netif.Firmware

	logger *log.Logger
}

// Config builds the DNS-SD service description from the live station
// identity.
func (a *Announcer) Config() (cfg dnssd.Config, err error) {
	_, portStr, err := net.SplitHostPort(a.HttpAddr)
	if err != nil {
		err = errors.Wrapf(err, "invalid http address %s", a.HttpAddr)
		return
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		err = errors.Wrapf(err, "invalid http port %s", portStr)
		return
	}

	mac, err := netif.ResolveMac(a.Firmware, netif.Station)
	if err != nil {
		err = errors.Wrap(err, "failed to read station mac")
		return
	}

	config, ok, err := netif.ReadStation(a.Firmware)
	if err != nil {
		err = errors.Wrap(err, "failed to read station ip")
		return
	}
	if !ok {
		err = errors.New("station has no address assigned, nothing to announce")
		return
	}

	cfg = dnssd.Config{
		Name: a.Name,
		Type: ServiceType,
		Port: port,
		IPs:  []net.IP{net.IP(config.Address().AsSlice())},
		Text: map[string]string{
			"mac": mac.String(),
		},
	}
	return
}

// Respond announces the service until ctx is done.
func (a *Announcer) Respond(ctx context.Context) error {
	a.logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "mdns",
		Level:  log.GetLevel(),
	})

	cfg, err := a.Config()
	if err != nil {
		return err
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to create dnssd service")
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		return errors.Wrap(err, "failed to create dnssd responder")
	}

	_, err = rp.Add(sv)
	if err != nil {
		return errors.Wrap(err, "failed to add dnssd service")
	}

	a.logger.Info("announcing", "name", cfg.Name, "type", cfg.Type, "ip", cfg.IPs, "port", cfg.Port)
	return rp.Respond(ctx)
}
