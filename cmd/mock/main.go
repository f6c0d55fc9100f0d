package main

import (
	"context"
	"flag"
	"net/netip"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hubertat/swnet"
	"github.com/hubertat/swnet/netif"
)

var (
	httpAddr = flag.String("http", ":8080", "http api address")
	noIp     = flag.Bool("no-ip", false, "leave the station without an address")
)

func main() {
	flag.Parse()
	log.SetLevel(log.DebugLevel)

	mf := netif.NewMockFirmware()
	mf.MonitorCalls(os.Stdout)
	mf.SetMac(netif.MacWifiSta, netif.MacAddress{0x24, 0x0a, 0xc4, 0x00, 0x00, 0x01})
	mf.SetMac(netif.MacWifiSoftAP, netif.MacAddress{0x24, 0x0a, 0xc4, 0x00, 0x00, 0x02})
	if !*noIp {
		mf.SetIpInfo(netif.Station, netif.IpInfoLayout{
			IP:      netip.MustParseAddr("10.0.0.5").As4(),
			Netmask: netip.MustParseAddr("255.255.255.0").As4(),
			Gw:      netip.MustParseAddr("10.0.0.1").As4(),
		})
	}

	sn := &swnet.SwNet{Name: "mock", HttpAddr: *httpAddr}
	err := sn.InitFirmware(mf)
	if err != nil {
		panic(err)
	}
	defer sn.Close()

	sn.PrintStatus(os.Stdout)

	err = sn.StartHttp()
	if err != nil {
		panic(err)
	}
	log.Info("mock http api listening", "addr", *httpAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sn.StartTicker(ctx, 10*time.Second)
}
