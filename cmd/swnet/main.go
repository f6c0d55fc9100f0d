//go:build linux

package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hubertat/servicemaker"

	"github.com/hubertat/swnet"
	"github.com/hubertat/swnet/hostfw"
)

const defaultPublishInterval = "30s"

var (
	Version string
	Build   string

	config      = flag.String("config", "config.json", "path of the configuration file")
	flagInstall = flag.Bool("install", false, "Install service in os")
	flagOnce    = flag.Bool("once", false, "print interface status and exit")
	flagDebug   = flag.Bool("debug", false, "enable debug logging")
	interval    = flag.String("interval", defaultPublishInterval, "report publish interval (time.Duration)")

	swnService = servicemaker.ServiceMaker{
		User:               "swnet",
		UserGroups:         []string{"netdev"},
		ServicePath:        "/etc/systemd/system/swnet.service",
		ServiceDescription: "SwNet service: network interface identity (mac, ipv4) reporter. github.com/hubertat/swnet",
		ExecDir:            "/srv/swnet",
		ExecName:           "swnet",
	}
)

func main() {
	flag.Parse()
	if *flagDebug {
		log.SetLevel(log.DebugLevel)
	}
	log.Info("swnet started", "version", Version, "build", Build)

	if *flagInstall {
		err := swnService.InstallService()
		if err != nil {
			log.Fatal("failed to install service", "err", err)
		}
		log.Info("service installed!")
		return
	}

	publishInterval, err := time.ParseDuration(*interval)
	if err != nil {
		log.Fatal("invalid interval", "interval", *interval, "err", err)
	}

	sn := &swnet.SwNet{}
	configFile, err := os.Open(*config)
	if err != nil {
		log.Fatal("can't find/open config file, will terminate", "path", *config, "err", err)
	}
	cBuff, err := io.ReadAll(configFile)
	configFile.Close()
	if err != nil {
		log.Fatal("failed reading config file", "err", err)
	}
	err = json.Unmarshal(cBuff, sn)
	if err != nil {
		log.Fatal("failed unmarshalling json config", "err", err)
	}

	fw := hostfw.NewNetlink(sn.Links)
	fw.BluetoothSysfs = sn.BluetoothSysfs

	log.Info("will init firmware...")
	err = sn.InitFirmware(fw)
	if err != nil {
		log.Fatal("firmware init failed", "err", err)
	}
	defer sn.Close()

	err = sn.PrintStatus(os.Stdout)
	if err != nil {
		log.Fatal("reading interfaces failed", "err", err)
	}
	if *flagOnce {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(sn.HttpAddr) > 0 {
		err = sn.StartHttp()
		if err != nil {
			log.Fatal("http api failed", "err", err)
		}
		log.Info("http api listening", "addr", sn.HttpAddr)

		if sn.Announce {
			go func() {
				err := sn.StartAnnounce(ctx)
				if err != nil && ctx.Err() == nil {
					log.Error("mdns announce stopped", "err", err)
				}
			}()
		}
	}

	err = sn.InitInflux()
	if err != nil {
		log.Error("influx disabled", "err", err)
	}

	if len(sn.MqttBroker) > 0 {
		err = sn.InitMqtt()
		if err != nil {
			log.Error("mqtt disabled", "err", err)
		}
	}

	sn.RequestRefresh()
	sn.StartTicker(ctx, publishInterval)
	log.Info("swnet stopped")
}
