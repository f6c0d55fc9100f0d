package swnet

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/hubertat/swnet/announce"
	"github.com/hubertat/swnet/httpapi"
	"github.com/hubertat/swnet/mqtt"
	"github.com/hubertat/swnet/netif"
	"github.com/hubertat/swnet/report"
)

const defaultDeviceName = "swnet"

// SwNet is the device service: it is decoded from the json config file
// and wires firmware to the http api, mDNS and report sinks.
type SwNet struct {
	Name string

	Interfaces     []netif.Interface
	Links          map[netif.Interface]string
	BluetoothSysfs string

	HttpAddr string
	Announce bool

	MqttBroker string
	MqttTopic  string

	Influx *report.InfluxSink

	firmware   netif.Firmware
	sinks      []report.Sink
	mqttClient *mqtt.MqttClient
	httpApi    *httpapi.Server
	refresh    chan struct{}
	logger     *log.Logger
}

func (sn *SwNet) DeviceName() string {
	if len(sn.Name) == 0 {
		return defaultDeviceName
	}
	return sn.Name
}

func (sn *SwNet) getLogger() *log.Logger {
	if sn.logger == nil {
		sn.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: sn.DeviceName(),
			Level:  log.GetLevel(),
		})
	}
	return sn.logger
}

// InitFirmware attaches fw and reads every configured interface once, so
// a misconfigured interface fails at startup instead of on first query.
func (sn *SwNet) InitFirmware(fw netif.Firmware) error {
	if fw == nil {
		return errors.New("firmware not set")
	}

	if len(sn.Interfaces) == 0 {
		sn.Interfaces = []netif.Interface{netif.Station, netif.AccessPoint}
	}

	for _, iface := range sn.Interfaces {
		_, err := report.Read(fw, iface)
		if err != nil {
			return errors.Wrapf(err, "interface %s not ready", iface)
		}
	}

	sn.firmware = fw
	sn.refresh = make(chan struct{}, 1)
	return nil
}

func (sn *SwNet) Firmware() netif.Firmware {
	return sn.firmware
}

func (sn *SwNet) Reports() ([]report.Report, error) {
	if sn.firmware == nil {
		return nil, errors.New("firmware not initialized")
	}
	return report.Collect(sn.firmware, sn.Interfaces)
}

func (sn *SwNet) AddSink(sink report.Sink) {
	sn.sinks = append(sn.sinks, sink)
}

func (sn *SwNet) InitInflux() error {
	if sn.Influx == nil {
		return nil
	}

	err := sn.Influx.Setup()
	if err != nil {
		return errors.Wrap(err, "failed to setup influx sink")
	}

	sn.AddSink(sn.Influx)
	return nil
}

func (sn *SwNet) InitMqtt() (err error) {
	if len(sn.MqttBroker) == 0 {
		err = errors.New("mqtt broker not set")
		return
	}

	mc, err := mqtt.NewMqttClient(sn.MqttBroker, sn.DeviceName())
	if err != nil {
		err = errors.Wrap(err, "failed to create mqtt client")
		return
	}

	refresh := &mqtt.RefreshHandler{
		Prefix:  sn.MqttTopic,
		Device:  sn.DeviceName(),
		Refresh: sn.RequestRefresh,
	}

	err = mc.Connect([]mqtt.MqttHandler{refresh})
	if err != nil {
		err = errors.Wrap(err, "failed to connect to mqtt broker")
		return
	}

	sn.mqttClient = mc
	sn.AddSink(&mqtt.ReportPublisher{Publisher: mc, Prefix: sn.MqttTopic})
	return
}

func (sn *SwNet) StartHttp() error {
	if len(sn.HttpAddr) == 0 {
		return errors.New("http address not set")
	}

	sn.httpApi = &httpapi.Server{
		Addr:       sn.HttpAddr,
		Firmware:   sn.firmware,
		Interfaces: sn.Interfaces,
	}

	err := sn.httpApi.Start()
	if err != nil {
		return errors.Wrap(err, "failed to start http api")
	}

	go func() {
		err := <-sn.httpApi.Err()
		sn.getLogger().Error("http api stopped", "err", err)
	}()

	return nil
}

func (sn *SwNet) StartAnnounce(ctx context.Context) error {
	a := &announce.Announcer{
		Name:     sn.DeviceName(),
		HttpAddr: sn.HttpAddr,
		Firmware: sn.firmware,
	}

	return a.Respond(ctx)
}

// RequestRefresh asks the ticker loop for an immediate publish.
func (sn *SwNet) RequestRefresh() {
	select {
	case sn.refresh <- struct{}{}:
	default:
	}
}

// Publish collects fresh reports and sends them to every sink. A failing
// sink does not stop the others.
func (sn *SwNet) Publish(ctx context.Context) (err error) {
	reports, err := sn.Reports()
	if err != nil {
		return
	}

	for _, sink := range sn.sinks {
		sinkErr := sink.Send(ctx, sn.DeviceName(), reports)
		if sinkErr != nil {
			sn.getLogger().Warn("sink failed", "sink", sink, "err", sinkErr)
			if err == nil {
				err = errors.Wrapf(sinkErr, "%s sink", sink)
			}
		}
	}

	return
}

func (sn *SwNet) StartTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-sn.refresh:
		}

		err := sn.Publish(ctx)
		if err != nil {
			sn.getLogger().Error("publishing reports failed", "err", err)
		}
	}
}

func (sn *SwNet) Close() (err error) {
	if sn.httpApi != nil {
		err = sn.httpApi.Close()
	}

	if sn.mqttClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		closeErr := sn.mqttClient.Disconnect(ctx)
		if closeErr != nil && err == nil {
			err = closeErr
		}
	}

	if sn.Influx != nil {
		sn.Influx.Close()
	}

	return
}

func (sn *SwNet) PrintStatus(writer io.Writer) error {
	reports, err := sn.Reports()
	if err != nil {
		return err
	}

	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "=== %s interfaces ===\n", sn.DeviceName())
	for _, rep := range reports {
		fmt.Fprintln(writer, "________")
		fmt.Fprintf(writer, "| iface: %s\n", rep.Interface)
		fmt.Fprintf(writer, "| mac: %s\n", rep.Mac)
		if rep.Ip == nil {
			fmt.Fprintln(writer, "| ip: not assigned")
		} else {
			fmt.Fprintf(writer, "| ip: %s netmask: %s gateway: %s\n", rep.Ip.Address(), rep.Ip.Netmask(), rep.Ip.Gateway())
		}
		fmt.Fprintln(writer, "--------")
	}
	fmt.Fprintln(writer, "-----------------------------")
	fmt.Fprintln(writer)

	return nil
}
