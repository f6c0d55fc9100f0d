package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/netip"
	"testing"

	"github.com/hubertat/swnet/netif"
)

func stationFirmware() *netif.MockFirmware {
	mf := netif.NewMockFirmware()
	mf.SetMac(netif.MacWifiSta, netif.MacAddress{0x24, 0x0a, 0xc4, 0, 0, 1})
	mf.SetMac(netif.MacWifiSoftAP, netif.MacAddress{0x24, 0x0a, 0xc4, 0, 0, 2})
	mf.SetIpInfo(netif.Station, netif.IpInfoLayout{
		IP:      netip.MustParseAddr("10.0.0.5").As4(),
		Netmask: netip.MustParseAddr("255.255.255.0").As4(),
		Gw:      netip.MustParseAddr("10.0.0.1").As4(),
	})
	return mf
}

func TestCollect(t *testing.T) {
	mf := stationFirmware()

	reports, err := Collect(mf, []netif.Interface{netif.Station, netif.AccessPoint})
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports want 2", len(reports))
	}

	if !reports[0].Configured() || reports[0].Ip.Address().String() != "10.0.0.5" {
		t.Errorf("got %+v want configured station", reports[0])
	}
	if reports[1].Configured() {
		t.Errorf("got %+v want unconfigured access point", reports[1])
	}
}

func TestCollectFailure(t *testing.T) {
	mf := stationFirmware()
	mf.Fail(netif.AccessPoint, netif.StatusInvalidState)

	reports, err := Collect(mf, []netif.Interface{netif.Station, netif.AccessPoint})
	if reports != nil {
		t.Errorf("got %v want no reports", reports)
	}

	var se *netif.StatusError
	if !errors.As(err, &se) || se.Code != netif.StatusInvalidState {
		t.Errorf("got %v want wrapped ESP_ERR_INVALID_STATE", err)
	}
}

func TestReportJson(t *testing.T) {
	rep, err := Read(stationFirmware(), netif.AccessPoint)
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	out, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	json.Unmarshal(out, &decoded)

	if decoded["iface"] != "ap" || decoded["mac"] != "24:0a:c4:00:00:02" {
		t.Errorf("got %s", out)
	}
	if _, found := decoded["ip"]; found {
		t.Errorf("unconfigured report should omit ip: %s", out)
	}
}

func TestPoints(t *testing.T) {
	reports, _ := Collect(stationFirmware(), []netif.Interface{netif.Station, netif.AccessPoint})
	points := Points("kitchen", reports)

	if len(points) != 2 {
		t.Fatalf("got %d points want 2", len(points))
	}

	sta := points[0]
	if sta.Name() != "netif" {
		t.Errorf("got measurement %s want netif", sta.Name())
	}

	fields := map[string]interface{}{}
	for _, field := range sta.FieldList() {
		fields[field.Key] = field.Value
	}
	if fields["address"] != "10.0.0.5" || fields["configured"] != true {
		t.Errorf("got fields %v", fields)
	}

	for _, tag := range points[1].TagList() {
		if tag.Key == "iface" && tag.Value != "ap" {
			t.Errorf("got iface tag %s want ap", tag.Value)
		}
	}
}

func TestInfluxSinkNotSetUp(t *testing.T) {
	sink := &InfluxSink{}

	if err := sink.Setup(); err == nil {
		t.Error("Setup without host should fail")
	}
	if err := sink.Send(context.Background(), "kitchen", nil); err == nil {
		t.Error("Send before Setup should fail")
	}
}
