package report

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/pkg/errors"
)

const influxSinkName = "influx"
const influxMeasurement = "netif"

type InfluxSink struct {
	Host         string
	Organization string
	Bucket       string
	Token        string

	client   influxdb2.Client
	writeApi api.WriteAPIBlocking
}

func (is *InfluxSink) String() string {
	return influxSinkName
}

func (is *InfluxSink) Setup() error {
	if len(is.Host) == 0 || len(is.Bucket) == 0 {
		return errors.New("influx host and bucket are required")
	}

	is.client = influxdb2.NewClient(is.Host, is.Token)
	is.writeApi = is.client.WriteAPIBlocking(is.Organization, is.Bucket)

	return nil
}

func (is *InfluxSink) Close() error {
	if is.client != nil {
		is.client.Close()
	}
	return nil
}

func Points(device string, reports []Report) []*write.Point {
	points := make([]*write.Point, 0, len(reports))
	for _, rep := range reports {
		tags := map[string]string{
			"device": device,
			"iface":  rep.Interface.String(),
			"mac":    rep.Mac.String(),
		}
		fields := map[string]interface{}{
			"configured": rep.Configured(),
		}
		if rep.Ip != nil {
			fields["address"] = rep.Ip.Address().String()
			fields["netmask"] = rep.Ip.Netmask().String()
			fields["gateway"] = rep.Ip.Gateway().String()
		}

		points = append(points, influxdb2.NewPoint(influxMeasurement, tags, fields, rep.ReadAt))
	}

	return points
}

func (is *InfluxSink) Send(ctx context.Context, device string, reports []Report) error {
	if is.writeApi == nil {
		return errors.New("influx sink not set up")
	}

	err := is.writeApi.WritePoint(ctx, Points(device, reports)...)
	if err != nil {
		return errors.Wrap(err, "failed to write influx points")
	}
	return nil
}
