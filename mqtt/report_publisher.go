package mqtt

import (
	"context"
	"encoding/json"
	"path"

	"github.com/eclipse/paho.golang/paho"
	"github.com/pkg/errors"

	"github.com/hubertat/swnet/report"
)

const defaultTopicPrefix = "swnet"

// ReportPublisher sends every report as JSON to <prefix>/<device>/<iface>.
type ReportPublisher struct {
	Publisher Publisher
	Prefix    string
}

func (rp *ReportPublisher) String() string {
	return "mqtt"
}

func (rp *ReportPublisher) prefix() string {
	if len(rp.Prefix) == 0 {
		return defaultTopicPrefix
	}
	return rp.Prefix
}

func (rp *ReportPublisher) Topic(device string, rep report.Report) string {
	return path.Join(rp.prefix(), device, rep.Interface.String())
}

func (rp *ReportPublisher) Send(ctx context.Context, device string, reports []report.Report) error {
	for _, rep := range reports {
		if err := ctx.Err(); err != nil {
			return err
		}

		payload, err := json.Marshal(rep)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal %s report", rep.Interface)
		}

		err = rp.Publisher.Publish(rp.Topic(device, rep), payload)
		if err != nil {
			return errors.Wrapf(err, "failed to publish %s report", rep.Interface)
		}
	}

	return nil
}

// RefreshHandler runs Refresh whenever anything is published on
// <prefix>/<device>/refresh.
type RefreshHandler struct {
	Prefix  string
	Device  string
	Refresh func()
}

func (rh *RefreshHandler) MqttSubscribeTopic() string {
	prefix := rh.Prefix
	if len(prefix) == 0 {
		prefix = defaultTopicPrefix
	}
	return path.Join(prefix, rh.Device, "refresh")
}

func (rh *RefreshHandler) MqttHandle(pub *paho.Publish) {
	if rh.Refresh != nil {
		rh.Refresh()
	}
}
