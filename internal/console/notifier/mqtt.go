package notifier

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/options"
)

// MQTTSink publishes every recorded notification to an MQTT broker so
// dashboards and other consoles can follow the fleet's domain events without
// polling. Egress only; the console never consumes MQTT messages.
type MQTTSink struct {
	cm    *autopaho.ConnectionManager
	topic string
}

var _ core.EventSink = (*MQTTSink)(nil)

// NewMQTTSink connects a sink to the configured broker.
func NewMQTTSink(ctx context.Context, opts *options.MqttOptions) (*MQTTSink, error) {
	brokerURL, err := url.Parse(opts.Broker)
	if err != nil {
		return nil, fmt.Errorf("invalid mqtt broker URL: %w", err)
	}

	clientID := opts.ClientID
	if clientID == "" {
		clientID = "fleet-console-notifier"
	}

	cfg := autopaho.ClientConfig{
		ServerUrls:                    []*url.URL{brokerURL},
		KeepAlive:                     uint16(opts.KeepAlive.Seconds()),
		CleanStartOnInitialConnection: opts.CleanStart,
		SessionExpiryInterval:         opts.SessionExpiry,
		ConnectTimeout:                opts.ConnectTimeout,
		ConnectUsername:               opts.Username,
		ConnectPassword:               []byte(opts.Password),
		TlsCfg: &tls.Config{
			InsecureSkipVerify: opts.InsecureSkipVerify,
		},
		OnConnectError: func(err error) {
			log.Error(err, "MQTT connect failed")
		},
		ClientConfig: paho.ClientConfig{
			ClientID: clientID,
		},
	}

	log.Info("Starting MQTT notification sink", "broker", opts.Broker, "clientID", clientID)

	cm, err := autopaho.NewConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &MQTTSink{
		cm:    cm,
		topic: opts.TopicRoot + "/notifications",
	}, nil
}

// Publish sends one notification, QoS 1.
func (s *MQTTSink) Publish(ctx context.Context, n model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	_, err = s.cm.Publish(ctx, &paho.Publish{
		Topic:   s.topic,
		QoS:     1,
		Payload: payload,
	})
	return err
}

// Close disconnects from the broker.
func (s *MQTTSink) Close(ctx context.Context) error {
	return s.cm.Disconnect(ctx)
}
