package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"electrotrack/internal/domain/loan"
	"electrotrack/internal/logger"
)

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
}

// MQTTPublisher mirrors loan events to <prefix>/<event type> so lightweight
// subscribers (front desk displays, label printers) can follow the office.
type MQTTPublisher struct {
	client mqtt.Client
	prefix string
	qos    byte
}

func newClientOptions(cfg MQTTConfig) *mqtt.ClientOptions {
	log := logger.Named("mqtt")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetCleanSession(true)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Info("MQTT client connected", zap.String("broker", cfg.Broker))
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn("MQTT connection lost", zap.Error(err))
	})
	opts.SetReconnectingHandler(func(mqtt.Client, *mqtt.ClientOptions) {
		log.Info("Reconnecting to MQTT broker")
	})

	return opts
}

func NewMQTTPublisher(cfg MQTTConfig) (*MQTTPublisher, error) {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "electrotrack"
	}

	client := mqtt.NewClient(newClientOptions(cfg))
	token := client.Connect()
	if !token.WaitTimeout(15 * time.Second) {
		return nil, fmt.Errorf("timed out connecting to mqtt broker %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker: %w", err)
	}

	return &MQTTPublisher{
		client: client,
		prefix: strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:    cfg.QoS,
	}, nil
}

func (p *MQTTPublisher) Publish(ctx context.Context, event loan.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	token := p.client.Publish(topicFor(p.prefix, event.Type), p.qos, false, body)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(250)
	return nil
}

// topicFor maps "loan.returned" to "<prefix>/loan/returned".
func topicFor(prefix string, eventType loan.EventType) string {
	return prefix + "/" + strings.ReplaceAll(string(eventType), ".", "/")
}

// Fanout hands each event to every sink and joins their errors.
type Fanout []loan.EventPublisher

func (f Fanout) Publish(ctx context.Context, event loan.Event) error {
	var errs []error
	for _, sink := range f {
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ loan.EventPublisher = (*MQTTPublisher)(nil)
	_ loan.EventPublisher = Fanout(nil)
)
