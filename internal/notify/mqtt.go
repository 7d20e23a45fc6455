package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

const (
	publishQoS     = 1
	publishTimeout = 5 * time.Second
	quiesceMillis  = 250
)

// publisher is the part of mqtt.Client the notifier needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTNotifier announces created lectures on doctors/<id>/lecture so
// attendance devices can pick up the new session code.
type MQTTNotifier struct {
	client publisher
}

func NewMQTTNotifier(client publisher) *MQTTNotifier {
	return &MQTTNotifier{client: client}
}

// MQTT connection handlers
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// Connect dials the broker and returns a connected client.
func Connect(brokerURL, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return client, nil
}

// Disconnect closes the client, letting in-flight work finish first.
func Disconnect(client mqtt.Client) {
	if client != nil {
		client.Disconnect(quiesceMillis)
	}
}

func Topic(doctorID int) string {
	return fmt.Sprintf("doctors/%d/lecture", doctorID)
}

func (n *MQTTNotifier) LectureCreated(ctx context.Context, doctorID int, l model.Lecture) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode lecture: %w", err)
	}

	topic := Topic(doctorID)
	token := n.client.Publish(topic, publishQoS, false, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("code", l.Code).Msg("lecture announced via MQTT")
	return nil
}
