// Package telemetry publishes completed polling cycles to an MQTT
// broker for downstream dashboards.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/NathanReed/tempsentry/internal/metrics"
	"github.com/NathanReed/tempsentry/internal/store"
)

const connectTimeout = 5 * time.Second

// NewPublisher connects to the broker and returns a publisher bound
// to "<topicPrefix>/readings".
func NewPublisher(brokerURL, clientID, topicPrefix string, m *metrics.Metrics) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("timed out connecting to broker %s", brokerURL)
	}

	if err := token.Error(); err != nil {
		return nil, err
	}

	slog.Info("connected to MQTT broker", "broker", brokerURL, "client_id", clientID)

	return &Publisher{
		client:  client,
		topic:   fmt.Sprintf("%s/readings", topicPrefix),
		metrics: m,
	}, nil
}

// PublishCycle is wired as a poller cycle listener. Publishing is
// fire-and-forget so a slow broker never stalls the polling loop.
func (p *Publisher) PublishCycle(records []store.Record) {
	now := time.Now().UTC()

	events := make([]ReadingEvent, 0, len(records))
	for _, rec := range records {
		if rec.TempDeciC == store.DisconnectedDeciC {
			continue
		}

		events = append(events, ReadingEvent{
			Address:   rec.Address.String(),
			TempDeciC: rec.TempDeciC,
			ReadAt:    now,
		})
	}

	if len(events) == 0 {
		return
	}

	payload, err := json.Marshal(events)
	if err != nil {
		slog.Error("failed to marshal readings", "error", err)
		return
	}

	p.client.Publish(p.topic, 0, false, payload)

	if p.metrics != nil {
		p.metrics.ReadingsPublished.Inc()
	}
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
