// Package events publishes report lifecycle events to an MQTT broker so
// downstream consumers (dashboards, sync jobs) can react to changes without
// polling the API. Publishing is best-effort: a failed publish never fails
// the request that triggered it.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// EventType identifies what happened to a report.
type EventType string

const (
	ReportCreated EventType = "created"
	ReportUpdated EventType = "updated"
	ReportDeleted EventType = "deleted"
)

// ReportEvent is the payload published for every report mutation.
type ReportEvent struct {
	Event         EventType `json:"event"`
	ReportID      string    `json:"report_id"`
	Status        string    `json:"status"`
	OverallRating float64   `json:"overall_rating"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher publishes report events.
type Publisher interface {
	PublishReportEvent(event ReportEvent) error
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

// PublishReportEvent discards the event.
func (NoopPublisher) PublishReportEvent(ReportEvent) error { return nil }

const (
	topicPrefix    = "inspection/reports"
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// MQTTPublisher publishes report events over MQTT.
type MQTTPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker and returns a publisher.
func NewMQTTPublisher(brokerURL string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("inspection-api").
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect timeout after %s", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTPublisher{client: client}, nil
}

// PublishReportEvent publishes the event on inspection/reports/<event> at
// QoS 0.
func (p *MQTTPublisher) PublishReportEvent(event ReportEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal report event: %w", err)
	}

	topic := fmt.Sprintf("%s/%s", topicPrefix, event.Event)
	token := p.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt publish timeout after %s", publishTimeout)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
