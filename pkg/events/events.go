package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/horvathb/wedding-rsvp/pkg/logger"
	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	n.conn.Close()
	return nil
}

// NoopPublisher is used when no NATS URL is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	logger.DebugContext(ctx, "Event publishing disabled, dropping event", "subject", subject)
	return nil
}

func (NoopPublisher) Close() error { return nil }

// Event subjects
const (
	RSVPVerified  = "rsvp.verified"
	RSVPSubmitted = "rsvp.submitted"
)

// Event payloads
type RSVPVerifiedEvent struct {
	GuestID    string `json:"guest_id"`
	GuestName  string `json:"guest_name"`
	FamilyID   string `json:"family_id"`
	FamilySize int    `json:"family_size"`
	VerifiedAt string `json:"verified_at"`
}

type RSVPSubmittedEvent struct {
	GuestID     string `json:"guest_id"`
	GuestName   string `json:"guest_name"`
	Szertartas  bool   `json:"szertartas"`
	Lakodalom   bool   `json:"lakodalom"`
	Transfer    bool   `json:"transfer"`
	SubmittedAt string `json:"submitted_at"`
}
