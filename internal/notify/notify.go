// Package notify carries best-effort email notifications over the
// message queue: registration confirmations to attendees and contact
// form copies to the staff inbox. A failed publish never fails the
// operation that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"campushub/internal/rabbit"
)

const (
	KindRegistrationConfirmed = "registration_confirmed"
	KindContactReceived       = "contact_received"
)

type Message struct {
	Kind       string `json:"kind"`
	Recipient  string `json:"recipient"`
	Name       string `json:"name,omitempty"`
	EventTitle string `json:"event_title,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type queuePublisher struct {
	rbt *rabbit.Client
}

func NewQueuePublisher(rbt *rabbit.Client) Publisher {
	return &queuePublisher{rbt: rbt}
}

func (p *queuePublisher) Publish(_ context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return p.rbt.Publish(payload)
}

// Nop is used when no broker is configured; the application runs fully
// without notifications.
type Nop struct{}

func (Nop) Publish(context.Context, Message) error { return nil }
