package model

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Registration struct {
	ID                 string        `json:"id"`
	EventID            string        `json:"event_id"`
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	Requirements       string        `json:"requirements,omitempty"`
	Timestamp          time.Time     `json:"timestamp"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	AmountCents        int64         `json:"amount_cents"`
	TransactionID      string        `json:"transaction_id,omitempty"`
	PaymentProofURI    string        `json:"payment_proof_uri,omitempty"`
	PaymentSubmittedAt *time.Time    `json:"payment_submitted_at,omitempty"`
}

type BlogPost struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

type Achievement struct {
	Title       string `json:"title"`
	Year        string `json:"year"`
	Description string `json:"description"`
}
