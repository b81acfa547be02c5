package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	EventNotFound        = "EVENT_NOT_FOUND"
	RegistrationNotFound = "REGISTRATION_NOT_FOUND"
	BlogPostNotFound     = "BLOG_POST_NOT_FOUND"
	DraftNotFound        = "DRAFT_NOT_FOUND"
	DraftCompleted       = "DRAFT_COMPLETED"
	AuthRequired         = "AUTH_REQUIRED"
	InvalidPassword      = "INVALID_PASSWORD"
)

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Date        string `json:"date" validate:"required,caldate"`
	Location    string `json:"location" validate:"required,max=255"`
	Description string `json:"description"`
}

type EventResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Date          string    `json:"date"`
	Location      string    `json:"location"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Registrations int       `json:"registrations"`
}

type RegisterRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,max=64"`
	Requirements string `json:"requirements"`
}

type DraftResponse struct {
	DraftID        string    `json:"draft_id"`
	EventID        string    `json:"event_id"`
	EventTitle     string    `json:"event_title"`
	State          string    `json:"state"`
	Amount         string    `json:"amount"`
	PaymentAccount string    `json:"payment_account"`
	PaymentPayload string    `json:"payment_payload"`
	QRPath         string    `json:"qr_path"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type RegistrationResponse struct {
	ID                 string     `json:"id"`
	EventID            string     `json:"event_id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	Requirements       string     `json:"requirements,omitempty"`
	Timestamp          time.Time  `json:"timestamp"`
	PaymentStatus      string     `json:"payment_status"`
	Amount             string     `json:"amount"`
	TransactionID      string     `json:"transaction_id,omitempty"`
	PaymentSubmittedAt *time.Time `json:"payment_submitted_at,omitempty"`
	HasPaymentProof    bool       `json:"has_payment_proof"`
}

type CreateBlogPostRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Author  string `json:"author" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type BlogPostResponse struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

type ContactInfoResponse struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

type EventSummaryResponse struct {
	EventID       string `json:"event_id"`
	Title         string `json:"title"`
	Date          string `json:"date"`
	Location      string `json:"location"`
	Registrations int    `json:"registrations"`
	Collected     string `json:"collected"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func UnauthorizedError(c *ginext.Context) {
	c.JSON(401, Response{
		Status: "error",
		Error: &Error{
			Code: AuthRequired,
			Desc: "Authentication required",
		},
	})
}

func InvalidPasswordError(c *ginext.Context) {
	c.JSON(401, Response{
		Status: "error",
		Error: &Error{
			Code: InvalidPassword,
			Desc: "Invalid password",
		},
	})
}

func NotFoundError(c *ginext.Context, code, desc string) {
	c.JSON(404, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func EventNotFoundError(c *ginext.Context) {
	NotFoundError(c, EventNotFound, "Event not found")
}

func RegistrationNotFoundError(c *ginext.Context) {
	NotFoundError(c, RegistrationNotFound, "Registration not found")
}

func BlogPostNotFoundError(c *ginext.Context) {
	NotFoundError(c, BlogPostNotFound, "Blog post not found")
}

func DraftNotFoundError(c *ginext.Context) {
	NotFoundError(c, DraftNotFound, "Registration draft not found or expired")
}

func DraftCompletedError(c *ginext.Context) {
	c.JSON(409, Response{
		Status: "error",
		Error: &Error{
			Code: DraftCompleted,
			Desc: "Registration already completed for this draft",
		},
	})
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessAcceptedResponse(c *ginext.Context, data any) {
	c.JSON(202, Response{
		Status: "ok",
		Data:   data,
	})
}
