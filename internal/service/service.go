package service

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"campushub/internal/dto"
	"campushub/internal/model"
	"campushub/internal/notify"
	"campushub/internal/payment"
	"campushub/internal/repo"
	"campushub/internal/workflow"
	"campushub/pkg/validator"
)

type Service interface {
	ListEvents(ctx *ginext.Context)
	GetEvent(ctx *ginext.Context)
	CreateEvent(ctx *ginext.Context)
	DeleteEvent(ctx *ginext.Context)

	BeginRegistration(ctx *ginext.Context)
	PaymentQR(ctx *ginext.Context)
	SubmitPayment(ctx *ginext.Context)
	DiscardRegistration(ctx *ginext.Context)

	ListBlogPosts(ctx *ginext.Context)
	CreateBlogPost(ctx *ginext.Context)
	DeleteBlogPost(ctx *ginext.Context)

	SubmitContact(ctx *ginext.Context)
	ContactInfo(ctx *ginext.Context)
	Achievements(ctx *ginext.Context)

	Login(ctx *ginext.Context)
	Logout(ctx *ginext.Context)
	Session(ctx *ginext.Context)
	RequireAdmin() gin.HandlerFunc

	AdminSummary(ctx *ginext.Context)
	AdminRegistrations(ctx *ginext.Context)
	ExportRegistrations(ctx *ginext.Context)
	PaymentProof(ctx *ginext.Context)
}

type Config struct {
	Payment           payment.Details
	AdminPasswordHash string
	ContactInbox      string
}

type service struct {
	repo      repo.Repository
	log       *zerolog.Logger
	drafts    *workflow.Manager
	publisher notify.Publisher
	pay       payment.Details
	adminHash []byte
	inbox     string
}

func NewService(r repo.Repository, log *zerolog.Logger, drafts *workflow.Manager, pub notify.Publisher, cfg Config) Service {
	return &service{
		repo:      r,
		log:       log,
		drafts:    drafts,
		publisher: pub,
		pay:       cfg.Payment,
		adminHash: []byte(cfg.AdminPasswordHash),
		inbox:     cfg.ContactInbox,
	}
}

func (s *service) ListEvents(ctx *ginext.Context) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		count, err := s.repo.CountRegistrations(ctx, e.ID)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to count registrations for event")
			continue
		}
		resp = append(resp, eventResponse(e, count))
	}

	dto.SuccessResponse(ctx, resp)
}

func (s *service) GetEvent(ctx *ginext.Context) {
	event, err := s.repo.GetEventByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to get event")
		dto.InternalServerError(ctx)
		return
	}

	count, err := s.repo.CountRegistrations(ctx, event.ID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to count registrations")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, eventResponse(*event, count))
}

func (s *service) CreateEvent(ctx *ginext.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse create event request")
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		s.log.Error().Msgf("validation failed: %v", verr)
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	event := &model.Event{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.AddEvent(ctx, event); err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Str("event_id", event.ID).Msg("event created successfully")
	dto.SuccessCreatedResponse(ctx, eventResponse(*event, 0))
}

func (s *service) DeleteEvent(ctx *ginext.Context) {
	id := ctx.Param("id")

	cascaded, err := s.repo.DeleteEvent(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to delete event")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, struct {
		EventID              string `json:"event_id"`
		DeletedRegistrations int    `json:"deleted_registrations"`
	}{EventID: id, DeletedRegistrations: cascaded})
}

func (s *service) BeginRegistration(ctx *ginext.Context) {
	event, err := s.repo.GetEventByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to get event for registration")
		dto.InternalServerError(ctx)
		return
	}

	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	draft := s.drafts.Begin(*event, req.Name, req.Email, req.Phone, req.Requirements)

	s.log.Info().
		Str("draft_id", draft.ID).
		Str("event_id", event.ID).
		Msg("registration draft opened")

	dto.SuccessCreatedResponse(ctx, dto.DraftResponse{
		DraftID:        draft.ID,
		EventID:        event.ID,
		EventTitle:     event.Title,
		State:          string(draft.State),
		Amount:         payment.FormatAmount(s.pay.AmountCents),
		PaymentAccount: s.pay.Account,
		PaymentPayload: s.pay.TargetPayload(),
		QRPath:         "/v1/register/" + draft.ID + "/qr",
		ExpiresAt:      draft.ExpiresAt,
	})
}

func (s *service) PaymentQR(ctx *ginext.Context) {
	if _, err := s.drafts.Get(ctx.Param("draft")); err != nil {
		dto.DraftNotFoundError(ctx)
		return
	}

	png, err := s.pay.QRCodePNG(256)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to render payment QR code")
		dto.InternalServerError(ctx)
		return
	}
	ctx.Data(200, "image/png", png)
}

func (s *service) SubmitPayment(ctx *ginext.Context) {
	draftID := ctx.Param("draft")
	transactionID := ctx.PostForm("transaction_id")

	var proof []byte
	if file, err := ctx.FormFile("proof"); err == nil {
		f, err := file.Open()
		if err != nil {
			s.log.Error().Err(err).Msg("failed to open uploaded proof")
			dto.InternalServerError(ctx)
			return
		}
		proof, err = io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			s.log.Error().Err(err).Msg("failed to read uploaded proof")
			dto.InternalServerError(ctx)
			return
		}
	}

	// Transaction reference gates the proof: both checks surface as
	// recoverable form errors, reference first.
	if err := payment.ValidateSubmission(transactionID, proof); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, capitalize(err.Error()))
		return
	}

	proofURI, err := payment.EncodeProof(proof)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldBadFormat, capitalize(err.Error()))
		return
	}

	var created model.Registration
	var eventTitle string
	err = s.drafts.Complete(draftID, func(d workflow.Draft) error {
		eventTitle = d.Event.Title
		now := time.Now().UTC()
		reg := model.Registration{
			EventID:            d.Event.ID,
			Name:               d.Name,
			Email:              d.Email,
			Phone:              d.Phone,
			Requirements:       d.Requirements,
			Timestamp:          now,
			PaymentStatus:      model.PaymentCompleted,
			AmountCents:        s.pay.AmountCents,
			TransactionID:      transactionID,
			PaymentProofURI:    proofURI,
			PaymentSubmittedAt: &now,
		}
		if err := s.repo.AddRegistration(ctx, &reg); err != nil {
			return err
		}
		created = reg
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrDraftNotFound):
			dto.DraftNotFoundError(ctx)
		case errors.Is(err, workflow.ErrDraftCompleted):
			dto.DraftCompletedError(ctx)
		default:
			s.log.Error().Err(err).Msg("failed to persist registration")
			dto.InternalServerError(ctx)
		}
		return
	}

	s.log.Info().
		Str("registration_id", created.ID).
		Str("event_id", created.EventID).
		Msg("registration completed")

	if err := s.publisher.Publish(ctx, notify.Message{
		Kind:       notify.KindRegistrationConfirmed,
		Recipient:  created.Email,
		Name:       created.Name,
		EventTitle: eventTitle,
	}); err != nil {
		s.log.Warn().Err(err).Msg("failed to publish registration notification")
	}

	dto.SuccessCreatedResponse(ctx, registrationResponse(created))
}

func (s *service) DiscardRegistration(ctx *ginext.Context) {
	s.drafts.Discard(ctx.Param("draft"))
	ctx.Status(204)
}

func eventResponse(e model.Event, registrations int) dto.EventResponse {
	return dto.EventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Date:          e.Date,
		Location:      e.Location,
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
		Registrations: registrations,
	}
}

func registrationResponse(reg model.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:                 reg.ID,
		EventID:            reg.EventID,
		Name:               reg.Name,
		Email:              reg.Email,
		Phone:              reg.Phone,
		Requirements:       reg.Requirements,
		Timestamp:          reg.Timestamp,
		PaymentStatus:      string(reg.PaymentStatus),
		Amount:             payment.FormatAmount(reg.AmountCents),
		TransactionID:      reg.TransactionID,
		PaymentSubmittedAt: reg.PaymentSubmittedAt,
		HasPaymentProof:    reg.PaymentProofURI != "",
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
