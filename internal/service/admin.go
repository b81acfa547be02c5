package service

import (
	"bytes"
	"errors"

	"github.com/wb-go/wbf/ginext"

	"campushub/internal/dto"
	"campushub/internal/export"
	"campushub/internal/model"
	"campushub/internal/payment"
	"campushub/internal/repo"
)

func (s *service) AdminSummary(ctx *ginext.Context) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events for summary")
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.EventSummaryResponse, 0, len(events))
	for _, e := range events {
		count, err := s.repo.CountRegistrations(ctx, e.ID)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to count registrations")
			dto.InternalServerError(ctx)
			return
		}
		collected, err := s.repo.CollectedCents(ctx, e.ID)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to sum collected payments")
			dto.InternalServerError(ctx)
			return
		}
		resp = append(resp, dto.EventSummaryResponse{
			EventID:       e.ID,
			Title:         e.Title,
			Date:          e.Date,
			Location:      e.Location,
			Registrations: count,
			Collected:     payment.FormatAmount(collected),
		})
	}

	dto.SuccessResponse(ctx, resp)
}

// filteredRegistrations resolves the event filter shared by the table
// view and the CSV export: "all" (or empty) means every registration.
func (s *service) filteredRegistrations(ctx *ginext.Context) ([]model.Registration, *model.Event, error) {
	eventID := ctx.Query("event")
	if eventID == "" || eventID == "all" {
		regs, err := s.repo.ListRegistrations(ctx)
		return regs, nil, err
	}
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	regs, err := s.repo.ListRegistrationsByEvent(ctx, eventID)
	return regs, event, err
}

func (s *service) AdminRegistrations(ctx *ginext.Context) {
	regs, _, err := s.filteredRegistrations(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to list registrations")
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		resp = append(resp, registrationResponse(reg))
	}
	dto.SuccessResponse(ctx, resp)
}

func (s *service) ExportRegistrations(ctx *ginext.Context) {
	regs, event, err := s.filteredRegistrations(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to load registrations for export")
		dto.InternalServerError(ctx)
		return
	}

	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load events for export")
		dto.InternalServerError(ctx)
		return
	}

	var buf bytes.Buffer
	if err := export.Registrations(&buf, regs, events); err != nil {
		s.log.Error().Err(err).Msg("failed to build CSV export")
		dto.InternalServerError(ctx)
		return
	}

	title := ""
	if event != nil {
		title = event.Title
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+export.Filename(title)+`"`)
	ctx.Data(200, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *service) PaymentProof(ctx *ginext.Context) {
	reg, err := s.repo.GetRegistrationByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrRegistrationNotFound) {
			dto.RegistrationNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to get registration")
		dto.InternalServerError(ctx)
		return
	}

	if reg.PaymentProofURI == "" {
		dto.NotFoundError(ctx, dto.RegistrationNotFound, "No payment proof for this registration")
		return
	}

	contentType, data, err := payment.DecodeProof(reg.PaymentProofURI)
	if err != nil {
		s.log.Error().Err(err).Str("registration_id", reg.ID).Msg("stored payment proof is unreadable")
		dto.InternalServerError(ctx)
		return
	}
	ctx.Data(200, contentType, data)
}
