package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/ginext"

	"campushub/internal/dto"
	"campushub/internal/model"
	"campushub/internal/notify"
	"campushub/internal/repo"
	"campushub/pkg/validator"
)

func (s *service) ListBlogPosts(ctx *ginext.Context) {
	posts, err := s.repo.ListBlogPosts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list blog posts")
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, dto.BlogPostResponse{
			ID:      p.ID,
			Title:   p.Title,
			Author:  p.Author,
			Content: p.Content,
			Date:    p.Date,
		})
	}
	dto.SuccessResponse(ctx, resp)
}

func (s *service) CreateBlogPost(ctx *ginext.Context) {
	var req dto.CreateBlogPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	post := &model.BlogPost{
		Title:   req.Title,
		Author:  req.Author,
		Content: req.Content,
		Date:    time.Now().UTC(),
	}
	if err := s.repo.AddBlogPost(ctx, post); err != nil {
		s.log.Error().Err(err).Msg("failed to create blog post")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Str("post_id", post.ID).Msg("blog post created")
	dto.SuccessCreatedResponse(ctx, dto.BlogPostResponse{
		ID:      post.ID,
		Title:   post.Title,
		Author:  post.Author,
		Content: post.Content,
		Date:    post.Date,
	})
}

func (s *service) DeleteBlogPost(ctx *ginext.Context) {
	id := ctx.Param("id")
	if err := s.repo.DeleteBlogPost(ctx, id); err != nil {
		if errors.Is(err, repo.ErrBlogPostNotFound) {
			dto.BlogPostNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to delete blog post")
		dto.InternalServerError(ctx)
		return
	}
	ctx.Status(204)
}

func (s *service) SubmitContact(ctx *ginext.Context) {
	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	msg := &model.ContactMessage{
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Message:    req.Message,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.repo.AddContactMessage(ctx, msg); err != nil {
		s.log.Error().Err(err).Msg("failed to store contact message")
		dto.InternalServerError(ctx)
		return
	}

	if err := s.publisher.Publish(ctx, notify.Message{
		Kind:      notify.KindContactReceived,
		Recipient: s.inbox,
		Name:      msg.Name,
		Subject:   msg.Subject,
		Body:      msg.Message,
	}); err != nil {
		s.log.Warn().Err(err).Msg("failed to publish contact notification")
	}

	dto.SuccessAcceptedResponse(ctx, struct {
		ID string `json:"id"`
	}{ID: msg.ID})
}

func (s *service) ContactInfo(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, contactInfo)
}

func (s *service) Achievements(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, achievements)
}
