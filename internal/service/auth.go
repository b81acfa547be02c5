package service

import (
	"crypto/subtle"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"golang.org/x/crypto/bcrypt"

	"campushub/internal/dto"
	"campushub/pkg/validator"
)

const sessionCookie = "admin_session"

// One shared admin secret, one session at a time. The token lives in the
// store, so an authenticated session survives a restart; logout clears
// it unconditionally.

func (s *service) Login(ctx *ginext.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(req.Password)); err != nil {
		s.log.Warn().Msg("admin login rejected")
		dto.InvalidPasswordError(ctx)
		return
	}

	token := uuid.NewString()
	if err := s.repo.SetAdminSession(ctx, token); err != nil {
		s.log.Error().Err(err).Msg("failed to persist admin session")
		dto.InternalServerError(ctx)
		return
	}

	ctx.SetCookie(sessionCookie, token, 30*24*3600, "/", "", false, true)
	s.log.Info().Msg("admin logged in")
	dto.SuccessResponse(ctx, dto.SessionResponse{Authenticated: true})
}

func (s *service) Logout(ctx *ginext.Context) {
	if err := s.repo.ClearAdminSession(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear admin session")
		dto.InternalServerError(ctx)
		return
	}
	ctx.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	dto.SuccessResponse(ctx, dto.SessionResponse{Authenticated: false})
}

func (s *service) Session(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, dto.SessionResponse{Authenticated: s.authenticated(ctx)})
}

func (s *service) authenticated(ctx *ginext.Context) bool {
	cookie, err := ctx.Cookie(sessionCookie)
	if err != nil || cookie == "" {
		return false
	}
	token, ok, err := s.repo.AdminSession(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read admin session")
		return false
	}
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie), []byte(token)) == 1
}

func (s *service) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !s.authenticated(ctx) {
			dto.UnauthorizedError(ctx)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
