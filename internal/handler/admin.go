package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bariskaantoprak-ui/ITSO/internal/auth"
	"github.com/bariskaantoprak-ui/ITSO/internal/logger"
	"github.com/bariskaantoprak-ui/ITSO/internal/model"
	"github.com/bariskaantoprak-ui/ITSO/internal/service"
)

// Authenticator checks admin credentials.
type Authenticator interface {
	Login(email, password string) (string, time.Time, error)
	Identify(next http.Handler) http.Handler
	RequireAdmin(next http.Handler) http.Handler
}

// AdminHandler issues admin sessions.
type AdminHandler struct {
	auth Authenticator
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(a Authenticator) *AdminHandler {
	return &AdminHandler{auth: a}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	token, exp, err := h.auth.Login(req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrUnauthorized):
		logger.L().Warn("admin login failed", zap.String("remote", r.RemoteAddr))
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	case errors.Is(err, auth.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "admin login is not configured")
		return
	default:
		internalError(w, r, "login failed", err)
		return
	}

	logger.L().Info("admin logged in", zap.String("remote", r.RemoteAddr))
	writeJSON(w, http.StatusOK, model.LoginResponse{Token: token, ExpiresAt: exp})
}

// Assistant drafts event content.
type Assistant interface {
	GenerateDescription(ctx context.Context, title, notes string) string
	GenerateImage(ctx context.Context, prompt string) string
}

// AssistHandler exposes the content assistant to admins.
type AssistHandler struct {
	ai  Assistant
	svc *service.EventService
}

// NewAssistHandler constructs an AssistHandler.
func NewAssistHandler(ai Assistant, svc *service.EventService) *AssistHandler {
	return &AssistHandler{ai: ai, svc: svc}
}

// Description handles POST /assist/description
// Always 200: failures come back as placeholder text.
func (h *AssistHandler) Description(w http.ResponseWriter, r *http.Request) {
	var req model.DescriptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.svc.Validate(req); err != nil {
		writeRequestError(w, err)
		return
	}

	text := h.ai.GenerateDescription(r.Context(), req.Title, req.Notes)
	writeJSON(w, http.StatusOK, model.DescriptionResponse{Text: text})
}

// Image handles POST /assist/image
// An empty image means generation failed.
func (h *AssistHandler) Image(w http.ResponseWriter, r *http.Request) {
	var req model.ImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.svc.Validate(req); err != nil {
		writeRequestError(w, err)
		return
	}

	img := h.ai.GenerateImage(r.Context(), req.Prompt)
	writeJSON(w, http.StatusOK, model.ImageResponse{Image: img})
}
