// internal/app/features/settings/handler.go

// Package settings serves the admin view of the SMS/feedback-URL
// configuration singleton.
package settings

import (
	"context"
	"encoding/json"
	"net/http"

	settingsstore "github.com/showroomhq/showroomhub/internal/app/store/settings"
	"github.com/showroomhq/showroomhub/internal/app/system/authz"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler owns the settings endpoints.
type Handler struct {
	Settings *settingsstore.Store
	Log      *zap.Logger
}

// NewHandler creates a settings Handler.
func NewHandler(settings *settingsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Settings: settings, Log: logger}
}

// ServeGet handles GET /api/user/settings. The API key never appears
// in responses; only whether one is set.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cfg, err := h.Settings.Get(ctx)
	if err != nil {
		respond.ServerError(w, h.Log, "load settings", err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"settings":    cfg,
		"api_key_set": cfg.SMSApiKey != "",
	})
}

type updateRequest struct {
	SMSEnabled  *bool   `json:"sms_enabled"`
	SMSApiURL   *string `json:"sms_api_url"`
	SMSApiKey   *string `json:"sms_api_key"`
	SMSSender   *string `json:"sms_sender"`
	FeedbackURL *string `json:"feedback_url"`
}

// ServeUpdate handles PUT /api/user/settings. Omitted fields keep
// their stored values, so the dashboard can update the toggle without
// re-sending the API key.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cfg, err := h.Settings.Get(ctx)
	if err != nil {
		respond.ServerError(w, h.Log, "load settings", err)
		return
	}
	apply(&cfg, req)

	if err := h.Settings.Save(ctx, cfg, userID, name); err != nil {
		respond.ServerError(w, h.Log, "save settings", err)
		return
	}

	h.Log.Info("settings updated",
		zap.String("by", name),
		zap.Bool("sms_enabled", cfg.SMSEnabled))

	respond.JSON(w, http.StatusOK, map[string]any{
		"settings":    cfg,
		"api_key_set": cfg.SMSApiKey != "",
	})
}

func apply(cfg *models.Settings, req updateRequest) {
	if req.SMSEnabled != nil {
		cfg.SMSEnabled = *req.SMSEnabled
	}
	if req.SMSApiURL != nil {
		cfg.SMSApiURL = *req.SMSApiURL
	}
	if req.SMSApiKey != nil {
		cfg.SMSApiKey = *req.SMSApiKey
	}
	if req.SMSSender != nil {
		cfg.SMSSender = *req.SMSSender
	}
	if req.FeedbackURL != nil {
		cfg.FeedbackURL = *req.FeedbackURL
	}
}
