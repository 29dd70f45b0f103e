// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"
	"strings"

	tokenstore "github.com/showroomhq/showroomhub/internal/app/store/tokens"
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Tokens     *tokenstore.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(tokens *tokenstore.Store, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Tokens: tokens, SessionMgr: sessionMgr, Log: logger}
}

// HandleLogout revokes the caller's bearer token (when one was sent) and
// clears the cookie session. Safe to call repeatedly.
// POST /api/user/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if token := bearerToken(r); token != "" {
		if err := h.Tokens.Revoke(ctx, token); err != nil {
			h.Log.Warn("token revoke failed", zap.Error(err))
		}
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("session sign-out failed", zap.Error(err))
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
