// internal/app/features/login/handler.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	tokenstore "github.com/showroomhq/showroomhub/internal/app/store/tokens"
	userstore "github.com/showroomhq/showroomhub/internal/app/store/users"
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/showroomhq/showroomhub/internal/app/system/ratelimit"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Users      *userstore.Store
	Tokens     *tokenstore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger
}

func NewHandler(users *userstore.Store, tokens *tokenstore.Store, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		Tokens:     tokens,
		SessionMgr: sessionMgr,
		Limiter:    ratelimit.NewLoginLimiter(),
		Log:        logger,
	}
}

type loginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// HandleLogin verifies credentials and issues a bearer token plus a
// session cookie. Failed and successful attempts return through the same
// generic message so login IDs cannot be probed.
// POST /api/user/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LoginID == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "login_id and password are required")
		return
	}

	if allowed, reason := h.Limiter.Check(r, req.LoginID); !allowed {
		respond.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusUnauthorized, "invalid login ID or password")
			return
		}
		respond.ServerError(w, h.Log, "login lookup", err)
		return
	}

	if user.Status == "disabled" {
		respond.Error(w, http.StatusForbidden, "this account has been disabled")
		return
	}
	// Google-only accounts have no password hash to compare against.
	if user.PasswordHash == "" {
		respond.Error(w, http.StatusUnauthorized, "invalid login ID or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid login ID or password")
		return
	}

	h.Limiter.ResetLogin(req.LoginID)

	tok, err := h.Tokens.Issue(ctx, *user)
	if err != nil {
		respond.ServerError(w, h.Log, "issue token", err)
		return
	}

	// Cookie session alongside the token so browser dashboards survive
	// page reloads without storing the token client side.
	if err := h.SessionMgr.SignIn(w, r, user.ID.Hex()); err != nil {
		h.Log.Warn("session cookie not set", zap.Error(err))
	}

	h.Log.Info("user signed in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	respond.JSON(w, http.StatusOK, loginResponse{
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		User:      *user,
	})
}
