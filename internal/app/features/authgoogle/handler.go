// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/store/oauthstate"
	userstore "github.com/showroomhq/showroomhub/internal/app/store/users"
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// stateTTL bounds how long an initiated OAuth flow stays redeemable.
const stateTTL = 10 * time.Minute

// Handler implements the Google sign-in flow for dashboard accounts.
// An account must already exist with a matching login_id (the Google
// email); sign-in never provisions users.
type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	StateStore *oauthstate.Store
	Log        *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewHandler constructs the Google OAuth handler.
func NewHandler(users *userstore.Store, sm *auth.SessionManager, states *oauthstate.Store, clientID, clientSecret, redirectURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:        users,
		SessionMgr:   sm,
		StateStore:   states,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
	}
}

// IsConfigured reports whether Google OAuth credentials are present.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != "" && h.RedirectURL != ""
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// ServeLogin handles GET /auth/google: generates a one-time state,
// records it, and redirects to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		respond.Error(w, http.StatusNotFound, "Google sign-in is not configured")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("generate OAuth state", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	returnURL := r.URL.Query().Get("return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if err := h.StateStore.Save(ctx, state, returnURL, time.Now().Add(stateTTL)); err != nil {
		h.Log.Error("save OAuth state", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)

	h.Log.Debug("initiating Google OAuth flow",
		zap.String("return_url", returnURL))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback: validates the state,
// exchanges the code, resolves the Google account to a local user, and
// signs the session in.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		redirectToLogin(w, r, "google_denied")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		redirectToLogin(w, r, "invalid_state")
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("validate OAuth state", zap.Error(err))
		redirectToLogin(w, r, "internal")
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		redirectToLogin(w, r, "invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		redirectToLogin(w, r, "invalid_code")
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("exchange OAuth code", zap.Error(err))
		redirectToLogin(w, r, "token_exchange")
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("fetch Google user info", zap.Error(err))
		redirectToLogin(w, r, "user_info")
		return
	}

	user, err := h.Users.GetByLoginID(ctxTimeout, googleUser.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Info("Google OAuth: no account for email",
				zap.String("email", googleUser.Email))
			redirectToLogin(w, r, "no_account")
			return
		}
		h.Log.Error("look up user for Google sign-in", zap.Error(err))
		redirectToLogin(w, r, "internal")
		return
	}
	if strings.EqualFold(user.Status, "disabled") {
		h.Log.Info("Google OAuth: account disabled",
			zap.String("email", googleUser.Email))
		redirectToLogin(w, r, "account_disabled")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID.Hex()); err != nil {
		h.Log.Error("save session after Google sign-in", zap.Error(err),
			zap.String("user_id", user.ID.Hex()))
		redirectToLogin(w, r, "session")
		return
	}

	h.Log.Info("user signed in via Google",
		zap.String("user_id", user.ID.Hex()),
		zap.String("login_id", user.LoginID),
		zap.String("role", user.Role))

	http.Redirect(w, r, safeReturn(returnURL, "/dashboard"), http.StatusSeeOther)
}

// googleUserInfo is the subset of Google's userinfo payload we use.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, errorCode string) {
	http.Redirect(w, r, "/login?error="+errorCode, http.StatusSeeOther)
}

// safeReturn keeps post-login redirects on this origin. Anything that
// is not a plain local path falls back to the default.
func safeReturn(returnURL, fallback string) string {
	if returnURL == "" || !strings.HasPrefix(returnURL, "/") || strings.HasPrefix(returnURL, "//") {
		return fallback
	}
	return returnURL
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
