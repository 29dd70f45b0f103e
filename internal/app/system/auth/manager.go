// internal/app/system/auth/manager.go
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionManager owns the cookie store and the token/user fetchers, and
// provides the middleware that loads SessionUser into context.
type SessionManager struct {
	store       *sessions.CookieStore
	sessionName string
	log         *zap.Logger

	tokens TokenFetcher
	users  UserFetcher
}

// NewSessionManager builds a SessionManager with a signed cookie store.
// In production (secure=true) cookies are Secure + SameSite=None so the
// React dashboards can be served from a different origin.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	return &SessionManager{
		store:       store,
		sessionName: sessionName,
		log:         logger,
	}, nil
}

// SetTokenFetcher wires the bearer-token lookup (the auth_tokens store).
func (m *SessionManager) SetTokenFetcher(f TokenFetcher) { m.tokens = f }

// SetUserFetcher wires the per-request user refresh for cookie sessions.
func (m *SessionManager) SetUserFetcher(f UserFetcher) { m.users = f }

// LoadSessionUser injects the caller into context. A bearer token in the
// Authorization header wins; otherwise the session cookie is consulted.
// Requests with neither simply continue unauthenticated.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" && m.tokens != nil {
			if u := m.tokens.FetchToken(r.Context(), token); u != nil {
				next.ServeHTTP(w, withUser(r, u))
				return
			}
			// An explicit but invalid token does not fall through to
			// the cookie: the client asked to authenticate this way.
			next.ServeHTTP(w, r)
			return
		}

		sess, err := m.store.Get(r, m.sessionName)
		if err != nil {
			// Get returns a fresh session alongside the error, so a
			// stale or tampered cookie just means anonymous.
			if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
				m.log.Debug("session cookie failed to decode", zap.Error(err))
			} else {
				m.log.Warn("session store error", zap.Error(err))
			}
		}
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			if id, _ := sess.Values[userIDKey].(string); id != "" && m.users != nil {
				if u := m.users.FetchUser(r.Context(), id); u != nil {
					next.ServeHTTP(w, withUser(r, u))
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects unauthenticated requests with a JSON 401.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects callers whose role is not in the allowed set.
// Unauthenticated requests get 401; authenticated-but-unauthorized get 403.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				respond.Error(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SignIn records the user in the cookie session (the fallback path; the
// bearer token is returned in the login response body).
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := m.store.Get(r, m.sessionName)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the cookie session.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.sessionName)
	sess.Values[isAuthKey] = false
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
