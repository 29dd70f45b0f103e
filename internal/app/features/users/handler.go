// internal/app/features/users/handler.go

// Package users serves the admin account-management endpoints: head
// office creates office-admin and showroom terminal accounts here.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/showroomhq/showroomhub/internal/app/store/users"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler owns the account-management endpoints.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler creates a users Handler.
func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type createRequest struct {
	FullName string `json:"full_name"`
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Showroom string `json:"showroom"`
}

const minPasswordLen = 8

// ServeCreate handles POST /api/user/accounts.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	switch {
	case req.LoginID == "":
		respond.Error(w, http.StatusBadRequest, "login_id is required")
		return
	case len(req.Password) < minPasswordLen:
		respond.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	case role != "admin" && role != "officeadmin" && role != "showroom":
		respond.Error(w, http.StatusBadRequest, `role must be "admin"|"officeadmin"|"showroom"`)
		return
	case role == "showroom" && req.Showroom == "":
		respond.Error(w, http.StatusBadRequest, "showroom accounts need a showroom branch")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.ServerError(w, h.Log, "hash password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		LoginID:      req.LoginID,
		PasswordHash: string(hash),
		AuthMethod:   "password",
		Role:         role,
		Showroom:     req.Showroom,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateLoginID) {
			respond.Error(w, http.StatusConflict, err.Error())
			return
		}
		respond.ServerError(w, h.Log, "create user", err)
		return
	}

	h.Log.Info("account created",
		zap.String("login_id", user.LoginID),
		zap.String("role", user.Role))

	respond.JSON(w, http.StatusCreated, user)
}

// ServeList handles GET /api/user/accounts?role=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role := strings.ToLower(strings.TrimSpace(query.Get(r, "role")))
	if role == "" {
		respond.Error(w, http.StatusBadRequest, "role query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Users.ListByRole(ctx, role)
	if err != nil {
		respond.ServerError(w, h.Log, "list users", err)
		return
	}
	if items == nil {
		items = []models.User{}
	}

	respond.JSON(w, http.StatusOK, map[string]any{"items": items})
}

type statusRequest struct {
	Status string `json:"status"`
}

// ServeSetStatus handles PUT /api/user/accounts/{id}/status, enabling
// or disabling an account. Disabling also kills live sessions because
// every request re-fetches the user.
func (h *Handler) ServeSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != "active" && status != "disabled" {
		respond.Error(w, http.StatusBadRequest, `status must be "active" or "disabled"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		respond.ServerError(w, h.Log, "set user status", err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "user updated"})
}
