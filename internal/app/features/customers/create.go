// internal/app/features/customers/create.go
package customers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/authz"
	"github.com/showroomhq/showroomhub/internal/app/system/htmlsanitize"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"go.uber.org/zap"
)

// smsDispatchTimeout bounds the background gateway call kicked off
// after a visit is recorded.
const smsDispatchTimeout = 15 * time.Second

type createRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	ShowroomBranch string `json:"showroom_branch"`
	Category       string `json:"category"`
	Notes          string `json:"notes"`
}

// ServeCreate handles POST /api/user/customers. Showroom accounts are
// pinned to their own branch; whatever branch the body claims is
// ignored for them.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	branch := req.ShowroomBranch
	if authz.IsShowroom(r) {
		branch = authz.UserShowroom(r)
	}
	if req.Phone == "" {
		respond.Error(w, http.StatusBadRequest, "phone is required")
		return
	}
	if branch == "" {
		respond.Error(w, http.StatusBadRequest, "showroom_branch is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	visit, err := h.Customers.Create(ctx, models.Visit{
		Name:           req.Name,
		Phone:          req.Phone,
		ShowroomBranch: branch,
		Category:       req.Category,
		Notes:          htmlsanitize.Sanitize(req.Notes),
	})
	if err != nil {
		respond.ServerError(w, h.Log, "create visit", err)
		return
	}

	h.dispatchVisitSMS(ctx, visit)

	respond.JSON(w, http.StatusCreated, visit)
}

// dispatchVisitSMS sends the feedback invitation in the background.
// The settings snapshot is read on the request so the goroutine never
// touches shared state; failures only surface in logs and metrics.
func (h *Handler) dispatchVisitSMS(ctx context.Context, visit models.Visit) {
	if h.SMS == nil || h.Settings == nil {
		return
	}

	cfg, err := h.Settings.Get(ctx)
	if err != nil {
		h.Log.Warn("load settings for sms dispatch",
			zap.Error(err),
			zap.String("visit_id", visit.ID.Hex()))
		return
	}
	if !cfg.SMSEnabled {
		return
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), smsDispatchTimeout)
		defer cancel()
		h.SMS.DispatchVisit(sendCtx, cfg, visit.Name, visit.Phone)
	}()
}
