// internal/app/features/feedback/submit.go
package feedback

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/showroomhq/showroomhub/internal/app/system/htmlsanitize"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
)

type submitRequest struct {
	Showroom string `json:"showroom"`
	Category string `json:"category"`
	Phone    string `json:"phone"`
	Comment  string `json:"comment"`
	Rating   int    `json:"rating"`
}

// ServeSubmit handles POST /api/feedback. The endpoint is public: the
// customer follows the SMS link and never signs in. Showroom and
// category are stored exactly as submitted because the aggregators
// join them against visits byte-for-byte.
func (h *Handler) ServeSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Phone == "" {
		respond.Error(w, http.StatusBadRequest, "phone is required")
		return
	}
	if req.Showroom == "" {
		respond.Error(w, http.StatusBadRequest, "showroom is required")
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		respond.Error(w, http.StatusBadRequest, "rating must be between 0 and 5")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	fb, err := h.Feedback.Create(ctx, models.Feedback{
		Showroom: req.Showroom,
		Category: req.Category,
		Phone:    req.Phone,
		Comment:  htmlsanitize.StripTags(req.Comment),
		Rating:   req.Rating,
	})
	if err != nil {
		respond.ServerError(w, h.Log, "create feedback", err)
		return
	}

	respond.JSON(w, http.StatusCreated, fb)
}
