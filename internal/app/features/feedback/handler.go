// internal/app/features/feedback/handler.go

// Package feedback serves the public submission endpoint reached from
// the SMS link plus the dashboard views that triage responses.
package feedback

import (
	feedbackstore "github.com/showroomhq/showroomhub/internal/app/store/feedback"
	"go.uber.org/zap"
)

// Handler owns the feedback endpoints.
type Handler struct {
	Feedback *feedbackstore.Store
	Log      *zap.Logger
}

// NewHandler creates a feedback Handler.
func NewHandler(feedback *feedbackstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Feedback: feedback, Log: logger}
}
