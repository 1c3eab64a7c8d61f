package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
)

// SubmissionService is the subset of the submission queue the HTTP layer uses.
type SubmissionService interface {
	SubmitOrEnqueue(ctx context.Context, sub model.ContactSubmission) (model.SubmitOutcome, error)
	ListPending(ctx context.Context) ([]model.PendingSubmission, error)
	RetryAll(ctx context.Context) (model.RetryResult, error)
	ClearAll(ctx context.Context) error
}

// ContactHandlers serves the public contact form endpoint.
type ContactHandlers struct {
	Svc    SubmissionService
	Logger *slog.Logger
}

type contactResponse struct {
	Status   string `json:"status"`
	Strategy string `json:"strategy,omitempty"`
	ID       string `json:"id,omitempty"`
}

// Submit handles POST /api/contact. Delivered submissions answer 201; ones
// held in the pending queue answer 202 with the queue entry id.
func (h *ContactHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var sub model.ContactSubmission
	if !DecodeJSON(w, r, &sub) {
		return
	}

	out, err := h.Svc.SubmitOrEnqueue(r.Context(), sub)
	if err != nil {
		if !apperrors.IsValidation(err) {
			h.logger().ErrorContext(r.Context(), "contact submission failed", "error", err)
		}
		WriteAppError(w, err)
		return
	}
	if out.Queued {
		h.logger().WarnContext(r.Context(), "contact submission queued for retry", "pending_id", out.PendingID)
		WriteJSON(w, http.StatusAccepted, contactResponse{Status: "queued", ID: out.PendingID})
		return
	}
	WriteJSON(w, http.StatusCreated, contactResponse{Status: "sent", Strategy: out.Strategy})
}

func (h *ContactHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
