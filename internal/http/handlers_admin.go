package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
)

// ContactsService is the contact admin surface used by the admin API.
type ContactsService interface {
	List(ctx context.Context, filter string) ([]model.Contact, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// AdminHandlers serves the bearer-protected admin API.
type AdminHandlers struct {
	Pending  SubmissionService
	Contacts ContactsService
	Logger   *slog.Logger
}

// audit records a successful mutation together with the acting admin.
func (h *AdminHandlers) audit(r *http.Request, action string, args ...any) {
	if h.Logger == nil {
		return
	}
	attrs := []any{"action", action, "request_id", RequestIDFromContext(r.Context())}
	if p, ok := PrincipalFromContext(r.Context()); ok {
		attrs = append(attrs, "admin_id", p.Subject, "admin_email", p.Email)
	}
	h.Logger.InfoContext(r.Context(), "admin action", append(attrs, args...)...)
}

type pendingListResponse struct {
	Count   int                       `json:"count"`
	Entries []model.PendingSubmission `json:"entries"`
}

// ListPending handles GET /api/admin/pending.
func (h *AdminHandlers) ListPending(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Pending.ListPending(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if entries == nil {
		entries = []model.PendingSubmission{}
	}
	WriteJSON(w, http.StatusOK, pendingListResponse{Count: len(entries), Entries: entries})
}

// RetryPending handles POST /api/admin/pending/retry.
func (h *AdminHandlers) RetryPending(w http.ResponseWriter, r *http.Request) {
	res, err := h.Pending.RetryAll(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	h.audit(r, "pending.retry", "succeeded", res.Succeeded, "failed", res.Failed)
	WriteJSON(w, http.StatusOK, res)
}

// ClearPending handles DELETE /api/admin/pending.
func (h *AdminHandlers) ClearPending(w http.ResponseWriter, r *http.Request) {
	if err := h.Pending.ClearAll(r.Context()); err != nil {
		WriteAppError(w, err)
		return
	}
	h.audit(r, "pending.clear")
	w.WriteHeader(http.StatusNoContent)
}

// ListContacts handles GET /api/admin/contacts?status=.
func (h *AdminHandlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Contacts.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if rows == nil {
		rows = []model.Contact{}
	}
	WriteJSON(w, http.StatusOK, rows)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateContact handles PATCH /api/admin/contacts/{id}.
func (h *AdminHandlers) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Contacts.UpdateStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		WriteAppError(w, err)
		return
	}
	h.audit(r, "contact.update_status", "contact_id", r.PathValue("id"), "status", req.Status)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteContact handles DELETE /api/admin/contacts/{id}.
func (h *AdminHandlers) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.Contacts.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	h.audit(r, "contact.delete", "contact_id", r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
