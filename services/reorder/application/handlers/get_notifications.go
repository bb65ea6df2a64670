package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/auth"
	"github.com/ghuser/restockd/pkg/errhttp"
	"github.com/ghuser/restockd/pkg/httpx"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
)

// NotificationResponse is returned for notification feed reads.
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	OrgID     uuid.UUID `json:"org_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
} // @name NotificationResponse

// NotificationListResponse is the paginated envelope for GET /notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	Limit         int                    `json:"limit"`
	Offset        int                    `json:"offset"`
} // @name NotificationListResponse

// GetNotificationsHandler handles GET /notifications requests.
type GetNotificationsHandler struct {
	svc *appsvcs.Services
}

// NewGetNotificationsHandler returns a GetNotificationsHandler backed by the given services.
func NewGetNotificationsHandler(svc *appsvcs.Services) *GetNotificationsHandler {
	return &GetNotificationsHandler{svc: svc}
}

// Execute lists notifications for the caller's organization, newest first.
//
//	@Summary		List notifications
//	@Description	Lists notifications scoped to the caller's organization, newest first
//	@Tags			notifications
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (max 100)"	default(50)
//	@Param			offset	query		int	false	"Records to skip"		default(0)
//	@Success		200		{object}	NotificationListResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/notifications [get]
func (h *GetNotificationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	opts := parseQueryOpts(r)

	notifications, total, err := h.svc.Notification.List(r.Context(), orgID, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(notifications)),
		Total:         total,
		Limit:         opts.Limit,
		Offset:        opts.Offset,
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:        n.ID,
			OrgID:     n.OrgID,
			Kind:      string(n.Kind),
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		})
	}

	httpx.JSON(w, http.StatusOK, resp)
}
