package handlers

import (
	"net/http"

	"github.com/ghuser/restockd/pkg/auth"
	"github.com/ghuser/restockd/pkg/errhttp"
	"github.com/ghuser/restockd/pkg/httpx"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
)

// TickReportResponse summarizes the outcome of an on-demand evaluation pass.
type TickReportResponse struct {
	Eligible  int `json:"eligible"`
	Ordered   int `json:"ordered"`
	Debounced int `json:"debounced"`
	Failed    int `json:"failed"`
} // @name TickReportResponse

// PostReorderRunHandler handles POST /reorder/run requests.
type PostReorderRunHandler struct {
	svc *appsvcs.Services
}

// NewPostReorderRunHandler returns a PostReorderRunHandler backed by the given services.
func NewPostReorderRunHandler(svc *appsvcs.Services) *PostReorderRunHandler {
	return &PostReorderRunHandler{svc: svc}
}

// Execute runs one auto-reorder evaluation pass for the caller's organization.
//
//	@Summary		Run auto-reorder evaluation
//	@Description	Evaluates the caller's organization inventory immediately instead of waiting for the next scheduled tick
//	@Tags			reorder
//	@Produce		json
//	@Success		200	{object}	TickReportResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/reorder/run [post]
func (h *PostReorderRunHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	report, err := h.svc.Reorder.RunOrg(r.Context(), orgID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, TickReportResponse{
		Eligible:  report.Eligible,
		Ordered:   report.Ordered,
		Debounced: report.Debounced,
		Failed:    report.Failed,
	})
}
