package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/auth"
	"github.com/ghuser/restockd/pkg/errhttp"
	"github.com/ghuser/restockd/pkg/httpx"
	pkgvalidator "github.com/ghuser/restockd/pkg/validator"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
	"github.com/ghuser/restockd/services/reorder/domain/models"
)

// UpdateProfileRequest is the request body for PUT /profile.
type UpdateProfileRequest struct {
	CompanyName              string `json:"company_name" validate:"max=255" example:"Northwind Traders"`
	AutoReorderEnabled       bool   `json:"auto_reorder_enabled"`
	AutoReorderNotifications bool   `json:"auto_reorder_notifications"`
} // @name UpdateProfileRequest

// ProfileResponse is returned for organization profile reads and writes.
type ProfileResponse struct {
	OrgID                    uuid.UUID `json:"org_id"`
	CompanyName              string    `json:"company_name"`
	AutoReorderEnabled       bool      `json:"auto_reorder_enabled"`
	AutoReorderNotifications bool      `json:"auto_reorder_notifications"`
	UpdatedAt                time.Time `json:"updated_at"`
} // @name ProfileResponse

// ProfileHandler handles GET and PUT /profile requests.
type ProfileHandler struct {
	svc *appsvcs.Services
}

// NewProfileHandler returns a ProfileHandler backed by the given services.
func NewProfileHandler(svc *appsvcs.Services) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Get returns the caller's organization profile.
//
//	@Summary		Get organization profile
//	@Description	Returns the caller's organization replenishment settings
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	profile, err := h.svc.Profile.Get(r.Context(), orgID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, profileToResponse(profile))
}

// Put updates the caller's organization profile.
//
//	@Summary		Update organization profile
//	@Description	Sets the org-wide auto-reorder kill switch and vendor email notifications
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateProfileRequest	true	"Profile settings"
//	@Success		200		{object}	ProfileResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/profile [put]
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateProfileRequest](w, r)
	if !ok {
		return
	}

	profile, err := h.svc.Profile.Update(r.Context(), orgID,
		req.CompanyName, req.AutoReorderEnabled, req.AutoReorderNotifications)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, profileToResponse(profile))
}

func profileToResponse(p *models.OrgProfile) ProfileResponse {
	return ProfileResponse{
		OrgID:                    p.OrgID,
		CompanyName:              p.CompanyName,
		AutoReorderEnabled:       p.AutoReorderEnabled,
		AutoReorderNotifications: p.AutoReorderNotifications,
		UpdatedAt:                p.UpdatedAt,
	}
}
