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
)

// CreateVendorRequest is the request body for POST /vendors.
type CreateVendorRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=255" example:"Acme Fasteners"`
	Email         string `json:"email" validate:"omitempty,email" example:"orders@acme.example"`
	ContactPerson string `json:"contact_person" validate:"max=255" example:"Jo Miller"`
} // @name CreateVendorRequest

// VendorResponse is returned on successful vendor creation.
type VendorResponse struct {
	ID            uuid.UUID `json:"id"`
	OrgID         uuid.UUID `json:"org_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
} // @name VendorResponse

// PostVendorHandler handles POST /vendors requests.
type PostVendorHandler struct {
	svc *appsvcs.Services
}

// NewPostVendorHandler returns a PostVendorHandler backed by the given services.
func NewPostVendorHandler(svc *appsvcs.Services) *PostVendorHandler {
	return &PostVendorHandler{svc: svc}
}

// Execute creates a new vendor.
//
//	@Summary		Create vendor
//	@Description	Creates a new vendor scoped to the caller's organization
//	@Tags			vendors
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateVendorRequest	true	"Vendor creation request"
//	@Success		201		{object}	VendorResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/vendors [post]
func (h *PostVendorHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateVendorRequest](w, r)
	if !ok {
		return
	}

	vendor, err := h.svc.Vendor.Create(r.Context(), orgID, req.Name, req.Email, req.ContactPerson)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, VendorResponse{
		ID:            vendor.ID,
		OrgID:         vendor.OrgID,
		Name:          vendor.Name,
		Email:         vendor.Email,
		ContactPerson: vendor.ContactPerson,
		CreatedAt:     vendor.CreatedAt,
	})
}
