package handlers

import (
	"net/http"

	"github.com/ghuser/restockd/pkg/auth"
	"github.com/ghuser/restockd/pkg/errhttp"
	"github.com/ghuser/restockd/pkg/httpx"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
)

// VendorListResponse is the envelope for GET /vendors.
type VendorListResponse struct {
	Vendors []VendorResponse `json:"vendors"`
} // @name VendorListResponse

// GetVendorsHandler handles GET /vendors requests.
type GetVendorsHandler struct {
	svc *appsvcs.Services
}

// NewGetVendorsHandler returns a GetVendorsHandler backed by the given services.
func NewGetVendorsHandler(svc *appsvcs.Services) *GetVendorsHandler {
	return &GetVendorsHandler{svc: svc}
}

// Execute lists all vendors for the caller's organization.
//
//	@Summary		List vendors
//	@Description	Lists vendors scoped to the caller's organization in creation order
//	@Tags			vendors
//	@Produce		json
//	@Success		200	{object}	VendorListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/vendors [get]
func (h *GetVendorsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	vendors, err := h.svc.Vendor.List(r.Context(), orgID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := VendorListResponse{Vendors: make([]VendorResponse, 0, len(vendors))}
	for _, v := range vendors {
		resp.Vendors = append(resp.Vendors, VendorResponse{
			ID:            v.ID,
			OrgID:         v.OrgID,
			Name:          v.Name,
			Email:         v.Email,
			ContactPerson: v.ContactPerson,
			CreatedAt:     v.CreatedAt,
		})
	}

	httpx.JSON(w, http.StatusOK, resp)
}
