package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/auth"
	"github.com/ghuser/restockd/pkg/errhttp"
	"github.com/ghuser/restockd/pkg/httpx"
	pkgvalidator "github.com/ghuser/restockd/pkg/validator"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
	"github.com/ghuser/restockd/services/reorder/domain/models"
)

// ReorderSettingsRequest is the request body for PUT /items/{id}/reorder-settings.
type ReorderSettingsRequest struct {
	AutoReorderEnabled  bool   `json:"auto_reorder_enabled"`
	ReorderLevel        int    `json:"reorder_level" validate:"gte=0" example:"10"`
	AutoReorderQuantity int    `json:"auto_reorder_quantity" validate:"gte=0" example:"50"`
	VendorID            string `json:"vendor_id" validate:"omitempty,uuid4" example:"550e8400-e29b-41d4-a716-446655440000"`
} // @name ReorderSettingsRequest

// PutReorderSettingsHandler handles PUT /items/{id}/reorder-settings requests.
type PutReorderSettingsHandler struct {
	svc *appsvcs.Services
}

// NewPutReorderSettingsHandler returns a PutReorderSettingsHandler backed by the given services.
func NewPutReorderSettingsHandler(svc *appsvcs.Services) *PutReorderSettingsHandler {
	return &PutReorderSettingsHandler{svc: svc}
}

// Execute updates an item's auto-reorder configuration.
//
//	@Summary		Update reorder settings
//	@Description	Sets the auto-reorder configuration for an inventory item
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Item ID"
//	@Param			request	body		ReorderSettingsRequest	true	"Reorder settings"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{id}/reorder-settings [put]
func (h *PutReorderSettingsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ReorderSettingsRequest](w, r)
	if !ok {
		return
	}

	settings := models.ReorderSettings{
		AutoReorderEnabled:  req.AutoReorderEnabled,
		ReorderLevel:        req.ReorderLevel,
		AutoReorderQuantity: req.AutoReorderQuantity,
	}
	if req.VendorID != "" {
		vendorID, err := uuid.Parse(req.VendorID)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid vendor id")
			return
		}
		settings.VendorID = uuid.NullUUID{UUID: vendorID, Valid: true}
	}

	item, err := h.svc.Inventory.UpdateReorderSettings(r.Context(), orgID, itemID, settings)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, itemToResponse(item))
}

// itemToResponse maps a domain item to its API representation.
func itemToResponse(item *models.InventoryItem) ItemResponse {
	resp := ItemResponse{
		ID:                  item.ID,
		OrgID:               item.OrgID,
		Name:                item.Name,
		SKU:                 item.SKU,
		Quantity:            item.Quantity,
		ReorderLevel:        item.ReorderLevel,
		UnitCost:            item.UnitCost.String(),
		AutoReorderEnabled:  item.AutoReorderEnabled,
		AutoReorderQuantity: item.AutoReorderQuantity,
		CreatedAt:           item.CreatedAt,
	}
	if item.VendorID.Valid {
		resp.VendorID = item.VendorID.UUID.String()
	}
	return resp
}
