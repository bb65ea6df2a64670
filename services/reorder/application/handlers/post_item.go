package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/restockd/pkg/auth"
	"github.com/ghuser/restockd/pkg/errhttp"
	"github.com/ghuser/restockd/pkg/httpx"
	pkgvalidator "github.com/ghuser/restockd/pkg/validator"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=255" example:"M6 Hex Bolt"`
	SKU      string          `json:"sku" validate:"required,min=1,max=64" example:"BOLT-M6-100"`
	Quantity int             `json:"quantity" validate:"gte=0" example:"120"`
	UnitCost decimal.Decimal `json:"unit_cost" example:"3.50"`
} // @name CreateItemRequest

// ItemResponse is returned for inventory item reads and writes.
type ItemResponse struct {
	ID                  uuid.UUID `json:"id"`
	OrgID               uuid.UUID `json:"org_id"`
	Name                string    `json:"name"`
	SKU                 string    `json:"sku"`
	Quantity            int       `json:"quantity"`
	ReorderLevel        int       `json:"reorder_level"`
	UnitCost            string    `json:"unit_cost"`
	AutoReorderEnabled  bool      `json:"auto_reorder_enabled"`
	AutoReorderQuantity int       `json:"auto_reorder_quantity"`
	VendorID            string    `json:"vendor_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"inventory item not found"`
} // @name ErrorResponse

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new inventory item.
//
//	@Summary		Create inventory item
//	@Description	Creates a new inventory item scoped to the caller's organization
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Inventory.Create(r.Context(), orgID, req.Name, req.SKU, req.Quantity, req.UnitCost)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, itemToResponse(item))
}
