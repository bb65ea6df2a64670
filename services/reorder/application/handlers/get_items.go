package handlers

import (
	"net/http"

	"github.com/ghuser/restockd/pkg/auth"
	"github.com/ghuser/restockd/pkg/errhttp"
	"github.com/ghuser/restockd/pkg/httpx"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
)

// ItemListResponse is the paginated envelope for GET /items.
type ItemListResponse struct {
	Items  []ItemResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
} // @name ItemListResponse

// GetItemsHandler handles GET /items requests.
type GetItemsHandler struct {
	svc *appsvcs.Services
}

// NewGetItemsHandler returns a GetItemsHandler backed by the given services.
func NewGetItemsHandler(svc *appsvcs.Services) *GetItemsHandler {
	return &GetItemsHandler{svc: svc}
}

// Execute lists inventory items for the caller's organization.
//
//	@Summary		List inventory items
//	@Description	Lists inventory items scoped to the caller's organization
//	@Tags			items
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (max 100)"	default(50)
//	@Param			offset	query		int	false	"Records to skip"		default(0)
//	@Success		200		{object}	ItemListResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/items [get]
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	opts := parseQueryOpts(r)

	items, total, err := h.svc.Inventory.List(r.Context(), orgID, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ItemListResponse{
		Items:  make([]ItemResponse, 0, len(items)),
		Total:  total,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, itemToResponse(it))
	}

	httpx.JSON(w, http.StatusOK, resp)
}
