package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/restockd/pkg/auth"
	"github.com/ghuser/restockd/pkg/errhttp"
	"github.com/ghuser/restockd/pkg/httpx"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
	"github.com/ghuser/restockd/services/reorder/domain/models"
	"github.com/ghuser/restockd/services/reorder/domain/repositories"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// OrderLineResponse is a single line item on a purchase order.
type OrderLineResponse struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unit_price"`
	Subtotal  string    `json:"subtotal"`
} // @name OrderLineResponse

// OrderResponse is returned for purchase order reads.
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	OrgID            uuid.UUID           `json:"org_id"`
	Number           string              `json:"number"`
	Type             string              `json:"type"`
	CustomerSupplier string              `json:"customer_supplier"`
	Date             string              `json:"date"`
	DueDate          string              `json:"due_date"`
	Status           string              `json:"status"`
	Items            []OrderLineResponse `json:"items"`
	TotalAmount      string              `json:"total_amount"`
	Notes            string              `json:"notes,omitempty"`
	OrderType        string              `json:"order_type"`
	ShippingMethod   string              `json:"shipping_method"`
	Terms            string              `json:"terms"`
	CreatedAt        time.Time           `json:"created_at"`
} // @name OrderResponse

// OrderListResponse is the paginated envelope for GET /orders.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
} // @name OrderListResponse

// GetOrdersHandler handles GET /orders requests.
type GetOrdersHandler struct {
	svc *appsvcs.Services
}

// NewGetOrdersHandler returns a GetOrdersHandler backed by the given services.
func NewGetOrdersHandler(svc *appsvcs.Services) *GetOrdersHandler {
	return &GetOrdersHandler{svc: svc}
}

// Execute lists purchase orders for the caller's organization, newest first.
//
//	@Summary		List purchase orders
//	@Description	Lists purchase orders scoped to the caller's organization, newest first
//	@Tags			orders
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (max 100)"	default(50)
//	@Param			offset	query		int	false	"Records to skip"		default(0)
//	@Success		200		{object}	OrderListResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/orders [get]
func (h *GetOrdersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	opts := parseQueryOpts(r)

	orders, total, err := h.svc.Order.List(r.Context(), orgID, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  total,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, orderToResponse(o))
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func orderToResponse(o *models.PurchaseOrder) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Items))
	for _, l := range o.Items {
		lines = append(lines, OrderLineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.String(),
			Subtotal:  l.Subtotal().String(),
		})
	}
	return OrderResponse{
		ID:               o.ID,
		OrgID:            o.OrgID,
		Number:           o.Number,
		Type:             o.Type,
		CustomerSupplier: o.CustomerSupplier,
		Date:             o.Date.Format("2006-01-02"),
		DueDate:          o.DueDate.Format("2006-01-02"),
		Status:           o.Status,
		Items:            lines,
		TotalAmount:      o.TotalAmount.String(),
		Notes:            o.Notes,
		OrderType:        o.OrderType,
		ShippingMethod:   o.ShippingMethod,
		Terms:            o.Terms,
		CreatedAt:        o.CreatedAt,
	}
}

// parseQueryOpts reads limit/offset query parameters with sane bounds.
func parseQueryOpts(r *http.Request) repositories.QueryOpts {
	opts := repositories.QueryOpts{Limit: defaultPageSize}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Limit = min(n, maxPageSize)
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			opts.Offset = n
		}
	}
	return opts
}
