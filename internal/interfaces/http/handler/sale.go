package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/contaerp/backend/internal/application/posting"
	"github.com/contaerp/backend/internal/domain/accounting"
	"github.com/contaerp/backend/internal/domain/sales"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// SaleHandler handles sale recording and annulment endpoints
type SaleHandler struct {
	BaseHandler
	postingService  *posting.SalePostingService
	reversalService *posting.SaleReversalService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(postingService *posting.SalePostingService, reversalService *posting.SaleReversalService) *SaleHandler {
	return &SaleHandler{
		postingService:  postingService,
		reversalService: reversalService,
	}
}

// RegisterRoutes registers all sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	saleRoutes := rg.Group("/sales")
	{
		saleRoutes.POST("", h.CreateSale)
		saleRoutes.GET("", h.ListSales)
		saleRoutes.GET("/:id", h.GetSale)
		saleRoutes.GET("/:id/movements", h.GetSaleMovements)
		saleRoutes.POST("/:id/void", h.VoidSale)
	}
}

// CreateSaleRequest represents a request to record a sale.
// Monetary amounts are decimal strings to avoid float precision loss.
type CreateSaleRequest struct {
	CustomerRef    string                `json:"customer_ref" binding:"required,min=1,max=100"`
	Gross          string                `json:"gross" binding:"required,money"`
	Discount       string                `json:"discount" binding:"omitempty,money"`
	Tax            string                `json:"tax" binding:"omitempty,money"`
	PaymentMode    string                `json:"payment_mode" binding:"required,oneof=CASH CREDIT"`
	FiscalReceipt  bool                  `json:"fiscal_receipt"`
	Description    string                `json:"description" binding:"max=500"`
	OccurredAt     *time.Time            `json:"occurred_at"`
	Items          []CreateSaleItemInput `json:"items" binding:"dive"`
	IdempotencyKey string                `json:"idempotency_key" binding:"max=100"`
}

// CreateSaleItemInput represents one product line in the create request
type CreateSaleItemInput struct {
	ProductRef  string `json:"product_ref" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	UnitPrice   string `json:"unit_price" binding:"required,money"`
}

// VoidSaleRequest represents a request to annul a sale
type VoidSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SaleResponse represents a sale on the wire
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	CustomerRef   string             `json:"customer_ref"`
	Gross         valueobject.Money  `json:"gross"`
	Discount      valueobject.Money  `json:"discount"`
	Tax           valueobject.Money  `json:"tax"`
	Net           valueobject.Money  `json:"net"`
	Total         valueobject.Money  `json:"total"`
	PaymentMode   sales.PaymentMode  `json:"payment_mode"`
	FiscalReceipt bool               `json:"fiscal_receipt"`
	Description   string             `json:"description,omitempty"`
	Status        sales.SaleStatus   `json:"status"`
	OccurredAt    time.Time          `json:"occurred_at"`
	ReceivableID  *uuid.UUID         `json:"receivable_id,omitempty"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// SaleItemResponse represents a sale line item on the wire
type SaleItemResponse struct {
	ProductRef  string            `json:"product_ref"`
	Description string            `json:"description,omitempty"`
	Quantity    int               `json:"quantity"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	Total       valueobject.Money `json:"total"`
}

// MovementResponse represents a ledger movement on the wire
type MovementResponse struct {
	ID          uuid.UUID         `json:"id"`
	AccountCode string            `json:"account_code"`
	Debit       valueobject.Money `json:"debit"`
	Credit      valueobject.Money `json:"credit"`
	Description string            `json:"description,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

func toSaleResponse(sale *sales.Sale, receivableID *uuid.UUID) SaleResponse {
	resp := SaleResponse{
		ID:            sale.ID,
		CustomerRef:   sale.CustomerRef,
		Gross:         sale.Gross,
		Discount:      sale.Discount,
		Tax:           sale.Tax,
		Net:           sale.Net,
		Total:         sale.Total,
		PaymentMode:   sale.PaymentMode,
		FiscalReceipt: sale.FiscalReceipt,
		Description:   sale.Description,
		Status:        sale.Status,
		OccurredAt:    sale.OccurredAt,
		ReceivableID:  receivableID,
	}
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ProductRef:  item.ProductRef,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return resp
}

func toMovementResponses(movements []*accounting.LedgerMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i, mv := range movements {
		out[i] = MovementResponse{
			ID:          mv.ID,
			AccountCode: mv.AccountCode,
			Debit:       mv.Debit,
			Credit:      mv.Credit,
			Description: mv.Description,
			OccurredAt:  mv.OccurredAt,
		}
	}
	return out
}

// parseMoney parses an optional decimal string, treating empty as zero
func parseMoney(s string) (valueobject.Money, error) {
	if s == "" {
		return valueobject.Zero(), nil
	}
	return valueobject.NewMoneyFromString(s)
}

// CreateSale handles POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing "+ActorIDHeader+" header")
		return
	}

	gross, err := parseMoney(req.Gross)
	if err != nil {
		h.BadRequest(c, "Invalid gross amount")
		return
	}
	discount, err := parseMoney(req.Discount)
	if err != nil {
		h.BadRequest(c, "Invalid discount amount")
		return
	}
	tax, err := parseMoney(req.Tax)
	if err != nil {
		h.BadRequest(c, "Invalid tax amount")
		return
	}

	serviceReq := posting.CreateSaleRequest{
		CustomerRef:    req.CustomerRef,
		ActorID:        actorID,
		Gross:          gross,
		Discount:       discount,
		Tax:            tax,
		PaymentMode:    sales.PaymentMode(req.PaymentMode),
		FiscalReceipt:  req.FiscalReceipt,
		Description:    req.Description,
		Items:          make([]posting.LineItemInput, 0, len(req.Items)),
		IdempotencyKey: req.IdempotencyKey,
	}
	if req.OccurredAt != nil {
		serviceReq.OccurredAt = *req.OccurredAt
	}

	for _, item := range req.Items {
		unitPrice, err := parseMoney(item.UnitPrice)
		if err != nil {
			h.BadRequest(c, "Invalid unit price for item "+item.ProductRef)
			return
		}
		serviceReq.Items = append(serviceReq.Items, posting.LineItemInput{
			ProductRef:  item.ProductRef,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
		})
	}

	result, err := h.postingService.CreateSale(c.Request.Context(), serviceReq)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	var receivableID *uuid.UUID
	if result.Receivable != nil {
		receivableID = &result.Receivable.ID
	}
	h.Created(c, toSaleResponse(result.Sale, receivableID))
}

// GetSale handles GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.postingService.GetSale(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, toSaleResponse(sale, nil))
}

// ListSales handles GET /api/v1/sales
func (h *SaleHandler) ListSales(c *gin.Context) {
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if customerRef := c.Query("customer_ref"); customerRef != "" {
		filter.Filters["customer_ref"] = customerRef
	}

	page, err := h.postingService.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	items := make([]SaleResponse, len(page.Items))
	for i, sale := range page.Items {
		items[i] = toSaleResponse(sale, nil)
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// GetSaleMovements handles GET /api/v1/sales/:id/movements
func (h *SaleHandler) GetSaleMovements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	movements, err := h.postingService.GetSaleMovements(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, toMovementResponses(movements))
}

// VoidSale handles POST /api/v1/sales/:id/void
func (h *SaleHandler) VoidSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req VoidSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing "+ActorIDHeader+" header")
		return
	}

	result, err := h.reversalService.VoidSale(c.Request.Context(), posting.VoidSaleRequest{
		SaleID:  id,
		ActorID: actorID,
		Reason:  req.Reason,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{
		"sale_id":      result.SaleID,
		"movement_ids": result.MovementIDs,
	})
}
