package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/contaerp/backend/internal/application/posting"
	"github.com/contaerp/backend/internal/domain/receivable"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// ReceivableHandler handles receivable lifecycle endpoints
type ReceivableHandler struct {
	BaseHandler
	receivableService *posting.ReceivableService
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(receivableService *posting.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{receivableService: receivableService}
}

// RegisterRoutes registers all receivable routes
func (h *ReceivableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receivables := rg.Group("/receivables")
	{
		receivables.GET("", h.ListReceivables)
		receivables.GET("/:id", h.GetReceivable)
		receivables.POST("/:id/payments", h.ApplyPayment)
		receivables.POST("/mark-overdue", h.MarkOverdue)
	}
}

// ApplyPaymentRequest represents a payment against a receivable
type ApplyPaymentRequest struct {
	Amount     string     `json:"amount" binding:"required,money"`
	Method     string     `json:"method" binding:"max=50"`
	Reference  string     `json:"reference" binding:"max=100"`
	ReceivedAt *time.Time `json:"received_at"`
}

// ReceivableResponse represents a receivable on the wire
type ReceivableResponse struct {
	ID          uuid.UUID         `json:"id"`
	SaleID      uuid.UUID         `json:"sale_id"`
	CustomerRef string            `json:"customer_ref"`
	Total       valueobject.Money `json:"total"`
	Paid        valueobject.Money `json:"paid"`
	Outstanding valueobject.Money `json:"outstanding"`
	Status      receivable.Status `json:"status"`
	IssuedAt    time.Time         `json:"issued_at"`
	DueAt       time.Time         `json:"due_at"`
	Payments    []PaymentResponse `json:"payments,omitempty"`
}

// PaymentResponse represents a recorded payment on the wire
type PaymentResponse struct {
	ID         uuid.UUID         `json:"id"`
	Amount     valueobject.Money `json:"amount"`
	Method     string            `json:"method,omitempty"`
	Reference  string            `json:"reference,omitempty"`
	ReceivedAt time.Time         `json:"received_at"`
}

func toReceivableResponse(rcv *receivable.Receivable) ReceivableResponse {
	resp := ReceivableResponse{
		ID:          rcv.ID,
		SaleID:      rcv.SaleID,
		CustomerRef: rcv.CustomerRef,
		Total:       rcv.Total,
		Paid:        rcv.Paid,
		Outstanding: rcv.Outstanding,
		Status:      rcv.Status,
		IssuedAt:    rcv.IssuedAt,
		DueAt:       rcv.DueAt,
	}
	for _, p := range rcv.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:         p.ID,
			Amount:     p.Amount,
			Method:     p.Method,
			Reference:  p.Reference,
			ReceivedAt: p.ReceivedAt,
		})
	}
	return resp
}

// ApplyPayment handles POST /api/v1/receivables/:id/payments
func (h *ReceivableHandler) ApplyPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID")
		return
	}

	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing "+ActorIDHeader+" header")
		return
	}

	amount, err := valueobject.NewMoneyFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid payment amount")
		return
	}

	serviceReq := posting.ApplyPaymentRequest{
		ReceivableID: id,
		Amount:       amount,
		Method:       req.Method,
		Reference:    req.Reference,
		ActorID:      actorID,
	}
	if req.ReceivedAt != nil {
		serviceReq.ReceivedAt = *req.ReceivedAt
	}

	result, err := h.receivableService.ApplyPayment(c.Request.Context(), serviceReq)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{
		"payment_id":  result.Payment.ID,
		"outstanding": result.Outstanding,
		"status":      result.Status,
	})
}

// GetReceivable handles GET /api/v1/receivables/:id
func (h *ReceivableHandler) GetReceivable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID")
		return
	}

	rcv, err := h.receivableService.GetReceivable(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, toReceivableResponse(rcv))
}

// ListReceivables handles GET /api/v1/receivables
func (h *ReceivableHandler) ListReceivables(c *gin.Context) {
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

	page, err := h.receivableService.ListReceivables(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	items := make([]ReceivableResponse, len(page.Items))
	for i, rcv := range page.Items {
		items[i] = toReceivableResponse(rcv)
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// MarkOverdue handles POST /api/v1/receivables/mark-overdue
func (h *ReceivableHandler) MarkOverdue(c *gin.Context) {
	marked, err := h.receivableService.MarkOverdueBatch(c.Request.Context(), time.Now())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"marked": marked})
}
