package api

import (
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler transaction endpoints
type TransactionHandler struct {
	svc *service.TransactionService
}

// NewTransactionHandler creates the handler
func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// TransactionRequest create/update payload
type TransactionRequest struct {
	Description  string          `json:"description" example:"Notebook"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"number" example:"1200"`
	Type         string          `json:"type" example:"expense"`
	Category     string          `json:"category" example:"Eletrônicos"`
	Date         models.Date     `json:"date" swaggertype:"string" example:"2024-01-15"`
	IsParceled   bool            `json:"is_parceled" example:"true"`
	TotalParcels int             `json:"total_parcels" example:"3"`
	IsFixed      bool            `json:"is_fixed" example:"false"`
	Paid         bool            `json:"paid" example:"false"`
}

func (r TransactionRequest) input() service.TransactionInput {
	return service.TransactionInput{
		Description:  r.Description,
		Amount:       r.Amount,
		Type:         r.Type,
		Category:     r.Category,
		Date:         r.Date,
		IsParceled:   r.IsParceled,
		TotalParcels: r.TotalParcels,
		IsFixed:      r.IsFixed,
		Paid:         r.Paid,
	}
}

// Create creates a transaction
// @Summary Create a transaction
// @Description Plain, parceled (anchor plus one row per month) or fixed (origin plus 12 monthly rows). Fixed and parceled together is rejected.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "transaction"
// @Success 200 {object} Response{data=IDResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request body"))
		return
	}

	id, err := h.svc.Create(c.Request.Context(), middleware.GetCurrentUserID(c), req.input())
	if err != nil {
		serviceError(c, err, "failed to create transaction")
		return
	}
	msg := "transaction created"
	if req.IsParceled && req.TotalParcels > 1 {
		msg = "parceled transaction created"
	}
	SuccessWithMessage(c, msg, IDResponse{ID: id})
}

// List lists transactions
// @Summary List transactions
// @Description Parcel children and parceled anchors are left out. Month filters only apply together with year.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param month query int false "month 1-12"
// @Param year query int false "year"
// @Param type query string false "income or expense"
// @Success 200 {object} Response{data=[]models.TransactionView}
// @Failure 401 {object} ErrorResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}

	rows, err := h.svc.List(c.Request.Context(), middleware.GetCurrentUserID(c), service.ListFilter{
		Month: month,
		Year:  year,
		Type:  c.Query("type"),
	})
	if err != nil {
		serviceError(c, err, "failed to list transactions")
		return
	}
	Success(c, rows)
}

// Get returns one transaction
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "transaction id"
// @Success 200 {object} Response{data=models.Transaction}
// @Failure 404 {object} ErrorResponse
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tx, err := h.svc.Get(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		serviceError(c, err, "failed to load transaction")
		return
	}
	Success(c, tx)
}

// Update updates a transaction
// @Summary Update a transaction
// @Description Editing a fixed row updates its whole family except dates.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "transaction id"
// @Param request body TransactionRequest true "transaction"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request body"))
		return
	}

	if err := h.svc.Update(c.Request.Context(), middleware.GetCurrentUserID(c), id, req.input()); err != nil {
		serviceError(c, err, "failed to update transaction")
		return
	}
	SuccessWithMessage(c, "transaction updated", nil)
}

// Delete deletes a transaction and its family where applicable
// @Summary Delete a transaction
// @Description Removes fixed families, parcel children of an anchor, and the anchor after its last parcel. Unknown ids succeed.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "transaction id"
// @Success 200 {object} Response
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		serviceError(c, err, "failed to delete transaction")
		return
	}
	SuccessWithMessage(c, "transaction deleted", nil)
}

// Clear wipes the account's financial data
// @Summary Delete all transactions, categories and limbo debts
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /api/transactions/clear [delete]
func (h *TransactionHandler) Clear(c *gin.Context) {
	if err := h.svc.ClearAll(c.Request.Context(), middleware.GetCurrentUserID(c)); err != nil {
		serviceError(c, err, "failed to clear data")
		return
	}
	SuccessWithMessage(c, "all data removed", nil)
}
