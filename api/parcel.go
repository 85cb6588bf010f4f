package api

import (
	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// ParcelHandler parcel views and payment toggling
type ParcelHandler struct {
	txs     *service.TransactionService
	reports *service.ReportService
}

// NewParcelHandler creates the handler
func NewParcelHandler(txs *service.TransactionService, reports *service.ReportService) *ParcelHandler {
	return &ParcelHandler{txs: txs, reports: reports}
}

// SetPaidRequest payment toggle
type SetPaidRequest struct {
	ID   uint  `json:"id" binding:"required" example:"11"`
	Paid *bool `json:"paid" binding:"required" example:"true"`
}

// List lists parcel rows
// @Summary List parcels
// @Tags parcels
// @Produce json
// @Security BearerAuth
// @Param month query int false "month 1-12"
// @Param year query int false "year"
// @Param status query string false "pending, overdue or all"
// @Success 200 {object} Response{data=[]models.TransactionView}
// @Failure 400 {object} ErrorResponse
// @Router /api/parcels [get]
func (h *ParcelHandler) List(c *gin.Context) {
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}

	rows, err := h.reports.Parcels(c.Request.Context(), middleware.GetCurrentUserID(c), service.ParcelFilter{
		Month:  month,
		Year:   year,
		Status: c.Query("status"),
	})
	if err != nil {
		serviceError(c, err, "failed to list parcels")
		return
	}
	Success(c, rows)
}

// Groups payment progress per parceled purchase
// @Summary Parcel progress per purchase
// @Tags parcels
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.ParcelGroup}
// @Router /api/parcels/groups [get]
func (h *ParcelHandler) Groups(c *gin.Context) {
	groups, err := h.reports.ParcelGroups(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		serviceError(c, err, "failed to load parcel groups")
		return
	}
	Success(c, groups)
}

// SetPaid marks a row paid or unpaid
// @Summary Mark a parcel paid or unpaid
// @Tags parcels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetPaidRequest true "payment"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/parcels [put]
func (h *ParcelHandler) SetPaid(c *gin.Context) {
	var req SetPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Paid == nil {
		BadRequest(c, "id and paid (boolean) are required")
		return
	}
	if err := h.txs.SetPaid(c.Request.Context(), middleware.GetCurrentUserID(c), req.ID, *req.Paid); err != nil {
		serviceError(c, err, "failed to update parcel")
		return
	}
	SuccessWithMessage(c, "parcel updated", nil)
}
