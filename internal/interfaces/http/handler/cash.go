package handler

import (
	cashapp "github.com/cropledger/backend/internal/application/cashflow"
	haulageapp "github.com/cropledger/backend/internal/application/haulage"
	"github.com/gin-gonic/gin"
)

// CashHandler serves cash receipts, disbursements and the merged ledger
type CashHandler struct {
	BaseHandler
	cash *cashapp.CashService
}

// NewCashHandler creates a new CashHandler
func NewCashHandler(cash *cashapp.CashService) *CashHandler {
	return &CashHandler{cash: cash}
}

// ListReceipts returns cash receipts, optionally within a date range
// @Summary      List cash receipts
// @Tags         cash
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size, at most 500"
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=[]ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash-receipts [get]
func (h *CashHandler) ListReceipts(c *gin.Context) {
	var q haulageapp.ListFilter
	if !h.BindQuery(c, &q) {
		return
	}
	filter, err := q.ToShared()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	receipts, err := h.cash.ListReceipts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := make([]ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		resp = append(resp, toReceiptResponse(r))
	}
	h.Success(c, resp)
}

// CreateReceipt records cash received
// @Summary      Record a cash receipt
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        request body cashapp.ReceiptRequest true "Cash receipt"
// @Success      201 {object} dto.Response{data=ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash-receipts [post]
func (h *CashHandler) CreateReceipt(c *gin.Context) {
	var req cashapp.ReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}
	receipt, err := h.cash.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toReceiptResponse(*receipt))
}

// UpdateReceipt replaces a cash receipt
// @Summary      Update a cash receipt
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        id path string true "Cash receipt ID"
// @Param        request body cashapp.ReceiptRequest true "Cash receipt"
// @Success      200 {object} dto.Response{data=ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash-receipts/{id} [put]
func (h *CashHandler) UpdateReceipt(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req cashapp.ReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}
	receipt, err := h.cash.UpdateReceipt(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toReceiptResponse(*receipt))
}

// DeleteReceipt removes a cash receipt
// @Summary      Delete a cash receipt
// @Tags         cash
// @Produce      json
// @Param        id path string true "Cash receipt ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash-receipts/{id} [delete]
func (h *CashHandler) DeleteReceipt(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.cash.DeleteReceipt(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListDisbursements returns cash disbursements, optionally within a date range
// @Summary      List cash disbursements
// @Tags         cash
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size, at most 500"
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=[]DisbursementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash-disbursements [get]
func (h *CashHandler) ListDisbursements(c *gin.Context) {
	var q haulageapp.ListFilter
	if !h.BindQuery(c, &q) {
		return
	}
	filter, err := q.ToShared()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	disbursements, err := h.cash.ListDisbursements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := make([]DisbursementResponse, 0, len(disbursements))
	for _, d := range disbursements {
		resp = append(resp, toDisbursementResponse(d))
	}
	h.Success(c, resp)
}

// CreateDisbursement records cash paid out
// @Summary      Record a cash disbursement
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        request body cashapp.DisbursementRequest true "Cash disbursement"
// @Success      201 {object} dto.Response{data=DisbursementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash-disbursements [post]
func (h *CashHandler) CreateDisbursement(c *gin.Context) {
	var req cashapp.DisbursementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	disbursement, err := h.cash.CreateDisbursement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toDisbursementResponse(*disbursement))
}

// UpdateDisbursement replaces a cash disbursement
// @Summary      Update a cash disbursement
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        id path string true "Cash disbursement ID"
// @Param        request body cashapp.DisbursementRequest true "Cash disbursement"
// @Success      200 {object} dto.Response{data=DisbursementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash-disbursements/{id} [put]
func (h *CashHandler) UpdateDisbursement(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req cashapp.DisbursementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	disbursement, err := h.cash.UpdateDisbursement(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDisbursementResponse(*disbursement))
}

// DeleteDisbursement removes a cash disbursement
// @Summary      Delete a cash disbursement
// @Tags         cash
// @Produce      json
// @Param        id path string true "Cash disbursement ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cash-disbursements/{id} [delete]
func (h *CashHandler) DeleteDisbursement(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.cash.DeleteDisbursement(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Ledger merges receipts and disbursements into one statement
// @Summary      Merged cash ledger
// @Tags         ledger
// @Produce      json
// @Param        counterparty query string false "Only entries for this exact name"
// @Success      200 {object} dto.Response{data=LedgerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /ledger [get]
func (h *CashHandler) Ledger(c *gin.Context) {
	var q cashapp.LedgerQuery
	if !h.BindQuery(c, &q) {
		return
	}
	view, err := h.cash.BuildLedger(c.Request.Context(), q.Counterparty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toLedgerResponse(view))
}

// Counterparties lists every name found in either cash table
// @Summary      List ledger counterparties
// @Tags         ledger
// @Produce      json
// @Success      200 {object} dto.Response{data=[]string}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /ledger/counterparties [get]
func (h *CashHandler) Counterparties(c *gin.Context) {
	names, err := h.cash.Counterparties(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	h.Success(c, names)
}
