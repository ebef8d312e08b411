package handler

import (
	haulageapp "github.com/cropledger/backend/internal/application/haulage"
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupplyRecordHandler serves supply records and their settlements
type SupplyRecordHandler struct {
	BaseHandler
	records *haulageapp.SupplyService
}

// NewSupplyRecordHandler creates a new SupplyRecordHandler
func NewSupplyRecordHandler(records *haulageapp.SupplyService) *SupplyRecordHandler {
	return &SupplyRecordHandler{records: records}
}

// List returns one page of supply records, newest first
// @Summary      List supply records
// @Tags         supply-records
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size, at most 500"
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=[]SupplyRecordResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supply-records [get]
func (h *SupplyRecordHandler) List(c *gin.Context) {
	var q haulageapp.ListFilter
	if !h.BindQuery(c, &q) {
		return
	}
	filter, err := q.ToShared()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := h.records.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := make([]SupplyRecordResponse, 0, len(page.Items))
	for _, v := range page.Items {
		resp = append(resp, toSupplyRecordResponse(v))
	}
	h.SuccessWithMeta(c, resp, page.Total, page.Page, page.PageSize)
}

// Create records a truckload
// @Summary      Record a truckload
// @Tags         supply-records
// @Accept       json
// @Produce      json
// @Param        request body haulageapp.SupplyRecordRequest true "Supply record"
// @Success      201 {object} dto.Response{data=SupplyRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supply-records [post]
func (h *SupplyRecordHandler) Create(c *gin.Context) {
	var req haulageapp.SupplyRecordRequest
	if !h.BindJSON(c, &req) {
		return
	}
	view, err := h.records.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toSupplyRecordResponse(view))
}

// Get returns one supply record
// @Summary      Get a supply record
// @Tags         supply-records
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Success      200 {object} dto.Response{data=SupplyRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supply-records/{id} [get]
func (h *SupplyRecordHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	view, err := h.records.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSupplyRecordResponse(view))
}

// Update replaces a supply record's editable fields
// @Summary      Update a supply record
// @Tags         supply-records
// @Accept       json
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Param        request body haulageapp.SupplyRecordRequest true "Supply record"
// @Success      200 {object} dto.Response{data=SupplyRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supply-records/{id} [put]
func (h *SupplyRecordHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req haulageapp.SupplyRecordRequest
	if !h.BindJSON(c, &req) {
		return
	}
	view, err := h.records.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSupplyRecordResponse(view))
}

// Delete removes a supply record and its settlement
// @Summary      Delete a supply record
// @Tags         supply-records
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supply-records/{id} [delete]
func (h *SupplyRecordHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.records.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Settlement computes the record's settlement
// @Summary      Compute a settlement
// @Tags         supply-records
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Success      200 {object} dto.Response{data=SettlementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supply-records/{id}/settlement [get]
func (h *SupplyRecordHandler) Settlement(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	res, err := h.records.ComputeSettlement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSettlementResponse(res))
}

// RecordReceived stores the cash received against the record's settlement
// @Summary      Record cash received for a load
// @Tags         supply-records
// @Accept       json
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Param        request body haulageapp.ReceivedAmountRequest true "Received amount"
// @Success      200 {object} dto.Response{data=SupplyRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supply-records/{id}/received [put]
func (h *SupplyRecordHandler) RecordReceived(c *gin.Context) {
	var req haulageapp.ReceivedAmountRequest
	h.mutate(c, &req, func(id uuid.UUID) (*haulage.SupplyRecord, error) {
		return h.records.RecordReceived(c.Request.Context(), id, req.Amount)
	})
}

// SetFactoryWeight corrects the factory gross weight
// @Summary      Correct the factory weight
// @Tags         supply-records
// @Accept       json
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Param        request body haulageapp.FactoryWeightRequest true "Factory weight"
// @Success      200 {object} dto.Response{data=SupplyRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /supply-records/{id}/factory-weight [put]
func (h *SupplyRecordHandler) SetFactoryWeight(c *gin.Context) {
	var req haulageapp.FactoryWeightRequest
	h.mutate(c, &req, func(id uuid.UUID) (*haulage.SupplyRecord, error) {
		return h.records.SetFactoryWeight(c.Request.Context(), id, req.Weight)
	})
}

// mutate binds req, applies fn to the record named by :id and answers with
// the refreshed record
func (h *SupplyRecordHandler) mutate(c *gin.Context, req any, fn func(uuid.UUID) (*haulage.SupplyRecord, error)) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if !h.BindJSON(c, req) {
		return
	}
	if _, err := fn(id); err != nil {
		h.HandleError(c, err)
		return
	}
	view, err := h.records.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSupplyRecordResponse(view))
}
