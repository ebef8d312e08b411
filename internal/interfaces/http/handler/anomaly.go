package handler

import (
	anomalyapp "github.com/cropledger/backend/internal/application/anomaly"
	haulageapp "github.com/cropledger/backend/internal/application/haulage"
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnomalyHandler serves the anomaly scan, auto-fix and manual resolution
type AnomalyHandler struct {
	BaseHandler
	anomalies *anomalyapp.AnomalyService
	records   *haulageapp.SupplyService
}

// NewAnomalyHandler creates a new AnomalyHandler. records renders resolved
// records with their names and settlement.
func NewAnomalyHandler(anomalies *anomalyapp.AnomalyService, records *haulageapp.SupplyService) *AnomalyHandler {
	return &AnomalyHandler{anomalies: anomalies, records: records}
}

// Scan flags every supply record without changing anything
// @Summary      Scan supply records for anomalies
// @Tags         anomalies
// @Produce      json
// @Success      200 {object} dto.Response{data=ScanResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /anomalies [get]
func (h *AnomalyHandler) Scan(c *gin.Context) {
	res, err := h.anomalies.Scan(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toScanResponse(res.Scanned, res.Flags, res.Summary))
}

// AutoFix copies farm weights into zero factory weights. A failure part-way
// leaves earlier fixes applied and is reported as an error.
// @Summary      Auto-fix zero factory weights
// @Tags         anomalies
// @Produce      json
// @Param        Idempotency-Key header string false "Repeated keys are rejected with 409"
// @Success      200 {object} dto.Response{data=AutoFixResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /anomalies/auto-fix [post]
func (h *AnomalyHandler) AutoFix(c *gin.Context) {
	fixed, err := h.anomalies.ApplyAutoFix(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, AutoFixResponse{Fixed: fixed})
}

// ResolveFactoryWeight sets a corrected factory weight
// @Summary      Resolve a factory weight anomaly
// @Tags         anomalies
// @Accept       json
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Param        request body anomalyapp.FactoryWeightRequest true "Factory weight"
// @Success      200 {object} dto.Response{data=SupplyRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /anomalies/{id}/factory-weight [put]
func (h *AnomalyHandler) ResolveFactoryWeight(c *gin.Context) {
	var req anomalyapp.FactoryWeightRequest
	h.resolve(c, &req, func(id uuid.UUID) (*haulage.SupplyRecord, error) {
		return h.anomalies.ResolveFactoryWeight(c.Request.Context(), id, req)
	})
}

// ResolveTruck assigns a truck by ID or number
// @Summary      Resolve a missing truck
// @Tags         anomalies
// @Accept       json
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Param        request body anomalyapp.PartyChoice true "Truck ID or number"
// @Success      200 {object} dto.Response{data=SupplyRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /anomalies/{id}/truck [put]
func (h *AnomalyHandler) ResolveTruck(c *gin.Context) {
	var req anomalyapp.PartyChoice
	h.resolve(c, &req, func(id uuid.UUID) (*haulage.SupplyRecord, error) {
		return h.anomalies.ResolveTruck(c.Request.Context(), id, req)
	})
}

// ResolveFarm assigns a farm by ID or name
// @Summary      Resolve a missing farm
// @Tags         anomalies
// @Accept       json
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Param        request body anomalyapp.PartyChoice true "Farm ID or name"
// @Success      200 {object} dto.Response{data=SupplyRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /anomalies/{id}/farm [put]
func (h *AnomalyHandler) ResolveFarm(c *gin.Context) {
	var req anomalyapp.PartyChoice
	h.resolve(c, &req, func(id uuid.UUID) (*haulage.SupplyRecord, error) {
		return h.anomalies.ResolveFarm(c.Request.Context(), id, req)
	})
}

// ResolveFactory assigns a factory by ID or name
// @Summary      Resolve a missing factory
// @Tags         anomalies
// @Accept       json
// @Produce      json
// @Param        id path string true "Supply record ID"
// @Param        request body anomalyapp.PartyChoice true "Factory ID or name"
// @Success      200 {object} dto.Response{data=SupplyRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /anomalies/{id}/factory [put]
func (h *AnomalyHandler) ResolveFactory(c *gin.Context) {
	var req anomalyapp.PartyChoice
	h.resolve(c, &req, func(id uuid.UUID) (*haulage.SupplyRecord, error) {
		return h.anomalies.ResolveFactory(c.Request.Context(), id, req)
	})
}

func (h *AnomalyHandler) resolve(c *gin.Context, req any, fn func(uuid.UUID) (*haulage.SupplyRecord, error)) {
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
