package handler

import (
	haulageapp "github.com/cropledger/backend/internal/application/haulage"
	"github.com/gin-gonic/gin"
)

// PartnerHandler serves trucks, farms, factories and contractors
type PartnerHandler struct {
	BaseHandler
	partners *haulageapp.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partners *haulageapp.PartnerService) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

// ListTrucks returns every truck
// @Summary      List trucks
// @Tags         partners
// @Produce      json
// @Success      200 {object} dto.Response{data=[]TruckResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trucks [get]
func (h *PartnerHandler) ListTrucks(c *gin.Context) {
	trucks, err := h.partners.ListTrucks(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := make([]TruckResponse, 0, len(trucks))
	for _, t := range trucks {
		resp = append(resp, toTruckResponse(t))
	}
	h.Success(c, resp)
}

// EnsureTruck returns the truck with the given number, creating it if needed
// @Summary      Find or create a truck
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body haulageapp.PartyRequest true "Truck number"
// @Success      200 {object} dto.Response{data=TruckResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trucks [post]
func (h *PartnerHandler) EnsureTruck(c *gin.Context) {
	var req haulageapp.PartyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	truck, err := h.partners.EnsureTruck(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTruckResponse(*truck))
}

// ListFarms returns every farm
// @Summary      List farms
// @Tags         partners
// @Produce      json
// @Success      200 {object} dto.Response{data=[]PartyResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /farms [get]
func (h *PartnerHandler) ListFarms(c *gin.Context) {
	farms, err := h.partners.ListFarms(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := make([]PartyResponse, 0, len(farms))
	for _, f := range farms {
		resp = append(resp, toFarmResponse(f))
	}
	h.Success(c, resp)
}

// EnsureFarm returns the farm with the given name, creating it if needed
// @Summary      Find or create a farm
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body haulageapp.PartyRequest true "Farm name"
// @Success      200 {object} dto.Response{data=PartyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /farms [post]
func (h *PartnerHandler) EnsureFarm(c *gin.Context) {
	var req haulageapp.PartyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	farm, err := h.partners.EnsureFarm(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toFarmResponse(*farm))
}

// ListFactories returns every factory
// @Summary      List factories
// @Tags         partners
// @Produce      json
// @Success      200 {object} dto.Response{data=[]PartyResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /factories [get]
func (h *PartnerHandler) ListFactories(c *gin.Context) {
	factories, err := h.partners.ListFactories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := make([]PartyResponse, 0, len(factories))
	for _, f := range factories {
		resp = append(resp, toFactoryResponse(f))
	}
	h.Success(c, resp)
}

// EnsureFactory returns the factory with the given name, creating it if needed
// @Summary      Find or create a factory
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body haulageapp.PartyRequest true "Factory name"
// @Success      200 {object} dto.Response{data=PartyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /factories [post]
func (h *PartnerHandler) EnsureFactory(c *gin.Context) {
	var req haulageapp.PartyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	factory, err := h.partners.EnsureFactory(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toFactoryResponse(*factory))
}

// ListContractors returns every transport contractor
// @Summary      List transport contractors
// @Tags         contractors
// @Produce      json
// @Success      200 {object} dto.Response{data=[]ContractorResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /contractors [get]
func (h *PartnerHandler) ListContractors(c *gin.Context) {
	contractors, err := h.partners.ListContractors(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := make([]ContractorResponse, 0, len(contractors))
	for _, ct := range contractors {
		resp = append(resp, toContractorResponse(ct))
	}
	h.Success(c, resp)
}

// CreateContractor adds a transport contractor
// @Summary      Create a transport contractor
// @Tags         contractors
// @Accept       json
// @Produce      json
// @Param        request body haulageapp.ContractorRequest true "Contractor"
// @Success      201 {object} dto.Response{data=ContractorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /contractors [post]
func (h *PartnerHandler) CreateContractor(c *gin.Context) {
	var req haulageapp.ContractorRequest
	if !h.BindJSON(c, &req) {
		return
	}
	contractor, err := h.partners.CreateContractor(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toContractorResponse(*contractor))
}

// UpdateContractor replaces a contractor's fields
// @Summary      Update a transport contractor
// @Tags         contractors
// @Accept       json
// @Produce      json
// @Param        id path string true "Contractor ID"
// @Param        request body haulageapp.ContractorRequest true "Contractor"
// @Success      200 {object} dto.Response{data=ContractorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /contractors/{id} [put]
func (h *PartnerHandler) UpdateContractor(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req haulageapp.ContractorRequest
	if !h.BindJSON(c, &req) {
		return
	}
	contractor, err := h.partners.UpdateContractor(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toContractorResponse(*contractor))
}

// DeleteContractor removes a contractor
// @Summary      Delete a transport contractor
// @Tags         contractors
// @Produce      json
// @Param        id path string true "Contractor ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /contractors/{id} [delete]
func (h *PartnerHandler) DeleteContractor(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.partners.DeleteContractor(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
