package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/rfp-api/internal/application/service"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/presentation/http/dto/request"
	"github.com/sangkips/rfp-api/internal/presentation/http/dto/response"
	"github.com/sangkips/rfp-api/internal/presentation/http/middleware"
)

// PricingDecisionHandler handles pricing decision HTTP requests
type PricingDecisionHandler struct {
	decisionService *service.PricingDecisionService
}

// NewPricingDecisionHandler creates a new pricing decision handler
func NewPricingDecisionHandler(decisionService *service.PricingDecisionService) *PricingDecisionHandler {
	return &PricingDecisionHandler{decisionService: decisionService}
}

// Create handles saving a pricing decision directly
// @Summary Create pricing decision
// @Tags pricing-decisions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreatePricingDecisionRequest true "Pricing decision"
// @Success 201 {object} response.APIResponse
// @Router /pricing-decisions [post]
func (h *PricingDecisionHandler) Create(c *gin.Context) {
	var req request.CreatePricingDecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	decision, err := h.decisionService.Create(c.Request.Context(), middleware.ActorFrom(c), &service.CreatePricingDecisionInput{
		LeadID:               req.LeadID,
		SalespersonID:        req.SalespersonID,
		Products:             req.Products,
		DeliveryTimeline:     req.DeliveryTimeline,
		SpecialRequirements:  req.SpecialRequirements,
		CalculatorTotalPrice: req.CalculatorTotalPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Pricing decision saved", decision)
}

// GetLatestByLead handles fetching the newest decision for a lead
// @Summary Latest pricing decision for a lead
// @Tags pricing-decisions
// @Security BearerAuth
// @Produce json
// @Param lead_id path int true "Lead ID"
// @Success 200 {object} response.APIResponse
// @Router /pricing-decisions/lead/{lead_id} [get]
func (h *PricingDecisionHandler) GetLatestByLead(c *gin.Context) {
	leadID, err := strconv.ParseUint(c.Param("lead_id"), 10, 32)
	if err != nil || leadID == 0 {
		response.BadRequest(c, "Invalid lead ID")
		return
	}

	decision, err := h.decisionService.GetLatestByLead(c.Request.Context(), middleware.ActorFrom(c), uint(leadID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing decision retrieved successfully", decision)
}

// Get handles fetching a decision by its RFP-YYYYMM-NNNN id
// @Summary Get pricing decision
// @Tags pricing-decisions
// @Security BearerAuth
// @Produce json
// @Param rfp_id path string true "Pricing decision id"
// @Success 200 {object} response.APIResponse
// @Router /pricing-decisions/{rfp_id} [get]
func (h *PricingDecisionHandler) Get(c *gin.Context) {
	id := entity.DecisionSnapshotID(strings.TrimSpace(c.Param("rfp_id")))

	decision, err := h.decisionService.GetByDecisionID(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing decision retrieved successfully", decision)
}

// Update handles a partial update of a pricing decision
// @Summary Update pricing decision
// @Tags pricing-decisions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param rfp_id path string true "Pricing decision id"
// @Param request body request.UpdatePricingDecisionRequest true "Changed fields"
// @Success 200 {object} response.APIResponse
// @Router /pricing-decisions/{rfp_id} [put]
func (h *PricingDecisionHandler) Update(c *gin.Context) {
	id := entity.DecisionSnapshotID(strings.TrimSpace(c.Param("rfp_id")))

	var req request.UpdatePricingDecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	decision, err := h.decisionService.Update(c.Request.Context(), middleware.ActorFrom(c), id, &service.UpdatePricingDecisionInput{
		Products:            req.Products,
		DeliveryTimeline:    req.DeliveryTimeline,
		SpecialRequirements: req.SpecialRequirements,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing decision updated", decision)
}
