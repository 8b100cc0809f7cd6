package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/application/service"
	"github.com/sangkips/rfp-api/internal/domain/entity"
	"github.com/sangkips/rfp-api/internal/domain/enum"
	"github.com/sangkips/rfp-api/internal/presentation/http/dto/request"
	"github.com/sangkips/rfp-api/internal/presentation/http/dto/response"
	"github.com/sangkips/rfp-api/internal/presentation/http/middleware"
	"github.com/sangkips/rfp-api/pkg/apperror"
	"github.com/sangkips/rfp-api/pkg/pagination"
)

// RfpHandler handles RFP workflow HTTP requests
type RfpHandler struct {
	rfpService   *service.RfpService
	auditService *service.AuditService
}

// NewRfpHandler creates a new RFP handler
func NewRfpHandler(rfpService *service.RfpService, auditService *service.AuditService) *RfpHandler {
	return &RfpHandler{rfpService: rfpService, auditService: auditService}
}

// Create handles raising an RFP
// @Summary Create RFP
// @Tags rfps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateRfpRequest true "RFP data"
// @Success 201 {object} response.APIResponse
// @Router /rfps [post]
func (h *RfpHandler) Create(c *gin.Context) {
	var req request.CreateRfpRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.CreateRfpInput{
		LeadID:              req.LeadID,
		DeliveryTimeline:    req.DeliveryTimeline,
		SpecialRequirements: req.SpecialRequirements,
		SalespersonID:       req.SalespersonID,
	}
	switch {
	case req.HasProducts() && req.HasLegacyProduct():
		response.Error(c, apperror.NewFieldError("products", "products cannot be combined with product_spec or availability_status"))
		return
	case req.HasProducts():
		lines := make([]service.ProductLineInput, len(req.Products))
		for i, p := range req.Products {
			lines[i] = service.ProductLineInput{
				ProductSpec:        p.ProductSpec,
				Quantity:           p.Quantity,
				Length:             p.Length,
				LengthUnit:         p.LengthUnit,
				TargetPrice:        p.TargetPrice,
				AvailabilityStatus: p.AvailabilityStatus,
			}
		}
		input.Intake = service.IntakeProducts{Lines: lines}
	case req.HasLegacyProduct():
		input.Intake = service.IntakeLegacy{
			ProductSpec:        req.ProductSpec,
			AvailabilityStatus: req.AvailabilityStatus,
		}
	}
	if req.PricingDecisionRfpID != nil && strings.TrimSpace(*req.PricingDecisionRfpID) != "" {
		id := entity.DecisionSnapshotID(strings.TrimSpace(*req.PricingDecisionRfpID))
		input.PricingDecisionRfpID = &id
	}

	rfp, err := h.rfpService.Create(c.Request.Context(), middleware.ActorFrom(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "RFP created successfully", rfp)
}

// List handles listing RFPs
// @Summary List RFPs
// @Tags rfps
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query string false "Status filter"
// @Param search query string false "Search rfp id, company or product spec"
// @Success 200 {object} response.APIResponse
// @Router /rfps [get]
func (h *RfpHandler) List(c *gin.Context) {
	var filter request.RfpFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListRfpsInput{
		Pagination:     pagination.ParseParams(c.Query("page"), c.Query("per_page")),
		Search:         strings.TrimSpace(filter.Search),
		CompanyName:    strings.TrimSpace(filter.CompanyName),
		DepartmentType: strings.TrimSpace(filter.DepartmentType),
	}
	if filter.Status != "" {
		status := enum.RfpStatus(filter.Status)
		input.Status = &status
	}
	if filter.SalespersonID != "" {
		id, err := uuid.Parse(filter.SalespersonID)
		if err != nil {
			response.BadRequest(c, "Invalid salesperson ID")
			return
		}
		input.SalespersonID = &id
	}

	result, err := h.rfpService.List(c.Request.Context(), middleware.ActorFrom(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "RFPs retrieved successfully", result)
}

// Get handles getting a single RFP with its price history and audit log
// @Summary Get RFP
// @Tags rfps
// @Security BearerAuth
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id} [get]
func (h *RfpHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	detail, err := h.rfpService.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "RFP retrieved successfully", detail)
}

// Approve handles the head's approval
// @Summary Approve RFP
// @Tags rfps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "RFP ID"
// @Param request body request.ApproveRfpRequest false "Calculator total"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/approve [post]
func (h *RfpHandler) Approve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	var req request.ApproveRfpRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	rfp, err := h.rfpService.Approve(c.Request.Context(), middleware.ActorFrom(c), id, &service.ApproveInput{
		CalculatorTotalPrice: req.CalculatorTotalPrice,
		CalculatorDetail:     req.CalculatorDetail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "RFP approved successfully", rfp)
}

// Reject handles the head's rejection
// @Summary Reject RFP
// @Tags rfps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/reject [post]
func (h *RfpHandler) Reject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	var req request.RejectRfpRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	rfp, err := h.rfpService.Reject(c.Request.Context(), middleware.ActorFrom(c), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "RFP rejected", rfp)
}

// SetProductPrice handles the head's per-line calculator price
// @Summary Set product calculator price
// @Tags rfps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/products/price [put]
func (h *RfpHandler) SetProductPrice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	var req request.SetProductPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	rfp, err := h.rfpService.SetProductCalculatorPrice(c.Request.Context(), middleware.ActorFrom(c), id, &service.ProductPriceInput{
		ProductSpec:      req.ProductSpec,
		TotalPrice:       req.TotalPrice,
		CalculatorDetail: req.CalculatorDetail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product price updated", rfp)
}

// ClearProductPrice handles clearing a per-line calculator price
// @Summary Clear product calculator price
// @Tags rfps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/products/price [delete]
func (h *RfpHandler) ClearProductPrice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	var req request.ClearProductPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	rfp, err := h.rfpService.ClearProductCalculatorPrice(c.Request.Context(), middleware.ActorFrom(c), id, req.ProductSpec)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product price cleared", rfp)
}

// AddPrice handles a pricing proposal from accounts
// @Summary Add price revision
// @Tags rfps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "RFP ID"
// @Param request body request.AddPriceRequest true "Price components"
// @Success 201 {object} response.APIResponse
// @Router /rfps/{id}/prices [post]
func (h *RfpHandler) AddPrice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	var req request.AddPriceRequest
	if !bindJSON(c, &req) {
		return
	}
	validity, err := req.ParseValidityDate()
	if err != nil {
		response.BadRequest(c, "Invalid validity_date. Use YYYY-MM-DD")
		return
	}

	result, err := h.rfpService.AddPriceRevision(c.Request.Context(), middleware.ActorFrom(c), id, &service.AddPriceInput{
		RawMaterialPrice: req.RawMaterialPrice,
		ProcessingCost:   req.ProcessingCost,
		Margin:           req.Margin,
		ValidityDate:     validity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Price revision added", result)
}

// ListPriceRevisions handles the RFP's price history
// @Summary List price revisions
// @Tags rfps
// @Security BearerAuth
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/price-revisions [get]
func (h *RfpHandler) ListPriceRevisions(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	revisions, err := h.rfpService.ListPriceRevisions(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price revisions retrieved successfully", revisions)
}

// AuditLog handles the RFP's audit trail
// @Summary List audit log
// @Tags rfps
// @Security BearerAuth
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/audit-log [get]
func (h *RfpHandler) AuditLog(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	entries, err := h.auditService.ListByRfp(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Audit log retrieved successfully", entries)
}

// GenerateQuotation handles quotation generation for a priced RFP
// @Summary Generate quotation
// @Tags rfps
// @Security BearerAuth
// @Produce json
// @Param id path string true "RFP ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Success 201 {object} response.APIResponse
// @Router /rfps/{id}/quotation [post]
func (h *RfpHandler) GenerateQuotation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	result, err := h.rfpService.GenerateQuotation(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation generated successfully", result)
}

// SubmitToAccounts handles sales handing a quoted RFP to accounts
// @Summary Submit to accounts
// @Tags rfps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/submit-accounts [post]
func (h *RfpHandler) SubmitToAccounts(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	var req request.SubmitToAccountsRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	rfp, err := h.rfpService.SubmitToAccounts(c.Request.Context(), middleware.ActorFrom(c), id, &service.SubmitToAccountsInput{
		PiID:      req.PiID,
		PaymentID: req.PaymentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "RFP submitted to accounts", rfp)
}

// AccountsDecision handles the accounts verdict
// @Summary Accounts decision
// @Tags rfps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "RFP ID"
// @Param request body request.DecisionRequest true "approved or credit_case"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/accounts-decision [post]
func (h *RfpHandler) AccountsDecision(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	var req request.DecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	rfp, err := h.rfpService.DecideAccounts(c.Request.Context(), middleware.ActorFrom(c), id, &service.DecisionInput{
		Decision: req.Decision,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Accounts decision recorded", rfp)
}

// SeniorDecision handles the senior verdict on a credit case
// @Summary Senior decision
// @Tags rfps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "RFP ID"
// @Param request body request.DecisionRequest true "approved or rejected"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/senior-decision [post]
func (h *RfpHandler) SeniorDecision(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	var req request.DecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	rfp, err := h.rfpService.DecideSenior(c.Request.Context(), middleware.ActorFrom(c), id, &service.DecisionInput{
		Decision: req.Decision,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Senior decision recorded", rfp)
}
