package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/rfp-api/internal/application/service"
	"github.com/sangkips/rfp-api/internal/presentation/http/dto/response"
	"github.com/sangkips/rfp-api/internal/presentation/http/middleware"
)

// DocumentHandler serves read-only quotations and work orders
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// GetQuotation handles getting a single quotation
// @Summary Get Quotation
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [get]
func (h *DocumentHandler) GetQuotation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "quotation")
	if !ok {
		return
	}

	quotation, err := h.documentService.GetQuotation(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// GetRfpQuotation handles getting the quotation generated for an RFP
// @Summary Get RFP Quotation
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "RFP ID"
// @Success 200 {object} response.APIResponse
// @Router /rfps/{id}/quotation [get]
func (h *DocumentHandler) GetRfpQuotation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "RFP")
	if !ok {
		return
	}

	quotation, err := h.documentService.GetQuotationForRfp(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// GetWorkOrder handles getting a single work order
// @Summary Get Work Order
// @Tags work-orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Work order ID"
// @Success 200 {object} response.APIResponse
// @Router /work-orders/{id} [get]
func (h *DocumentHandler) GetWorkOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "work order")
	if !ok {
		return
	}

	workOrder, err := h.documentService.GetWorkOrder(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order retrieved successfully", workOrder)
}
