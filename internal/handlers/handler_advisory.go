package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// advisoryHandler exposes the assistant endpoints. None of them post entries.
type advisoryHandler struct {
	advisoryService portssvc.AdvisorySvc
}

func registerAdvisoryRoutes(rg *gin.RouterGroup, advisoryService portssvc.AdvisorySvc, limit gin.HandlerFunc) {
	h := &advisoryHandler{advisoryService: advisoryService}

	ai := rg.Group("/ai")
	if limit != nil {
		ai.Use(limit)
	}
	{
		ai.POST("/chat", h.chat)
		ai.POST("/analyze-financial-health", h.analyzeFinancialHealth)
		ai.POST("/extract-invoice-data", h.extractInvoiceData)
		ai.POST("/suggest-categorization", h.suggestCategorization)
		ai.POST("/financial-insights", h.financialInsights)
	}
}

// chat godoc
// @Summary Ask the accounting assistant
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   request body dto.ChatRequest true "Question"
// @Success 200 {object} dto.AdviceResponse
// @Failure 400 {object} dto.ErrorResponse "Empty message"
// @Failure 429 {object} dto.ErrorResponse "RateLimited"
// @Failure 502 {object} dto.ErrorResponse "UpstreamError"
// @Failure 503 {object} dto.ErrorResponse "ServiceUnavailable"
// @Security BearerAuth
// @Router /ai/chat [post]
func (h *advisoryHandler) chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	advice, err := h.advisoryService.Chat(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err, "Assistant request failed")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdviceResponse(advice))
}

// analyzeFinancialHealth godoc
// @Summary Analyze financial health
// @Description Missing revenue and expenses are taken from the ledger's trial balance
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   request body dto.AnalyzeFinancialHealthRequest true "Headline figures"
// @Success 200 {object} dto.FinancialHealthResponse
// @Failure 502 {object} dto.ErrorResponse "UpstreamError"
// @Failure 503 {object} dto.ErrorResponse "ServiceUnavailable"
// @Security BearerAuth
// @Router /ai/analyze-financial-health [post]
func (h *advisoryHandler) analyzeFinancialHealth(c *gin.Context) {
	var req dto.AnalyzeFinancialHealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	advice, snapshot, err := h.advisoryService.AnalyzeFinancialHealth(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Financial health analysis failed")
		return
	}
	c.JSON(http.StatusOK, dto.FinancialHealthResponse{AdviceResponse: dto.ToAdviceResponse(advice), Snapshot: *snapshot})
}

// extractInvoiceData godoc
// @Summary Extract structured data from invoice text
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   request body dto.ExtractInvoiceRequest true "Invoice text"
// @Success 200 {object} dto.AdviceResponse
// @Failure 502 {object} dto.ErrorResponse "UpstreamError"
// @Failure 503 {object} dto.ErrorResponse "ServiceUnavailable"
// @Security BearerAuth
// @Router /ai/extract-invoice-data [post]
func (h *advisoryHandler) extractInvoiceData(c *gin.Context) {
	var req dto.ExtractInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	advice, err := h.advisoryService.ExtractInvoiceData(c.Request.Context(), req.InvoiceText)
	if err != nil {
		respondError(c, err, "Invoice extraction failed")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdviceResponse(advice))
}

// suggestCategorization godoc
// @Summary Suggest an account for a transaction description
// @Description Uses the language model when configured, otherwise the classifier trained on posted entries
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   request body dto.SuggestCategorizationRequest true "Transaction description"
// @Success 200 {object} dto.CategorizationResponse
// @Failure 502 {object} dto.ErrorResponse "UpstreamError"
// @Failure 503 {object} dto.ErrorResponse "ServiceUnavailable"
// @Security BearerAuth
// @Router /ai/suggest-categorization [post]
func (h *advisoryHandler) suggestCategorization(c *gin.Context) {
	var req dto.SuggestCategorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	suggestion, err := h.advisoryService.SuggestCategorization(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, err, "Categorization failed")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategorizationResponse(suggestion))
}

// financialInsights godoc
// @Summary Summarize recent journal activity
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   request body dto.FinancialInsightsRequest false "How many recent entries to include"
// @Success 200 {object} dto.AdviceResponse
// @Failure 502 {object} dto.ErrorResponse "UpstreamError"
// @Failure 503 {object} dto.ErrorResponse "ServiceUnavailable"
// @Security BearerAuth
// @Router /ai/financial-insights [post]
func (h *advisoryHandler) financialInsights(c *gin.Context) {
	var req dto.FinancialInsightsRequest
	// An empty body means the default window.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	advice, err := h.advisoryService.FinancialInsights(c.Request.Context(), req.Limit)
	if err != nil {
		respondError(c, err, "Financial insights failed")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdviceResponse(advice))
}
