package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
	"github.com/marhaba-travel/agency_accounting/internal/dto"
	"github.com/marhaba-travel/agency_accounting/internal/middleware"
)

// currencyHandler handles HTTP requests for the currency converter.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers the rate table and conversion routes.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.POST("/convert", h.convert)
	}
}

func (h *currencyHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.currencyService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currency rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currency rates"})
		return
	}
	c.JSON(http.StatusOK, rates)
}

func (h *currencyHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for conversion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.currencyService.Convert(c.Request.Context(), req.Amount, req.From, req.To)
	if err != nil {
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount: req.Amount,
		From:   strings.ToUpper(req.From),
		To:     strings.ToUpper(req.To),
		Result: result,
	})
}
