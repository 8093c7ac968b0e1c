package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
	"github.com/marhaba-travel/agency_accounting/internal/dto"
	"github.com/marhaba-travel/agency_accounting/internal/middleware"
)

// fiscalYearHandler handles HTTP requests for the period lifecycle.
type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
	postingService    portssvc.PostingSvcFacade
}

func newFiscalYearHandler(fys portssvc.FiscalYearSvcFacade, ps portssvc.PostingSvcFacade) *fiscalYearHandler {
	return &fiscalYearHandler{fiscalYearService: fys, postingService: ps}
}

// registerFiscalYearRoutes registers the fiscal year lifecycle routes.
func registerFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newFiscalYearHandler(fiscalYearService, postingService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.openFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/current", h.getCurrentFiscalYear)
		years.GET("/:fiscalYearID", h.getFiscalYearByID)
		years.GET("/:fiscalYearID/entries", h.listEntries)
		years.GET("/:fiscalYearID/opening-balances", h.listOpeningBalances)
		years.GET("/:fiscalYearID/closing-entries", h.listClosingEntries)
		years.POST("/:fiscalYearID/close", h.closeFiscalYear)
		years.POST("/:fiscalYearID/carry-forward/:targetID", h.carryForward)
	}
}

func (h *fiscalYearHandler) openFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for fiscal year", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to open fiscal year", slog.String("code", req.Code))

	fy, err := h.fiscalYearService.OpenNew(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to open fiscal year", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open fiscal year"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	years, err := h.fiscalYearService.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list fiscal years", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal years"})
		return
	}

	responses := make([]dto.FiscalYearResponse, len(years))
	for i := range years {
		responses[i] = dto.ToFiscalYearResponse(&years[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *fiscalYearHandler) getCurrentFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fy, err := h.fiscalYearService.GetCurrent(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No current fiscal year"})
			return
		}
		logger.Error("Failed to get current fiscal year", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve current fiscal year"})
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) getFiscalYearByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscalYearID")

	fy, err := h.fiscalYearService.GetByID(c.Request.Context(), fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal year not found"})
			return
		}
		logger.Error("Failed to get fiscal year", slog.String("fiscal_year_id", fiscalYearID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fiscal year"})
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscalYearID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.postingService.ListEntriesByFiscalYear(c.Request.Context(), fiscalYearID, limit, offset)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("fiscal_year_id", fiscalYearID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *fiscalYearHandler) listOpeningBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscalYearID")

	balances, err := h.fiscalYearService.ListOpeningBalances(c.Request.Context(), fiscalYearID)
	if err != nil {
		logger.Error("Failed to list opening balances", slog.String("fiscal_year_id", fiscalYearID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list opening balances"})
		return
	}
	c.JSON(http.StatusOK, balances)
}

func (h *fiscalYearHandler) listClosingEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscalYearID")

	entries, err := h.fiscalYearService.ListClosingEntries(c.Request.Context(), fiscalYearID)
	if err != nil {
		logger.Error("Failed to list closing entries", slog.String("fiscal_year_id", fiscalYearID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list closing entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscalYearID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to close fiscal year", slog.String("fiscal_year_id", fiscalYearID))

	summary, err := h.fiscalYearService.Close(c.Request.Context(), fiscalYearID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal year not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close fiscal year", slog.String("fiscal_year_id", fiscalYearID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close fiscal year"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CloseFiscalYearResponse{
		FiscalYear:     dto.ToFiscalYearResponse(&summary.FiscalYear),
		TotalRevenue:   summary.TotalRevenue,
		TotalExpenses:  summary.TotalExpenses,
		NetIncome:      summary.NetIncome,
		ClosingEntries: summary.ClosingEntries,
	})
}

func (h *fiscalYearHandler) carryForward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sourceID := c.Param("fiscalYearID")
	targetID := c.Param("targetID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received carry-forward request",
		slog.String("source_year_id", sourceID),
		slog.String("target_year_id", targetID),
	)

	rows, err := h.fiscalYearService.CarryForward(c.Request.Context(), sourceID, targetID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to carry forward balances", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to carry forward balances"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CarryForwardResponse{
		SourceYearID: sourceID,
		TargetYearID: targetID,
		RowsCarried:  rows,
	})
}
