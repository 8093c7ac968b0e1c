package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
	"github.com/marhaba-travel/agency_accounting/internal/dto"
	"github.com/marhaba-travel/agency_accounting/internal/middleware"
)

// postingHandler handles HTTP requests that create and post journal entries.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newPostingHandler(ps portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: ps}
}

// registerPostingRoutes registers the posting event and journal entry routes.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("/bookings", h.postBookingEvent)
		postings.POST("/invoices", h.postInvoiceEvent)
		postings.POST("/receipts", h.postReceiptEvent)
		postings.POST("/commissions", h.postCommissionEvent)
	}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createManualEntry)
		entries.GET("/:entryID", h.getEntryByID)
	}
}

func (h *postingHandler) postBookingEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BookingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for booking event", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received booking posting event", slog.String("booking_number", req.BookingNumber))

	outcomes, err := h.postingService.CreateAndPostBookingEntries(c.Request.Context(), req.ToDomain(), userID)
	if err != nil {
		respondPostingError(c, logger, err, "Failed to post booking entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostingOutcomeResponses(outcomes))
}

func (h *postingHandler) postInvoiceEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InvoiceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for invoice event", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received invoice posting event", slog.String("invoice_number", req.InvoiceNumber))

	outcomes, err := h.postingService.CreateAndPostInvoiceEntries(c.Request.Context(), req.ToDomain(), userID)
	if err != nil {
		respondPostingError(c, logger, err, "Failed to post invoice entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostingOutcomeResponses(outcomes))
}

func (h *postingHandler) postReceiptEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceiptEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for receipt event", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received receipt posting event", slog.String("receipt_number", req.ReceiptNumber))

	outcome, err := h.postingService.CreateAndPostReceiptEntry(c.Request.Context(), req.ToDomain(), userID)
	if err != nil {
		respondPostingError(c, logger, err, "Failed to post receipt entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostingOutcomeResponse(outcome))
}

func (h *postingHandler) postCommissionEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CommissionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for commission event", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received commission posting event",
		slog.String("booking_number", req.Booking.BookingNumber),
		slog.String("role", req.Role),
	)

	outcome, err := h.postingService.CreateAndPostCommissionEntry(c.Request.Context(), req.Booking.ToDomain(), domain.CommissionRole(req.Role), userID)
	if err != nil {
		respondPostingError(c, logger, err, "Failed to post commission entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostingOutcomeResponse(outcome))
}

func (h *postingHandler) createManualEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for manual entry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received manual entry request",
		slog.String("debit_account_code", req.DebitAccountCode),
		slog.String("credit_account_code", req.CreditAccountCode),
	)

	entry, err := h.postingService.CreateAndPostManualEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondPostingError(c, logger, err, "Failed to post manual entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *postingHandler) getEntryByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.postingService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// respondPostingError maps service errors onto HTTP statuses.
func respondPostingError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Referenced record not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
