package handlers

import (
	"context"
	"net/http"
	"time"

	"glowbook/models"
	"glowbook/services/quote"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuoteHandler serves booking quotes.
type QuoteHandler struct {
	Service quote.QuoteEngine
	Timeout time.Duration
}

func NewQuoteHandler(service quote.QuoteEngine, timeout time.Duration) *QuoteHandler {
	return &QuoteHandler{Service: service, Timeout: timeout}
}

// CalculateHandler prices and validates a chain of services without committing anything.
func (h *QuoteHandler) CalculateHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.BookingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if req.UserID == "" {
		req.UserID = c.GetString("userID")
	}

	ctx := c.Request.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	result := h.Service.Calculate(ctx, req)
	if !result.Status {
		logger.Info("Booking quote rejected",
			zap.String("message", result.Message),
			zap.Int("items", len(result.Items)))
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
