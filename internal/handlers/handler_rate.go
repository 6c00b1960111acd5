package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/funds_flow_app/internal/apperrors"
	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	portssvc "github.com/SscSPs/funds_flow_app/internal/core/ports/services"
	"github.com/SscSPs/funds_flow_app/internal/dto"
	"github.com/SscSPs/funds_flow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests for exchange rate lookups.
type rateHandler struct {
	rateCache portssvc.RateCacheFacade
}

func newRateHandler(rc portssvc.RateCacheFacade) *rateHandler {
	return &rateHandler{rateCache: rc}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateCache portssvc.RateCacheFacade) {
	h := newRateHandler(rateCache)

	rates := rg.Group("/rates")
	{
		rates.GET("/:from/:to", h.getRate)
		rates.POST("/:from/:to/refresh", h.refreshRate)
	}
}

func (h *rateHandler) currencyPair(c *gin.Context) (string, string, bool) {
	from := c.Param("from")
	to := c.Param("to")
	if !domain.IsSupportedCurrency(from) || !domain.IsSupportedCurrency(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency pair"})
		return "", "", false
	}
	return from, to, true
}

// getRate serves the cached (possibly stale or degraded) rate without
// blocking on the provider.
func (h *rateHandler) getRate(c *gin.Context) {
	from, to, ok := h.currencyPair(c)
	if !ok {
		return
	}

	quote, found := h.rateCache.GetCachedRate(from, to)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "No rate available for pair"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(from, to, quote))
}

// refreshRate forces a live fetch for the pair.
func (h *rateHandler) refreshRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to, ok := h.currencyPair(c)
	if !ok {
		return
	}

	quote, err := h.rateCache.FetchRate(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			logger.Warn("Rate refresh failed", slog.String("from", from), slog.String("to", to), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Rate provider unavailable"})
		} else {
			logger.Error("Failed to refresh rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(from, to, quote))
}
