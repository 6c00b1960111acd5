package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/funds_flow_app/internal/apperrors"
	portssvc "github.com/SscSPs/funds_flow_app/internal/core/ports/services"
	"github.com/SscSPs/funds_flow_app/internal/dto"
	"github.com/SscSPs/funds_flow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entrySessionHandler handles HTTP requests for amount-entry sessions.
type entrySessionHandler struct {
	sessionService portssvc.EntrySessionSvcFacade
}

func newEntrySessionHandler(es portssvc.EntrySessionSvcFacade) *entrySessionHandler {
	return &entrySessionHandler{sessionService: es}
}

// registerEntrySessionRoutes registers routes for the entry session flow.
func registerEntrySessionRoutes(rg *gin.RouterGroup, sessionService portssvc.EntrySessionSvcFacade) {
	h := newEntrySessionHandler(sessionService)

	sessions := rg.Group("/entry-sessions")
	{
		sessions.POST("", h.startSession)
		sessions.GET("/:sessionID", h.getSession)
		sessions.PUT("/:sessionID/input", h.keystroke)
		sessions.POST("/:sessionID/swap", h.swap)
		sessions.PUT("/:sessionID/account", h.changeAccount)
		sessions.POST("/:sessionID/confirm", h.confirm)
		sessions.DELETE("/:sessionID", h.dismiss)
	}
}

// respondSessionError maps service errors to HTTP statuses.
func respondSessionError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotSettled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateConfirmation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Entry session request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *entrySessionHandler) startSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StartEntrySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StartSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	view, err := h.sessionService.StartSession(c.Request.Context(), req.Operation, req.AccountID)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *entrySessionHandler) getSession(c *gin.Context) {
	view, err := h.sessionService.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *entrySessionHandler) keystroke(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.KeystrokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Keystroke", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	view, err := h.sessionService.Keystroke(c.Request.Context(), c.Param("sessionID"), req.RawInput)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *entrySessionHandler) swap(c *gin.Context) {
	view, err := h.sessionService.Swap(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *entrySessionHandler) changeAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ChangeAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	view, err := h.sessionService.ChangeAccount(c.Request.Context(), c.Param("sessionID"), req.AccountID)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *entrySessionHandler) confirm(c *gin.Context) {
	result, err := h.sessionService.Confirm(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *entrySessionHandler) dismiss(c *gin.Context) {
	if err := h.sessionService.Dismiss(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
