package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/cajadiaria/caja_diaria_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// movementHandler handles HTTP requests for the principal ledger.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
	loc             *time.Location
}

func newMovementHandler(ms portssvc.MovementSvcFacade, loc *time.Location) *movementHandler {
	return &movementHandler{movementService: ms, loc: loc}
}

// RegisterMovementRoutes registers the principal ledger routes.
func RegisterMovementRoutes(rg *gin.RouterGroup, ms portssvc.MovementSvcFacade, loc *time.Location) {
	h := newMovementHandler(ms, loc)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.createMovement)
		movements.GET("", h.listMovements)
		movements.GET("/summary", h.getDailySummary)
		movements.GET("/totals-by-method", h.getTotalsByMethod)
		movements.POST("/:movement_id/cancel", h.cancelMovement)
		movements.PATCH("/:movement_id/description", h.updateDescription)
	}
}

// createMovement godoc
// @Summary Record a movement
// @Description Records an inflow or outflow with one or more payment splits. The total is the sum of the splits.
// @Tags movements
// @Accept json
// @Produce json
// @Param movement body dto.CreateMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Day already closed"
// @Failure 404 {object} ErrorResponse "Unknown category or method"
// @Security BearerAuth
// @Router /movements [post]
func (h *movementHandler) createMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.movementService.CreateMovement(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Movement recorded",
		slog.String("movement_id", movement.MovementID),
		slog.String("direction", string(movement.Direction)),
		slog.String("total", movement.TotalAmount.String()))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List a day's movements
// @Description Lists the non-cancelled movements of a business date, newest first. Defaults to today.
// @Tags movements
// @Produce json
// @Param date query string false "Business date (yyyy-mm-dd)"
// @Success 200 {array} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := dateFromQuery(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	movements, err := h.movementService.ListMovements(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListMovementResponse(movements))
}

// getDailySummary godoc
// @Summary Daily summary
// @Description Aggregates a date's movements into totals split by cash and non-cash.
// @Tags movements
// @Produce json
// @Param date query string false "Business date (yyyy-mm-dd)"
// @Success 200 {object} dto.DailySummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/summary [get]
func (h *movementHandler) getDailySummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := dateFromQuery(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.movementService.GetDailySummary(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailySummaryResponse(date, summary))
}

// getTotalsByMethod godoc
// @Summary Per-method totals
// @Description Breaks a date's movements down by payment method.
// @Tags movements
// @Produce json
// @Param date query string false "Business date (yyyy-mm-dd)"
// @Success 200 {array} dto.MethodTotalsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/totals-by-method [get]
func (h *movementHandler) getTotalsByMethod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := dateFromQuery(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	totals, err := h.movementService.GetTotalsByMethod(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMethodTotalsResponses(totals))
}

// cancelMovement godoc
// @Summary Cancel a movement
// @Description Soft-cancels a movement with a mandatory reason. The row stays visible as cancelled.
// @Tags movements
// @Accept json
// @Produce json
// @Param movement_id path string true "Movement ID"
// @Param cancel body dto.CancelMovementRequest true "Cancellation reason"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{movement_id}/cancel [post]
func (h *movementHandler) cancelMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	movementID := c.Param("movement_id")

	var req dto.CancelMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cancellation reason is required"})
		return
	}

	movement, err := h.movementService.CancelMovement(c.Request.Context(), userID, movementID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Movement cancelled", slog.String("movement_id", movementID))
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// updateDescription godoc
// @Summary Update a movement's description
// @Description Changes the free-text description, the only editable field after creation.
// @Tags movements
// @Accept json
// @Produce json
// @Param movement_id path string true "Movement ID"
// @Param description body dto.UpdateDescriptionRequest true "New description"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{movement_id}/description [patch]
func (h *movementHandler) updateDescription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	movementID := c.Param("movement_id")

	var req dto.UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.movementService.UpdateDescription(c.Request.Context(), userID, movementID, req.Description); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
