package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/cajadiaria/caja_diaria_app/internal/middleware"
	"github.com/cajadiaria/caja_diaria_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// secondaryHandler handles HTTP requests for the secondary cash box.
type secondaryHandler struct {
	secondaryService portssvc.SecondarySvcFacade
}

func newSecondaryHandler(ss portssvc.SecondarySvcFacade) *secondaryHandler {
	return &secondaryHandler{secondaryService: ss}
}

// registerSecondaryRoutes registers the secondary cash box routes.
func registerSecondaryRoutes(rg *gin.RouterGroup, ss portssvc.SecondarySvcFacade) {
	h := newSecondaryHandler(ss)

	secondary := rg.Group("/secondary")
	{
		secondary.GET("/balance", h.getBalance)
		secondary.GET("/movements", h.listMovements)
		secondary.POST("/transfers", h.transferToSecondary)
		secondary.POST("/reintegrations", h.reintegrateToPrincipal)
		secondary.POST("/expenses", h.registerExpense)
		secondary.POST("/movements/:secondary_movement_id/cancel", h.cancelMovement)
	}
}

// getBalance godoc
// @Summary Secondary box balance
// @Description Returns the secondary cash box's current balance.
// @Tags secondary
// @Produce json
// @Success 200 {object} dto.SecondaryBalanceResponse
// @Security BearerAuth
// @Router /secondary/balance [get]
func (h *secondaryHandler) getBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	balance, err := h.secondaryService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SecondaryBalanceResponse{Balance: balance})
}

// listMovements godoc
// @Summary List secondary box movements
// @Description Lists the box's non-cancelled movements, optionally restricted to one date.
// @Tags secondary
// @Produce json
// @Param date query string false "Business date (yyyy-mm-dd)"
// @Success 200 {array} dto.SecondaryMovementResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /secondary/movements [get]
func (h *secondaryHandler) listMovements(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseBusinessDate(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		date = &parsed
	}

	movements, err := h.secondaryService.ListMovements(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListSecondaryMovementResponse(movements))
}

// transferToSecondary godoc
// @Summary Transfer cash into the secondary box
// @Description Moves cash from the principal ledger into the box, recording both sides atomically.
// @Tags secondary
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.SecondaryMovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /secondary/transfers [post]
func (h *secondaryHandler) transferToSecondary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.secondaryService.TransferToSecondary(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Cash transferred to secondary box",
		slog.String("secondary_movement_id", movement.SecondaryMovementID),
		slog.String("amount", movement.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToSecondaryMovementResponse(movement))
}

// reintegrateToPrincipal godoc
// @Summary Reintegrate cash to the principal ledger
// @Description Moves cash back out of the box. Fails when the amount exceeds the box balance.
// @Tags secondary
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.SecondaryMovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient box balance"
// @Security BearerAuth
// @Router /secondary/reintegrations [post]
func (h *secondaryHandler) reintegrateToPrincipal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.secondaryService.ReintegrateToPrincipal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSecondaryMovementResponse(movement))
}

// registerExpense godoc
// @Summary Record a secondary box expense
// @Description Records an expense paid directly out of the box, without touching the principal ledger.
// @Tags secondary
// @Accept json
// @Produce json
// @Param expense body dto.SecondaryExpenseRequest true "Expense details"
// @Success 201 {object} dto.SecondaryMovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient box balance"
// @Security BearerAuth
// @Router /secondary/expenses [post]
func (h *secondaryHandler) registerExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SecondaryExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.secondaryService.RegisterExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSecondaryMovementResponse(movement))
}

// cancelMovement godoc
// @Summary Cancel a secondary box movement
// @Description Cancels a box movement. Transfers cancel their paired principal movement too; expenses are removed outright.
// @Tags secondary
// @Accept json
// @Produce json
// @Param secondary_movement_id path string true "Secondary movement ID"
// @Param cancel body dto.CancelSecondaryMovementRequest true "Cancellation reason"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /secondary/movements/{secondary_movement_id}/cancel [post]
func (h *secondaryHandler) cancelMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	secondaryMovementID := c.Param("secondary_movement_id")

	var req dto.CancelSecondaryMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cancellation reason is required"})
		return
	}

	if err := h.secondaryService.CancelMovement(c.Request.Context(), userID, secondaryMovementID, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Secondary movement cancelled", slog.String("secondary_movement_id", secondaryMovementID))
	c.Status(http.StatusNoContent)
}
