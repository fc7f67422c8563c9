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

// arqueoHandler handles HTTP requests for cash reconciliations.
type arqueoHandler struct {
	arqueoService portssvc.ArqueoSvcFacade
	loc           *time.Location
}

func newArqueoHandler(as portssvc.ArqueoSvcFacade, loc *time.Location) *arqueoHandler {
	return &arqueoHandler{arqueoService: as, loc: loc}
}

// registerArqueoRoutes registers the reconciliation routes.
func registerArqueoRoutes(rg *gin.RouterGroup, as portssvc.ArqueoSvcFacade, loc *time.Location) {
	h := newArqueoHandler(as, loc)

	arqueos := rg.Group("/arqueos")
	{
		arqueos.GET("/expected-cash", h.getExpectedCash)
		arqueos.GET("", h.listArqueos)
		arqueos.GET("/latest", h.getLatestArqueo)
		arqueos.POST("", h.createArqueo)
		arqueos.DELETE("/:arqueo_id", h.deleteArqueo)
		arqueos.POST("/:arqueo_id/move-surplus", h.moveSurplusToSecondary)
	}
}

// getExpectedCash godoc
// @Summary Expected cash for a date
// @Description Computes the theoretical cash-on-hand for a date at this moment, without recording anything.
// @Tags arqueos
// @Produce json
// @Param date query string false "Business date (yyyy-mm-dd)"
// @Success 200 {object} dto.ExpectedCashResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /arqueos/expected-cash [get]
func (h *arqueoHandler) getExpectedCash(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := dateFromQuery(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	expected, err := h.arqueoService.ExpectedCash(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExpectedCashResponse{
		Date:         utils.FormatBusinessDate(date),
		ExpectedCash: expected,
	})
}

// listArqueos godoc
// @Summary List a date's reconciliations
// @Description Lists the reconciliations recorded for a date, most recent first.
// @Tags arqueos
// @Produce json
// @Param date query string false "Business date (yyyy-mm-dd)"
// @Success 200 {array} dto.ArqueoResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /arqueos [get]
func (h *arqueoHandler) listArqueos(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := dateFromQuery(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	arqueos, err := h.arqueoService.ListArqueos(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListArqueoResponse(arqueos))
}

// getLatestArqueo godoc
// @Summary Latest reconciliation of a date
// @Description Returns the most recent reconciliation recorded for a date.
// @Tags arqueos
// @Produce json
// @Param date query string false "Business date (yyyy-mm-dd)"
// @Success 200 {object} dto.ArqueoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /arqueos/latest [get]
func (h *arqueoHandler) getLatestArqueo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := dateFromQuery(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	arqueo, err := h.arqueoService.LatestArqueo(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArqueoResponse(arqueo))
}

// createArqueo godoc
// @Summary Record a cash count
// @Description Snapshots expected cash, stores the counted amount and posts a compensating adjustment movement when they differ.
// @Tags arqueos
// @Accept json
// @Produce json
// @Param arqueo body dto.CreateArqueoRequest true "Cash count details"
// @Success 201 {object} dto.ArqueoResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /arqueos [post]
func (h *arqueoHandler) createArqueo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateArqueoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	arqueo, err := h.arqueoService.CreateArqueo(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Cash count recorded",
		slog.String("arqueo_id", arqueo.ArqueoID),
		slog.String("difference", arqueo.Difference.String()))
	c.JSON(http.StatusCreated, dto.ToArqueoResponse(arqueo))
}

// deleteArqueo godoc
// @Summary Delete a reconciliation
// @Description Removes a reconciliation record. Its adjustment movement, if any, stays on the ledger.
// @Tags arqueos
// @Produce json
// @Param arqueo_id path string true "Arqueo ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /arqueos/{arqueo_id} [delete]
func (h *arqueoHandler) deleteArqueo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.arqueoService.DeleteArqueo(c.Request.Context(), userID, c.Param("arqueo_id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// moveSurplusToSecondary godoc
// @Summary Move a count surplus to the secondary box
// @Description Transfers a positive counted surplus into the secondary cash box.
// @Tags arqueos
// @Produce json
// @Param arqueo_id path string true "Arqueo ID"
// @Success 201 {object} dto.SecondaryMovementResponse
// @Failure 400 {object} ErrorResponse "No positive surplus to move"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /arqueos/{arqueo_id}/move-surplus [post]
func (h *arqueoHandler) moveSurplusToSecondary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	movement, err := h.arqueoService.MoveSurplusToSecondary(c.Request.Context(), userID, c.Param("arqueo_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSecondaryMovementResponse(movement))
}
