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

// closingHandler handles HTTP requests for day closings.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
	loc            *time.Location
}

func newClosingHandler(cs portssvc.ClosingSvcFacade, loc *time.Location) *closingHandler {
	return &closingHandler{closingService: cs, loc: loc}
}

// registerClosingRoutes registers the day closing routes.
func registerClosingRoutes(rg *gin.RouterGroup, cs portssvc.ClosingSvcFacade, loc *time.Location) {
	h := newClosingHandler(cs, loc)

	closings := rg.Group("/closings")
	{
		closings.GET("", h.getClosing)
		closings.GET("/opening-balance", h.getOpeningBalance)
		closings.GET("/unclosed-days", h.listUnclosedPastDays)
		closings.PUT("/opening-balance", h.setOpeningBalance)
		closings.POST("/close", h.closeDay)
		closings.POST("/reopen", h.reopenDay)
	}
}

// getClosing godoc
// @Summary Get a day's closing state
// @Description Returns the closing row for a date, or an empty body when the date was never touched.
// @Tags closings
// @Produce json
// @Param date query string false "Business date (yyyy-mm-dd)"
// @Success 200 {object} dto.DayClosingResponse
// @Success 204 "Date has no closing row"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /closings [get]
func (h *closingHandler) getClosing(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := dateFromQuery(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	closing, err := h.closingService.GetClosing(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if closing == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.ToDayClosingResponse(closing))
}

// getOpeningBalance godoc
// @Summary Opening balance for a date
// @Description Returns the cash carried into a date: the stored override if any, else the prior day's closing count, else zero.
// @Tags closings
// @Produce json
// @Param date query string false "Business date (yyyy-mm-dd)"
// @Success 200 {object} dto.OpeningBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /closings/opening-balance [get]
func (h *closingHandler) getOpeningBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	date, err := dateFromQuery(c, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}

	balance, err := h.closingService.GetOpeningBalance(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OpeningBalanceResponse{
		Date:           utils.FormatBusinessDate(date),
		OpeningBalance: balance,
	})
}

// listUnclosedPastDays godoc
// @Summary List unclosed past days
// @Description Lists past dates that had movements but were never closed.
// @Tags closings
// @Produce json
// @Success 200 {object} dto.UnclosedDaysResponse
// @Security BearerAuth
// @Router /closings/unclosed-days [get]
func (h *closingHandler) listUnclosedPastDays(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	days, err := h.closingService.ListUnclosedPastDays(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUnclosedDaysResponse(days))
}

// setOpeningBalance godoc
// @Summary Set a day's opening balance
// @Description Records or overwrites the opening cash for a date without closing it.
// @Tags closings
// @Accept json
// @Produce json
// @Param opening body dto.SetOpeningBalanceRequest true "Opening balance"
// @Success 200 {object} dto.DayClosingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /closings/opening-balance [put]
func (h *closingHandler) setOpeningBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SetOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	closing, err := h.closingService.SetOpeningBalance(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDayClosingResponse(closing))
}

// closeDay godoc
// @Summary Close a day
// @Description Marks a date closed, snapshotting the opening balance and counted ending cash.
// @Tags closings
// @Accept json
// @Produce json
// @Param close body dto.CloseDayRequest true "Closing details"
// @Success 200 {object} dto.DayClosingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /closings/close [post]
func (h *closingHandler) closeDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CloseDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	closing, err := h.closingService.CloseDay(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Day closed", slog.String("date", req.Date))
	c.JSON(http.StatusOK, dto.ToDayClosingResponse(closing))
}

// reopenDay godoc
// @Summary Reopen a closed day
// @Description Clears the closed flag so the date accepts movements again.
// @Tags closings
// @Produce json
// @Param date query string true "Business date (yyyy-mm-dd)"
// @Success 200 {object} dto.DayClosingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /closings/reopen [post]
func (h *closingHandler) reopenDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date query parameter is required"})
		return
	}
	date, err := utils.ParseBusinessDate(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	closing, err := h.closingService.ReopenDay(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Day reopened", slog.String("date", raw))
	c.JSON(http.StatusOK, dto.ToDayClosingResponse(closing))
}
