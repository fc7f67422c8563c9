package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/cajadiaria/caja_diaria_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// identityHandler handles HTTP requests for actor resolution and employments.
type identityHandler struct {
	identityService portssvc.IdentitySvc
}

func newIdentityHandler(is portssvc.IdentitySvc) *identityHandler {
	return &identityHandler{identityService: is}
}

// registerIdentityRoutes registers the actor and employment routes.
func registerIdentityRoutes(rg *gin.RouterGroup, is portssvc.IdentitySvc) {
	h := newIdentityHandler(is)

	rg.GET("/me/actor", h.getActor)

	employments := rg.Group("/employments")
	{
		employments.GET("", h.listEmployments)
		employments.PUT("", h.upsertEmployment)
		employments.DELETE("/:employee_user_id", h.deactivateEmployment)
	}
}

// getActor godoc
// @Summary Resolve the calling user's actor
// @Description Returns which cash box the caller operates on and the permissions they hold there.
// @Tags identity
// @Produce json
// @Success 200 {object} dto.ActorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/actor [get]
func (h *identityHandler) getActor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	actor, err := h.identityService.ResolveActor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToActorResponse(*actor))
}

// listEmployments godoc
// @Summary List employees
// @Description Lists the active employees of the calling owner's cash box.
// @Tags identity
// @Produce json
// @Success 200 {array} dto.EmploymentResponse
// @Failure 403 {object} ErrorResponse "Caller is not an owner"
// @Security BearerAuth
// @Router /employments [get]
func (h *identityHandler) listEmployments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	employments, err := h.identityService.ListEmployments(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListEmploymentResponse(employments))
}

// upsertEmployment godoc
// @Summary Grant or update an employee's permissions
// @Description Adds a user as employee of the calling owner's cash box, or replaces their permission set.
// @Tags identity
// @Accept json
// @Produce json
// @Param employment body dto.UpsertEmploymentRequest true "Employee and permissions"
// @Success 200 {object} dto.EmploymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not an owner"
// @Failure 404 {object} ErrorResponse "Employee user does not exist"
// @Failure 409 {object} ErrorResponse "User is already employed by another owner"
// @Security BearerAuth
// @Router /employments [put]
func (h *identityHandler) upsertEmployment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertEmploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	employment, err := h.identityService.UpsertEmployment(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Employment updated", slog.String("employee_user_id", req.EmployeeUserID))
	c.JSON(http.StatusOK, dto.ToEmploymentResponse(employment))
}

// deactivateEmployment godoc
// @Summary Revoke an employee's access
// @Description Deactivates the employment so the user no longer operates the owner's cash box.
// @Tags identity
// @Produce json
// @Param employee_user_id path string true "Employee user ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Caller is not an owner"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employments/{employee_user_id} [delete]
func (h *identityHandler) deactivateEmployment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.identityService.DeactivateEmployment(c.Request.Context(), userID, c.Param("employee_user_id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
