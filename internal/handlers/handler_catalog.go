package handlers

import (
	"net/http"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// catalogHandler handles HTTP requests for categories and payment methods.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

// registerCatalogRoutes registers the category and payment method routes.
func registerCatalogRoutes(rg *gin.RouterGroup, cs portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(cs)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.PATCH("/:category_id", h.updateCategory)
	}

	methods := rg.Group("/payment-methods")
	{
		methods.GET("", h.listPaymentMethods)
		methods.POST("", h.createPaymentMethod)
		methods.PATCH("/:method_id", h.updatePaymentMethod)
	}
}

// listCategories godoc
// @Summary List categories
// @Description Lists the active system and custom categories, optionally filtered by direction.
// @Tags catalog
// @Produce json
// @Param direction query string false "INFLOW or OUTFLOW"
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *catalogHandler) listCategories(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var direction *domain.CatalogDirection
	if raw := c.Query("direction"); raw != "" {
		d := domain.CatalogDirection(raw)
		if d != domain.CatalogInflow && d != domain.CatalogOutflow {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "direction must be INFLOW or OUTFLOW"})
			return
		}
		direction = &d
	}

	categories, err := h.catalogService.ListCategories(c.Request.Context(), userID, direction)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// createCategory godoc
// @Summary Create a custom category
// @Description Adds an owner-scoped category to the catalog.
// @Tags catalog
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *catalogHandler) createCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// updateCategory godoc
// @Summary Update a custom category
// @Description Renames, reorders or deactivates an owner-scoped category. System categories are immutable.
// @Tags catalog
// @Accept json
// @Produce json
// @Param category_id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{category_id} [patch]
func (h *catalogHandler) updateCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), userID, c.Param("category_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// listPaymentMethods godoc
// @Summary List payment methods
// @Description Lists the active system and custom payment methods.
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.PaymentMethodResponse
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *catalogHandler) listPaymentMethods(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	methods, err := h.catalogService.ListPaymentMethods(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentMethodResponse(methods))
}

// createPaymentMethod godoc
// @Summary Create a custom payment method
// @Description Adds an owner-scoped payment method. Whether it counts as cash is fixed at creation.
// @Tags catalog
// @Accept json
// @Produce json
// @Param method body dto.CreatePaymentMethodRequest true "Payment method details"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *catalogHandler) createPaymentMethod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	method, err := h.catalogService.CreatePaymentMethod(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(method))
}

// updatePaymentMethod godoc
// @Summary Update a custom payment method
// @Description Renames, reorders or deactivates an owner-scoped payment method. System methods are immutable.
// @Tags catalog
// @Accept json
// @Produce json
// @Param method_id path string true "Payment method ID"
// @Param method body dto.UpdatePaymentMethodRequest true "Fields to change"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{method_id} [patch]
func (h *catalogHandler) updatePaymentMethod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	method, err := h.catalogService.UpdatePaymentMethod(c.Request.Context(), userID, c.Param("method_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(method))
}
