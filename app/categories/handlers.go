package categories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tradelane/storefront/app/api"
	"github.com/tradelane/storefront/models"
)

// Handler handles HTTP requests for categories
type Handler struct {
	service Service
}

// NewHandler creates a new category handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.BadRequestResponse(c, "Invalid category ID format")
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps domain errors onto HTTP responses
func (h *Handler) handleServiceError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		api.NotFoundResponse(c, "Category")
	case errors.Is(err, models.ErrDuplicateCategoryName),
		errors.Is(err, models.ErrDuplicateCategorySlug),
		errors.Is(err, models.ErrHasSubcategories),
		errors.Is(err, models.ErrCategoryInUse):
		api.ConflictResponse(c, err.Error())
	case errors.Is(err, models.ErrInvalidCategoryName),
		errors.Is(err, models.ErrInvalidCategorySlug),
		errors.Is(err, models.ErrInvalidParentID),
		errors.Is(err, models.ErrSelfParent),
		errors.Is(err, models.ErrCyclicParent):
		api.BadRequestResponse(c, err.Error())
	default:
		api.InternalErrorResponse(c, "Failed to "+operation)
	}
}

// CreateCategory handles POST /categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "create category")
		return
	}

	api.CreatedResponse(c, "Category created", category)
}

// GetCategoryByID handles GET /categories/:id
func (h *Handler) GetCategoryByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	category, err := h.service.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "fetch category")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "", category)
}

// GetCategoryBySlug handles GET /categories/slug/:slug
func (h *Handler) GetCategoryBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		api.BadRequestResponse(c, "Category slug is required")
		return
	}

	category, err := h.service.GetCategoryBySlug(c.Request.Context(), slug)
	if err != nil {
		h.handleServiceError(c, err, "fetch category")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "", category)
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	var filters CategoryFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	result, err := h.service.ListCategories(c.Request.Context(), &filters)
	if err != nil {
		h.handleServiceError(c, err, "list categories")
		return
	}

	meta := api.PaginationMeta{
		Page:       result.Page,
		PerPage:    result.PerPage,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		HasNext:    int64(result.Page*result.PerPage) < result.Total,
		HasPrev:    result.Page > 1,
	}
	api.PaginatedResponse(c, "", result.Items, meta)
}

// GetActiveTree handles GET /categories/tree
func (h *Handler) GetActiveTree(c *gin.Context) {
	tree, err := h.service.GetActiveTree(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "build category tree")
		return
	}

	api.ListResponse(c, "", tree, len(tree))
}

// GetBreadcrumb handles GET /categories/:id/breadcrumb
func (h *Handler) GetBreadcrumb(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	trail, err := h.service.GetBreadcrumb(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "build breadcrumb")
		return
	}

	api.ListResponse(c, "", trail, len(trail))
}

// GetStats handles GET /categories/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "aggregate categories")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "", stats)
}

// SearchCategories handles GET /categories/search
func (h *Handler) SearchCategories(c *gin.Context) {
	term := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.service.SearchCategories(c.Request.Context(), term, limit)
	if err != nil {
		h.handleServiceError(c, err, "search categories")
		return
	}

	api.ListResponse(c, "", results, len(results))
}

// UpdateCategory handles PUT /categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err, "update category")
		return
	}

	api.UpdatedResponse(c, "Category updated", category)
}

// DeleteCategory handles DELETE /categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	category, err := h.service.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "delete category")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Category deleted", category)
}

// BulkImport handles POST /categories/bulk
func (h *Handler) BulkImport(c *gin.Context) {
	var records []CreateCategoryRequest
	if err := c.ShouldBindJSON(&records); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	result, err := h.service.BulkImport(c.Request.Context(), records)
	if err != nil {
		h.handleServiceError(c, err, "import categories")
		return
	}

	status := http.StatusOK
	if len(result.Errors) == 0 && len(result.Success) > 0 {
		status = http.StatusCreated
	}
	api.SuccessResponse(c, status, "Import finished", result)
}
