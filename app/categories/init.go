package categories

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tradelane/storefront/internal/cache"
	"github.com/tradelane/storefront/internal/logger"
	"github.com/tradelane/storefront/internal/sanitizer"
)

// Dependencies represent the dependencies needed for the categories module
type Dependencies struct {
	DB        *gorm.DB
	Logger    logger.Logger
	Sanitizer sanitizer.HTMLStripperer
	TreeCache cache.Cache[[]TreeNode]
	// ReferenceChecker vetoes deletes of categories still referenced by
	// external records; nil disables the check.
	ReferenceChecker ReferenceChecker
}

func buildHandler(deps Dependencies) *Handler {
	repo := NewRepository(deps.DB)
	srvs := NewService(repo, deps.TreeCache, deps.Sanitizer, deps.Logger, deps.ReferenceChecker)
	return NewHandler(srvs)
}

// Init mounts the shopper-facing read routes
func Init(r *gin.RouterGroup, deps Dependencies) {
	handler := buildHandler(deps)

	categoriesGroup := r.Group("/categories")
	categoriesGroup.GET("", handler.ListCategories)
	categoriesGroup.GET("/tree", handler.GetActiveTree)
	categoriesGroup.GET("/search", handler.SearchCategories)
	categoriesGroup.GET("/slug/:slug", handler.GetCategoryBySlug)
	categoriesGroup.GET("/:id", handler.GetCategoryByID)
	categoriesGroup.GET("/:id/breadcrumb", handler.GetBreadcrumb)
}

// InitWithAuth mounts the back-office routes behind the caller's auth group
func InitWithAuth(r *gin.RouterGroup, deps Dependencies) {
	handler := buildHandler(deps)

	categoriesGroup := r.Group("/categories")
	categoriesGroup.POST("", handler.CreateCategory)
	categoriesGroup.POST("/bulk", handler.BulkImport)
	categoriesGroup.GET("/stats", handler.GetStats)
	categoriesGroup.PUT("/:id", handler.UpdateCategory)
	categoriesGroup.DELETE("/:id", handler.DeleteCategory)
}
