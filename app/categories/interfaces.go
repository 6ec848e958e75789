package categories

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradelane/storefront/models"
)

// ReferenceChecker reports whether external records (products, promotions)
// still reference a category. The catalog owns that data, so the check is
// injected rather than hard-coded; a nil checker skips it.
type ReferenceChecker func(ctx context.Context, categoryID uuid.UUID) (bool, error)

// HierarchyCounts carries the raw aggregates behind GetStats.
type HierarchyCounts struct {
	Total  int64
	Active int64
	Root   int64
}

// Repository defines the interface for category data access
type Repository interface {
	// GetByID returns a category with its parent and children resolved.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// GetNode returns a bare category row, used by ancestry walks.
	GetNode(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// GetBySlug returns a category with its parent and children resolved.
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// FindBySlug returns the bare row holding slug, for uniqueness checks.
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	// FindSibling returns the category under parentID (nil = root bucket)
	// whose name matches case-insensitively.
	FindSibling(ctx context.Context, parentID *uuid.UUID, name string) (*models.Category, error)
	List(ctx context.Context, filters *CategoryFilters) ([]models.Category, int64, error)
	// ListActive returns every active category ordered by name.
	ListActive(ctx context.Context) ([]models.Category, error)
	// SearchActive matches active categories on name, description or
	// keywords, ordered by name, with parents resolved.
	SearchActive(ctx context.Context, term string, limit int) ([]models.Category, error)
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)
	Counts(ctx context.Context) (*HierarchyCounts, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines the interface for category hierarchy business logic
type Service interface {
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*CategoryResponse, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*CategoryResponse, error)
	ListCategories(ctx context.Context, filters *CategoryFilters) (*CategoryListResponse, error)
	GetActiveTree(ctx context.Context) ([]TreeNode, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error)
	IsDescendant(ctx context.Context, categoryID, ancestorID uuid.UUID) (bool, error)
	GetBreadcrumb(ctx context.Context, id uuid.UUID) ([]BreadcrumbEntry, error)
	GetStats(ctx context.Context) (*StatsResponse, error)
	SearchCategories(ctx context.Context, term string, limit int) ([]SearchResult, error)
	BulkImport(ctx context.Context, records []CreateCategoryRequest) (*BulkImportResult, error)
}
