package categories

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradelane/storefront/models"
)

// SEORequest carries optional SEO overrides on create
type SEORequest struct {
	Slug            string   `json:"slug,omitempty" binding:"omitempty,max=160"`
	MetaTitle       string   `json:"meta_title,omitempty" binding:"omitempty,max=160"`
	MetaDescription string   `json:"meta_description,omitempty" binding:"omitempty,max=320"`
	Keywords        []string `json:"keywords,omitempty"`
}

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Name        string      `json:"name" binding:"required,min=2,max=100"`
	Description string      `json:"description,omitempty" binding:"omitempty,max=2000"`
	ParentID    *uuid.UUID  `json:"parent_id,omitempty"`
	IsActive    *bool       `json:"is_active,omitempty"`
	SEO         *SEORequest `json:"seo,omitempty"`
}

// SEOPatch carries optional SEO changes on update
type SEOPatch struct {
	Slug            *string  `json:"slug,omitempty" binding:"omitempty,max=160"`
	MetaTitle       *string  `json:"meta_title,omitempty" binding:"omitempty,max=160"`
	MetaDescription *string  `json:"meta_description,omitempty" binding:"omitempty,max=320"`
	Keywords        []string `json:"keywords,omitempty"`
}

// UpdateCategoryRequest represents the request to update a category.
// ParentID moves the category under a new parent; ClearParent promotes it to
// a root category. The two are mutually exclusive.
type UpdateCategoryRequest struct {
	Name        *string    `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=2000"`
	IsActive    *bool      `json:"is_active,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	ClearParent bool       `json:"clear_parent,omitempty"`
	SEO         *SEOPatch  `json:"seo,omitempty"`
}

// ParentRef is a minimal reference to a parent category
type ParentRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ChildRef is a minimal reference to a child category
type ChildRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	IsActive bool      `json:"is_active"`
}

// SEOResponse nests the SEO attributes in API responses
type SEOResponse struct {
	Slug            string   `json:"slug"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
}

// CategoryResponse represents the response for category data
type CategoryResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ParentID    *uuid.UUID  `json:"parent_id,omitempty"`
	IsActive    bool        `json:"is_active"`
	SEO         SEOResponse `json:"seo"`
	Parent      *ParentRef  `json:"parent,omitempty"`
	Children    []ChildRef  `json:"children,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CategoryFilters represents filters for category list queries.
// ParentID accepts a category id or the sentinel "root" to select only
// root categories.
type CategoryFilters struct {
	IsActive  *bool  `form:"is_active"`
	ParentID  string `form:"parent_id"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// ParentRoot is the ParentID sentinel selecting root categories only.
const ParentRoot = "root"

// Normalize applies pagination and sorting defaults in place.
func (f *CategoryFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}
	if f.PerPage > 100 {
		f.PerPage = 100
	}
	if f.SortBy == "" {
		f.SortBy = "name"
	}
	if f.SortOrder == "" {
		f.SortOrder = "asc"
	}
}

// CategoryListResponse is a page of categories
type CategoryListResponse struct {
	Items      []CategoryResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
}

// TreeNode is one node of the shopper-facing navigation tree
type TreeNode struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Children []TreeNode `json:"children,omitempty"`
}

// BreadcrumbEntry is one hop of a root-first ancestry chain
type BreadcrumbEntry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// StatsOverview aggregates category counts
type StatsOverview struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Root     int64 `json:"root"`
	Nested   int64 `json:"nested"`
}

// DepthBucket counts categories at a hierarchy depth. Depth 1 covers every
// non-root category, matching the two-bucket breakdown the admin UI shows.
type DepthBucket struct {
	Depth int   `json:"depth"`
	Count int64 `json:"count"`
}

// StatsResponse is the admin statistics payload
type StatsResponse struct {
	Overview       StatsOverview `json:"overview"`
	DepthBreakdown []DepthBucket `json:"depth_breakdown"`
}

// SearchResult is a lightweight projection for autocomplete UIs
type SearchResult struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Slug        string     `json:"slug"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Parent      *ParentRef `json:"parent,omitempty"`
}

// BulkImportSuccess records one imported category
type BulkImportSuccess struct {
	Index int       `json:"index"`
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
}

// BulkImportError records one rejected record alongside its input
type BulkImportError struct {
	Index int                   `json:"index"`
	Input CreateCategoryRequest `json:"input"`
	Error string                `json:"error"`
}

// BulkImportResult collects per-record outcomes of a batch import
type BulkImportResult struct {
	Success []BulkImportSuccess `json:"success"`
	Errors  []BulkImportError   `json:"errors"`
}

// ToParentRef converts a category to a minimal parent reference
func ToParentRef(category *models.Category) *ParentRef {
	if category == nil {
		return nil
	}
	return &ParentRef{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	}
}

// ToCategoryResponse converts a models.Category to CategoryResponse
func ToCategoryResponse(category *models.Category) *CategoryResponse {
	resp := &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ParentID:    category.ParentID,
		IsActive:    category.IsActive,
		SEO: SEOResponse{
			Slug:            category.Slug,
			MetaTitle:       category.MetaTitle,
			MetaDescription: category.MetaDescription,
			Keywords:        category.Keywords,
		},
		Parent:    ToParentRef(category.Parent),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}

	for i := range category.Children {
		child := &category.Children[i]
		resp.Children = append(resp.Children, ChildRef{
			ID:       child.ID,
			Name:     child.Name,
			Slug:     child.Slug,
			IsActive: child.IsActive,
		})
	}

	return resp
}

// ToCategoryResponseList converts a slice of models.Category to CategoryResponse
func ToCategoryResponseList(categories []models.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses
}

// ToSearchResult converts a category to its autocomplete projection
func ToSearchResult(category *models.Category) SearchResult {
	return SearchResult{
		Name:        category.Name,
		Description: category.Description,
		Slug:        category.Slug,
		ParentID:    category.ParentID,
		Parent:      ToParentRef(category.Parent),
	}
}
