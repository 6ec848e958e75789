package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tradelane/storefront/internal/cache"
	"github.com/tradelane/storefront/internal/logger"
	"github.com/tradelane/storefront/internal/sanitizer"
	valkit "github.com/tradelane/storefront/internal/validator"
	"github.com/tradelane/storefront/models"
)

const (
	treeCacheKey = "categories:active-tree"
	treeCacheTTL = 5 * time.Minute
)

// service implements the Service interface. It is stateless between calls;
// every invariant check reads the store, and the unique indexes in the
// migration close the remaining check-then-act races.
type service struct {
	repo       Repository
	treeCache  cache.Cache[[]TreeNode]
	stripper   sanitizer.HTMLStripperer
	logger     logger.Logger
	refChecker ReferenceChecker
}

// NewService creates a new category hierarchy service. treeCache and
// refChecker may be nil; log may be nil for a silent service.
func NewService(
	repo Repository,
	treeCache cache.Cache[[]TreeNode],
	stripper sanitizer.HTMLStripperer,
	log logger.Logger,
	refChecker ReferenceChecker,
) Service {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &service{
		repo:       repo,
		treeCache:  treeCache,
		stripper:   stripper,
		logger:     log,
		refChecker: refChecker,
	}
}

// CreateCategory creates a new category after enforcing sibling-name and
// global slug uniqueness.
func (s *service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*CategoryResponse, error) {
	name := s.cleanText(req.Name)
	if !valkit.NotBlank(name) {
		return nil, models.ErrInvalidCategoryName
	}
	description := s.cleanText(req.Description)

	var parent *models.Category
	if req.ParentID != nil {
		var err error
		parent, err = s.repo.GetNode(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrInvalidParentID
			}
			return nil, fmt.Errorf("failed to resolve parent category: %w", err)
		}
	}

	if err := s.checkSiblingName(ctx, req.ParentID, name, uuid.Nil); err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(req, name)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, slug, uuid.Nil); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        name,
		Description: description,
		ParentID:    req.ParentID,
		IsActive:    true,
		Slug:        slug,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	s.applySEODefaults(category, req.SEO)

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateTree(ctx)
	s.logger.Info("category created", logger.Fields{
		"category_id": category.ID.String(),
		"slug":        category.Slug,
	})

	category.Parent = parent
	return ToCategoryResponse(category), nil
}

// GetCategoryByID returns a category with resolved parent and children
func (s *service) GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return ToCategoryResponse(category), nil
}

// GetCategoryBySlug returns a category by its slug
func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return ToCategoryResponse(category), nil
}

// ListCategories returns a filtered, sorted, paginated category listing
func (s *service) ListCategories(ctx context.Context, filters *CategoryFilters) (*CategoryListResponse, error) {
	filters.Normalize()

	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))
	return &CategoryListResponse{
		Items:      ToCategoryResponseList(items),
		Total:      total,
		Page:       filters.Page,
		PerPage:    filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetActiveTree returns the shopper-facing navigation tree: active roots with
// recursively nested active children, name-sorted at every level. Children of
// an inactive category are pruned with it regardless of their own flag.
func (s *service) GetActiveTree(ctx context.Context) ([]TreeNode, error) {
	if s.treeCache != nil {
		if tree, err := s.treeCache.Get(ctx, treeCacheKey); err == nil {
			return tree, nil
		}
	}

	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active categories: %w", err)
	}

	// items arrive name-sorted, so sibling order falls out of append order.
	byParent := make(map[uuid.UUID][]*models.Category)
	var roots []*models.Category
	for i := range items {
		c := &items[i]
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	var build func(c *models.Category) TreeNode
	build = func(c *models.Category) TreeNode {
		node := TreeNode{ID: c.ID, Name: c.Name, Slug: c.Slug}
		for _, child := range byParent[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]TreeNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}

	if s.treeCache != nil {
		if err := s.treeCache.Set(ctx, treeCacheKey, tree, treeCacheTTL); err != nil {
			s.logger.Debug("tree cache set failed", logger.Fields{"error": err.Error()})
		}
	}
	return tree, nil
}

// UpdateCategory applies a partial update, re-validating uniqueness and
// hierarchy invariants for the fields that change.
func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	explicitSlug := req.SEO != nil && req.SEO.Slug != nil

	if req.Name != nil {
		name := s.cleanText(*req.Name)
		if !valkit.NotBlank(name) {
			return nil, models.ErrInvalidCategoryName
		}
		if name != category.Name {
			if err := s.checkSiblingName(ctx, category.ParentID, name, id); err != nil {
				return nil, err
			}
			if !explicitSlug {
				newSlug := Slugify(name)
				if newSlug == "" {
					return nil, models.ErrInvalidCategorySlug
				}
				if newSlug != category.Slug {
					if err := s.checkSlug(ctx, newSlug, id); err != nil {
						return nil, err
					}
					category.Slug = newSlug
				}
			}
			category.Name = name
		}
	}

	if explicitSlug && *req.SEO.Slug != category.Slug {
		slug := strings.TrimSpace(*req.SEO.Slug)
		if !valkit.Matches(slug, valkit.SlugRgx) {
			return nil, models.ErrInvalidCategorySlug
		}
		if err := s.checkSlug(ctx, slug, id); err != nil {
			return nil, err
		}
		category.Slug = slug
	}

	if req.ParentID != nil || req.ClearParent {
		if err := s.reparent(ctx, category, req); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		category.Description = s.cleanText(*req.Description)
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.SEO != nil {
		if req.SEO.MetaTitle != nil {
			category.MetaTitle = s.cleanText(*req.SEO.MetaTitle)
		}
		if req.SEO.MetaDescription != nil {
			category.MetaDescription = s.cleanText(*req.SEO.MetaDescription)
		}
		if req.SEO.Keywords != nil {
			category.Keywords = req.SEO.Keywords
		}
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateTree(ctx)
	s.logger.Info("category updated", logger.Fields{
		"category_id": category.ID.String(),
	})

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload category: %w", err)
	}
	return ToCategoryResponse(updated), nil
}

func (s *service) reparent(ctx context.Context, category *models.Category, req *UpdateCategoryRequest) error {
	if req.ClearParent {
		category.ParentID = nil
		category.Parent = nil
		return nil
	}

	newParentID := *req.ParentID
	if newParentID == category.ID {
		return models.ErrSelfParent
	}

	if _, err := s.repo.GetNode(ctx, newParentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrInvalidParentID
		}
		return fmt.Errorf("failed to resolve new parent: %w", err)
	}

	// Moving under one of our own descendants would close a cycle.
	descendant, err := s.IsDescendant(ctx, newParentID, category.ID)
	if err != nil {
		return err
	}
	if descendant {
		return models.ErrCyclicParent
	}

	category.ParentID = &newParentID
	category.Parent = nil
	return nil
}

// DeleteCategory removes a childless, unreferenced category
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count subcategories: %w", err)
	}
	if children > 0 {
		return nil, models.ErrHasSubcategories
	}

	if s.refChecker != nil {
		inUse, err := s.refChecker(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("reference check failed: %w", err)
		}
		if inUse {
			return nil, models.ErrCategoryInUse
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateTree(ctx)
	s.logger.Info("category deleted", logger.Fields{
		"category_id": id.String(),
		"slug":        category.Slug,
	})
	return ToCategoryResponse(category), nil
}

// IsDescendant reports whether ancestorID appears on the parent chain above
// categoryID. The walk is iterative with a visited set: a revisit means the
// stored hierarchy already holds a cycle and is reported as corruption.
func (s *service) IsDescendant(ctx context.Context, categoryID, ancestorID uuid.UUID) (bool, error) {
	visited := map[uuid.UUID]struct{}{categoryID: {}}

	current, err := s.repo.GetNode(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.ErrRecordNotFound
		}
		return false, fmt.Errorf("failed to walk hierarchy: %w", err)
	}

	for current.ParentID != nil {
		parentID := *current.ParentID
		if parentID == ancestorID {
			return true, nil
		}
		if _, seen := visited[parentID]; seen {
			s.logger.Error(models.ErrCorruptHierarchy, logger.Fields{
				"category_id": categoryID.String(),
				"revisited":   parentID.String(),
			})
			return false, models.ErrCorruptHierarchy
		}
		visited[parentID] = struct{}{}

		current, err = s.repo.GetNode(ctx, parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dangling parent pointer: treat the chain as ended.
				return false, nil
			}
			return false, fmt.Errorf("failed to walk hierarchy: %w", err)
		}
	}

	return false, nil
}

// GetBreadcrumb returns the root-first ancestry chain ending at id. An
// unknown id yields an empty chain rather than an error.
func (s *service) GetBreadcrumb(ctx context.Context, id uuid.UUID) ([]BreadcrumbEntry, error) {
	trail := []BreadcrumbEntry{}
	visited := make(map[uuid.UUID]struct{})

	current, err := s.repo.GetNode(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trail, nil
		}
		return nil, fmt.Errorf("failed to walk hierarchy: %w", err)
	}

	for {
		if _, seen := visited[current.ID]; seen {
			return nil, models.ErrCorruptHierarchy
		}
		visited[current.ID] = struct{}{}

		trail = append([]BreadcrumbEntry{{
			ID:   current.ID,
			Name: current.Name,
			Slug: current.Slug,
		}}, trail...)

		if current.ParentID == nil {
			return trail, nil
		}

		current, err = s.repo.GetNode(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return trail, nil
			}
			return nil, fmt.Errorf("failed to walk hierarchy: %w", err)
		}
	}
}

// GetStats returns aggregate counts and the two-bucket depth breakdown
func (s *service) GetStats(ctx context.Context) (*StatsResponse, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}

	nested := counts.Total - counts.Root
	return &StatsResponse{
		Overview: StatsOverview{
			Total:    counts.Total,
			Active:   counts.Active,
			Inactive: counts.Total - counts.Active,
			Root:     counts.Root,
			Nested:   nested,
		},
		DepthBreakdown: []DepthBucket{
			{Depth: 0, Count: counts.Root},
			{Depth: 1, Count: nested},
		},
	}, nil
}

// SearchCategories returns an active-only projection for autocomplete UIs
func (s *service) SearchCategories(ctx context.Context, term string, limit int) ([]SearchResult, error) {
	if !valkit.NotBlank(term) {
		return []SearchResult{}, nil
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	items, err := s.repo.SearchActive(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}

	results := make([]SearchResult, 0, len(items))
	for i := range items {
		results = append(results, ToSearchResult(&items[i]))
	}
	return results, nil
}

// BulkImport attempts each record independently; one bad record never aborts
// the batch. Indexes tie successes and errors back to the input order.
func (s *service) BulkImport(ctx context.Context, records []CreateCategoryRequest) (*BulkImportResult, error) {
	result := &BulkImportResult{
		Success: []BulkImportSuccess{},
		Errors:  []BulkImportError{},
	}

	for i := range records {
		record := records[i]
		created, err := s.CreateCategory(ctx, &record)
		if err != nil {
			result.Errors = append(result.Errors, BulkImportError{
				Index: i,
				Input: record,
				Error: err.Error(),
			})
			continue
		}
		result.Success = append(result.Success, BulkImportSuccess{
			Index: i,
			ID:    created.ID,
			Name:  created.Name,
		})
	}

	s.logger.Info("bulk import finished", logger.Fields{
		"imported": len(result.Success),
		"rejected": len(result.Errors),
	})
	return result, nil
}

// checkSiblingName fails when another category under the same parent carries
// the same name, ignoring case. selfID excludes the category being updated.
func (s *service) checkSiblingName(ctx context.Context, parentID *uuid.UUID, name string, selfID uuid.UUID) error {
	existing, err := s.repo.FindSibling(ctx, parentID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check sibling names: %w", err)
	}
	if existing.ID != selfID {
		return models.ErrDuplicateCategoryName
	}
	return nil
}

// checkSlug fails when slug is already taken by another category.
func (s *service) checkSlug(ctx context.Context, slug string, selfID uuid.UUID) error {
	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if existing.ID != selfID {
		return models.ErrDuplicateCategorySlug
	}
	return nil
}

// resolveSlug uses the explicit slug when supplied, otherwise derives one
// from the name.
func (s *service) resolveSlug(req *CreateCategoryRequest, name string) (string, error) {
	if req.SEO != nil && req.SEO.Slug != "" {
		slug := strings.TrimSpace(req.SEO.Slug)
		if !valkit.Matches(slug, valkit.SlugRgx) {
			return "", models.ErrInvalidCategorySlug
		}
		return slug, nil
	}

	slug := Slugify(name)
	if slug == "" {
		return "", models.ErrInvalidCategorySlug
	}
	return slug, nil
}

func (s *service) applySEODefaults(category *models.Category, seo *SEORequest) {
	if seo != nil {
		category.MetaTitle = s.cleanText(seo.MetaTitle)
		category.MetaDescription = s.cleanText(seo.MetaDescription)
		category.Keywords = seo.Keywords
	}
	if category.MetaTitle == "" {
		category.MetaTitle = category.Name
	}
	if category.MetaDescription == "" {
		if category.Description != "" {
			category.MetaDescription = category.Description
		} else {
			category.MetaDescription = fmt.Sprintf("Shop %s products", category.Name)
		}
	}
	if len(category.Keywords) == 0 {
		category.Keywords = []string{strings.ToLower(category.Name)}
	}
}

func (s *service) cleanText(value string) string {
	if s.stripper == nil {
		return strings.TrimSpace(value)
	}
	return s.stripper.StripHTML(value)
}

func (s *service) invalidateTree(ctx context.Context) {
	if s.treeCache == nil {
		return
	}
	if err := s.treeCache.Delete(ctx, treeCacheKey); err != nil {
		s.logger.Debug("tree cache invalidation failed", logger.Fields{"error": err.Error()})
	}
}
