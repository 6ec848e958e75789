package categories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tradelane/storefront/internal/validator"
	"github.com/tradelane/storefront/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new category repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// GetByID returns a category by ID with parent and children resolved
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetNode returns a bare category row
func (r *repository) GetNode(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBySlug returns a category by slug with parent and children resolved
func (r *repository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("slug = ?", slug).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindBySlug returns the bare row holding slug
func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindSibling returns the category with the same name under the same parent,
// matching case-insensitively. A nil parentID selects the root bucket.
func (r *repository) FindSibling(ctx context.Context, parentID *uuid.UUID, name string) (*models.Category, error) {
	query := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name))

	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var category models.Category
	if err := query.First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns categories matching filters, with the total before paging
func (r *repository) List(ctx context.Context, filters *CategoryFilters) ([]models.Category, int64, error) {
	filters.Normalize()

	var items []models.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Category{})
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(r.sortExpression(filters)).
		Offset((filters.Page - 1) * filters.PerPage).
		Limit(filters.PerPage).
		Preload("Parent")

	err := query.Find(&items).Error
	return items, total, err
}

func (r *repository) applyFilters(query *gorm.DB, filters *CategoryFilters) *gorm.DB {
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	switch {
	case filters.ParentID == ParentRoot:
		query = query.Where("parent_id IS NULL")
	case filters.ParentID != "":
		if parentID, err := uuid.Parse(filters.ParentID); err == nil {
			query = query.Where("parent_id = ?", parentID)
		}
	}

	if term := strings.TrimSpace(filters.Search); term != "" {
		pattern := "%" + term + "%"
		query = query.Where(
			"name ILIKE ? OR description ILIKE ? OR keywords::text ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	return query
}

func (r *repository) sortExpression(filters *CategoryFilters) string {
	column := "name"
	if validator.In(filters.SortBy, "name", "created_at", "updated_at") {
		column = filters.SortBy
	}
	direction := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}

// ListActive returns every active category ordered by name
func (r *repository) ListActive(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// SearchActive matches active categories for autocomplete
func (r *repository) SearchActive(ctx context.Context, term string, limit int) ([]models.Category, error) {
	pattern := "%" + strings.TrimSpace(term) + "%"
	var items []models.Category
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Where("is_active = ?", true).
		Where(
			"name ILIKE ? OR description ILIKE ? OR keywords::text ILIKE ?",
			pattern, pattern, pattern,
		).
		Order("name ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// CountChildren returns the number of direct children of a category
func (r *repository) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

// Counts returns the aggregates behind the statistics endpoint
func (r *repository) Counts(ctx context.Context) (*HierarchyCounts, error) {
	counts := &HierarchyCounts{}
	model := r.db.WithContext(ctx).Model(&models.Category{})

	if err := model.Session(&gorm.Session{}).Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := model.Session(&gorm.Session{}).Where("is_active = ?", true).Count(&counts.Active).Error; err != nil {
		return nil, err
	}
	if err := model.Session(&gorm.Session{}).Where("parent_id IS NULL").Count(&counts.Root).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// Create creates a new category
func (r *repository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update updates an existing category. Associations are omitted so a row
// loaded with resolved parent/children never writes back into those rows.
func (r *repository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error
}

// Delete deletes a category by ID
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}
