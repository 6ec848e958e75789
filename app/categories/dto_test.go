package categories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tradelane/storefront/models"
)

func TestCategoryFilters_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   CategoryFilters
		want CategoryFilters
	}{
		{
			name: "defaults",
			in:   CategoryFilters{},
			want: CategoryFilters{Page: 1, PerPage: 20, SortBy: "name", SortOrder: "asc"},
		},
		{
			name: "per_page capped",
			in:   CategoryFilters{Page: 3, PerPage: 500},
			want: CategoryFilters{Page: 3, PerPage: 100, SortBy: "name", SortOrder: "asc"},
		},
		{
			name: "explicit values kept",
			in:   CategoryFilters{Page: 2, PerPage: 50, SortBy: "created_at", SortOrder: "desc"},
			want: CategoryFilters{Page: 2, PerPage: 50, SortBy: "created_at", SortOrder: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestToCategoryResponse(t *testing.T) {
	parentID := uuid.New()
	category := &models.Category{
		ID:              uuid.New(),
		Name:            "Laptops",
		Description:     "Portable computers",
		ParentID:        &parentID,
		IsActive:        true,
		Slug:            "laptops",
		MetaTitle:       "Laptops",
		MetaDescription: "Shop Laptops products",
		Keywords:        []string{"laptops"},
		Parent: &models.Category{
			ID: parentID, Name: "Electronics", Slug: "electronics",
		},
		Children: []models.Category{
			{ID: uuid.New(), Name: "Gaming Laptops", Slug: "gaming-laptops", IsActive: true},
		},
	}

	resp := ToCategoryResponse(category)

	assert.Equal(t, category.ID, resp.ID)
	assert.Equal(t, "laptops", resp.SEO.Slug)
	assert.Equal(t, []string{"laptops"}, resp.SEO.Keywords)
	assert.Equal(t, &parentID, resp.ParentID)
	if assert.NotNil(t, resp.Parent) {
		assert.Equal(t, "Electronics", resp.Parent.Name)
	}
	if assert.Len(t, resp.Children, 1) {
		assert.Equal(t, "Gaming Laptops", resp.Children[0].Name)
		assert.True(t, resp.Children[0].IsActive)
	}
}

func TestToCategoryResponse_Root(t *testing.T) {
	category := &models.Category{ID: uuid.New(), Name: "Electronics", Slug: "electronics"}

	resp := ToCategoryResponse(category)

	assert.Nil(t, resp.ParentID)
	assert.Nil(t, resp.Parent)
	assert.Empty(t, resp.Children)
}

func TestToSearchResult(t *testing.T) {
	parent := &models.Category{ID: uuid.New(), Name: "Electronics", Slug: "electronics"}
	category := &models.Category{
		Name:        "Laptops",
		Description: "Portable computers",
		Slug:        "laptops",
		ParentID:    &parent.ID,
		Parent:      parent,
	}

	result := ToSearchResult(category)

	assert.Equal(t, "Laptops", result.Name)
	assert.Equal(t, "laptops", result.Slug)
	if assert.NotNil(t, result.Parent) {
		assert.Equal(t, "electronics", result.Parent.Slug)
	}
}
