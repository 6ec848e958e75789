package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a node in the storefront category forest. A nil
// ParentID marks a root category; children are the rows whose parent_id
// points back at this row.
type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index:idx_categories_parent" json:"parent_id,omitempty"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`

	// SEO attributes live flat on the row; DTOs nest them under "seo".
	Slug            string   `gorm:"type:varchar(160);not null;uniqueIndex:idx_categories_slug" json:"slug"`
	MetaTitle       string   `gorm:"type:varchar(160)" json:"meta_title"`
	MetaDescription string   `gorm:"type:varchar(320)" json:"meta_description"`
	Keywords        []string `gorm:"serializer:json;type:jsonb" json:"keywords"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"-"`
}

// TableName specifies the table name for Category model
func (*Category) TableName() string {
	return "categories"
}

// BeforeCreate sets up the model before creation
func (c *Category) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Validate performs validation on the category model
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidCategoryName
	}
	if c.Slug == "" {
		return ErrInvalidCategorySlug
	}
	return nil
}

// IsValidSlug checks if the slug contains only valid characters
func (c *Category) IsValidSlug() bool {
	for _, char := range c.Slug {
		if !((char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '-') {
			return false
		}
	}
	return c.Slug != "" && !strings.HasPrefix(c.Slug, "-") && !strings.HasSuffix(c.Slug, "-")
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// HasSameName reports whether name matches the category name ignoring case.
func (c *Category) HasSameName(name string) bool {
	return strings.EqualFold(c.Name, strings.TrimSpace(name))
}
