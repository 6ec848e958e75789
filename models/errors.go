package models

import "errors"

var (
	ErrInvalidCategoryName = errors.New("invalid category name")
	ErrInvalidCategorySlug = errors.New("invalid category slug")
	ErrInvalidParentID     = errors.New("parent category does not exist")

	ErrDuplicateCategoryName = errors.New("category with this name already exists under the same parent")
	ErrDuplicateCategorySlug = errors.New("category with this slug already exists")

	ErrSelfParent       = errors.New("category cannot be its own parent")
	ErrCyclicParent     = errors.New("category cannot be moved under one of its own descendants")
	ErrHasSubcategories = errors.New("category has subcategories; move or delete them first")
	ErrCategoryInUse    = errors.New("category is referenced by other records")

	// ErrCorruptHierarchy means an ancestry walk revisited a node: the stored
	// parent graph already contains a cycle and needs repair.
	ErrCorruptHierarchy = errors.New("category hierarchy contains a cycle")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")

	ErrRecordNotFound = errors.New("record not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
)
