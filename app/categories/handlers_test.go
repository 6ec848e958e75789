package categories_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradelane/storefront/app/categories"
	"github.com/tradelane/storefront/models"
	"github.com/tradelane/storefront/tests/mocks"
)

type HandlerTestSuite struct {
	suite.Suite
	service *mocks.MockCategoryService
	router  *gin.Engine
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.service = &mocks.MockCategoryService{}
	handler := categories.NewHandler(suite.service)

	suite.router = gin.New()
	group := suite.router.Group("/categories")
	group.GET("", handler.ListCategories)
	group.POST("", handler.CreateCategory)
	group.POST("/bulk", handler.BulkImport)
	group.GET("/tree", handler.GetActiveTree)
	group.GET("/search", handler.SearchCategories)
	group.GET("/stats", handler.GetStats)
	group.GET("/slug/:slug", handler.GetCategoryBySlug)
	group.GET("/:id", handler.GetCategoryByID)
	group.GET("/:id/breadcrumb", handler.GetBreadcrumb)
	group.PUT("/:id", handler.UpdateCategory)
	group.DELETE("/:id", handler.DeleteCategory)
}

func (suite *HandlerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestCreateCategory_Success() {
	resp := &categories.CategoryResponse{ID: uuid.New(), Name: "Electronics"}
	suite.service.On("CreateCategory", mock.Anything, mock.AnythingOfType("*categories.CreateCategoryRequest")).
		Return(resp, nil)

	w := suite.request(http.MethodPost, "/categories", gin.H{"name": "Electronics"})

	suite.Equal(http.StatusCreated, w.Code)
	suite.service.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateCategory_ValidationFailure() {
	w := suite.request(http.MethodPost, "/categories", gin.H{"name": "x"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.service.AssertNotCalled(suite.T(), "CreateCategory")
}

func (suite *HandlerTestSuite) TestCreateCategory_DuplicateName() {
	suite.service.On("CreateCategory", mock.Anything, mock.Anything).
		Return(nil, models.ErrDuplicateCategoryName)

	w := suite.request(http.MethodPost, "/categories", gin.H{"name": "Electronics"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetCategoryByID_BadID() {
	w := suite.request(http.MethodGet, "/categories/not-a-uuid", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.service.AssertNotCalled(suite.T(), "GetCategoryByID")
}

func (suite *HandlerTestSuite) TestGetCategoryByID_NotFound() {
	id := uuid.New()
	suite.service.On("GetCategoryByID", mock.Anything, id).Return(nil, models.ErrRecordNotFound)

	w := suite.request(http.MethodGet, "/categories/"+id.String(), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetCategoryBySlug_Success() {
	resp := &categories.CategoryResponse{ID: uuid.New(), Name: "Electronics"}
	suite.service.On("GetCategoryBySlug", mock.Anything, "electronics").Return(resp, nil)

	w := suite.request(http.MethodGet, "/categories/slug/electronics", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListCategories_PaginationMeta() {
	suite.service.On("ListCategories", mock.Anything, mock.AnythingOfType("*categories.CategoryFilters")).
		Return(&categories.CategoryListResponse{
			Items:      []categories.CategoryResponse{},
			Total:      45,
			Page:       2,
			PerPage:    20,
			TotalPages: 3,
		}, nil)

	w := suite.request(http.MethodGet, "/categories?page=2&per_page=20", nil)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Meta struct {
			Page       int   `json:"page"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
			HasNext    bool  `json:"has_next"`
			HasPrev    bool  `json:"has_prev"`
		} `json:"meta"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(2, body.Meta.Page)
	suite.Equal(int64(45), body.Meta.Total)
	suite.Equal(3, body.Meta.TotalPages)
	suite.True(body.Meta.HasNext)
	suite.True(body.Meta.HasPrev)
}

func (suite *HandlerTestSuite) TestGetActiveTree() {
	suite.service.On("GetActiveTree", mock.Anything).Return([]categories.TreeNode{
		{ID: uuid.New(), Name: "Electronics", Slug: "electronics"},
	}, nil)

	w := suite.request(http.MethodGet, "/categories/tree", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestGetBreadcrumb() {
	id := uuid.New()
	suite.service.On("GetBreadcrumb", mock.Anything, id).Return([]categories.BreadcrumbEntry{
		{ID: uuid.New(), Name: "Electronics", Slug: "electronics"},
		{ID: id, Name: "Laptops", Slug: "laptops"},
	}, nil)

	w := suite.request(http.MethodGet, "/categories/"+id.String()+"/breadcrumb", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestGetStats() {
	suite.service.On("GetStats", mock.Anything).Return(&categories.StatsResponse{
		Overview: categories.StatsOverview{Total: 5, Active: 4, Inactive: 1, Root: 2, Nested: 3},
	}, nil)

	w := suite.request(http.MethodGet, "/categories/stats", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestSearchCategories_DefaultLimit() {
	suite.service.On("SearchCategories", mock.Anything, "lap", 10).Return([]categories.SearchResult{}, nil)

	w := suite.request(http.MethodGet, "/categories/search?q=lap", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.service.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestUpdateCategory_CyclicParent() {
	id := uuid.New()
	suite.service.On("UpdateCategory", mock.Anything, id, mock.Anything).
		Return(nil, models.ErrCyclicParent)

	w := suite.request(http.MethodPut, "/categories/"+id.String(), gin.H{"parent_id": uuid.New().String()})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteCategory_HasSubcategories() {
	id := uuid.New()
	suite.service.On("DeleteCategory", mock.Anything, id).Return(nil, models.ErrHasSubcategories)

	w := suite.request(http.MethodDelete, "/categories/"+id.String(), nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteCategory_Success() {
	id := uuid.New()
	suite.service.On("DeleteCategory", mock.Anything, id).
		Return(&categories.CategoryResponse{ID: id, Name: "Archive"}, nil)

	w := suite.request(http.MethodDelete, "/categories/"+id.String(), nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestBulkImport_AllImported() {
	suite.service.On("BulkImport", mock.Anything, mock.AnythingOfType("[]categories.CreateCategoryRequest")).
		Return(&categories.BulkImportResult{
			Success: []categories.BulkImportSuccess{{Index: 0, ID: uuid.New(), Name: "Electronics"}},
			Errors:  []categories.BulkImportError{},
		}, nil)

	w := suite.request(http.MethodPost, "/categories/bulk", []gin.H{{"name": "Electronics"}})

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestBulkImport_PartialFailure() {
	suite.service.On("BulkImport", mock.Anything, mock.Anything).
		Return(&categories.BulkImportResult{
			Success: []categories.BulkImportSuccess{{Index: 0, ID: uuid.New(), Name: "Electronics"}},
			Errors:  []categories.BulkImportError{{Index: 1, Error: "duplicate"}},
		}, nil)

	w := suite.request(http.MethodPost, "/categories/bulk", []gin.H{{"name": "Electronics"}, {"name": "Electronics"}})

	suite.Equal(http.StatusOK, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
