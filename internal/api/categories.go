package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"` // Unique label
}

// CreateCategoryHandler adds a category
func CreateCategoryHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest
		if !bindJSON(c, &req) {
			return
		}
		cat, err := categories.CreateCategory(c.Request.Context(), req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

// GetCategoryHandler returns a category by id
func GetCategoryHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		cat, err := categories.GetCategory(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// ListCategoriesHandler returns all categories
func ListCategoriesHandler(categories CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := categories.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
