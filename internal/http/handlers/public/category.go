package public

import (
	"errors"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "分类列表获取失败", err)
		return
	}
	response.Success(c, categories)
}

// GetCategoryBySlug 根据 slug 获取分类详情
func (h *Handler) GetCategoryBySlug(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.CategoryService.GetCategoryBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, service.ErrCategoryNotFound.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "分类详情获取失败", err)
		return
	}
	response.Success(c, category)
}
