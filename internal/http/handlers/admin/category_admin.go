package admin

import (
	"strconv"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类写入请求
type CategoryRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

// ListCategories 后台分类列表（含停用分类）
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAllCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "分类列表获取失败", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 后台创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	category, err := h.CategoryService.CreateCategory(req.toInput())
	if err != nil {
		respondServiceError(c, err, "分类创建失败")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 后台更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "分类 ID 不合法", nil)
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	category, err := h.CategoryService.UpdateCategory(uint(categoryID), req.toInput())
	if err != nil {
		respondServiceError(c, err, "分类更新失败")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 后台删除分类，分类下仍有商品时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "分类 ID 不合法", nil)
		return
	}

	if err := h.CategoryService.DeleteCategory(uint(categoryID)); err != nil {
		respondServiceError(c, err, "分类删除失败")
		return
	}
	response.Success(c, nil)
}
