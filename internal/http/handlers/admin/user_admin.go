package admin

import (
	"strconv"
	"strings"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListUsers 后台用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
	}

	users, total, err := h.UserService.ListUsers(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "用户列表获取失败", err)
		return
	}
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, users, pagination)
}

// SetUserStatusRequest 用户状态更新请求
type SetUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetUserStatus 后台启用或禁用用户，禁用后认证缓存即时失效
func (h *Handler) SetUserStatus(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "用户 ID 不合法", nil)
		return
	}
	var req SetUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if err := h.UserService.SetUserStatus(uint(userID), req.Status); err != nil {
		respondServiceError(c, err, "用户状态更新失败")
		return
	}
	response.Success(c, nil)
}
