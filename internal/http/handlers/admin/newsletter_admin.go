package admin

import (
	"strconv"

	"github.com/openmart/openmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListNewsletterSubscribers 后台订阅列表，only_active=true 时只返回有效订阅
func (h *Handler) ListNewsletterSubscribers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("only_active", "false"))

	subscribers, total, err := h.NewsletterService.ListSubscribers(page, pageSize, onlyActive)
	if err != nil {
		respondError(c, response.CodeInternal, "订阅列表获取失败", err)
		return
	}
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, subscribers, pagination)
}
