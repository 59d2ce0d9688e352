package admin

import (
	"strconv"
	"strings"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListReviews 后台评价列表
func (h *Handler) ListReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ReviewListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if raw := strings.TrimSpace(c.Query("product_id")); raw != "" {
		productID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "商品 ID 不合法", nil)
			return
		}
		filter.ProductID = uint(productID)
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "用户 ID 不合法", nil)
			return
		}
		filter.UserID = uint(userID)
	}

	reviews, total, err := h.ReviewService.ListByProduct(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "评价列表获取失败", err)
		return
	}
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, reviews, pagination)
}

// DeleteReview 后台删除评价
func (h *Handler) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, response.CodeBadRequest, "评价 ID 不合法", nil)
		return
	}

	if err := h.ReviewService.DeleteReview(uint(reviewID)); err != nil {
		respondServiceError(c, err, "评价删除失败")
		return
	}
	response.Success(c, nil)
}
