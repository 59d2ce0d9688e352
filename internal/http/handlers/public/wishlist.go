package public

import (
	"errors"
	"strconv"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "心愿单获取失败", err)
		return
	}
	response.Success(c, items)
}

// AddWishlistItemRequest 加入心愿单请求
type AddWishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddWishlistItem 加入心愿单，重复添加视为成功
func (h *Handler) AddWishlistItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if err := h.WishlistService.AddItem(userID, req.ProductID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, service.ErrProductNotFound.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "心愿单添加失败", err)
		return
	}
	response.Success(c, nil)
}

// RemoveWishlistItem 移除心愿单项
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 不合法", nil)
		return
	}

	if err := h.WishlistService.RemoveItem(userID, uint(productID)); err != nil {
		respondError(c, response.CodeInternal, "心愿单移除失败", err)
		return
	}
	response.Success(c, nil)
}
