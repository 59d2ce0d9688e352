package public

import (
	"strconv"

	"github.com/openmart/openmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCart 获取购物车快照
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	snapshot, err := h.CartService.Snapshot(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "购物车获取失败", err)
		return
	}
	response.Success(c, snapshot)
}

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if err := h.CartService.AddItem(userID, req.ProductID, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}

	snapshot, err := h.CartService.Snapshot(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "购物车获取失败", err)
		return
	}
	response.Success(c, snapshot)
}

// UpdateCartItemRequest 更新购物车项请求
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCartItem 设置购物车项数量，数量为 0 时移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 不合法", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if err := h.CartService.SetQuantity(userID, uint(productID), *req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}

	snapshot, err := h.CartService.Snapshot(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "购物车获取失败", err)
		return
	}
	response.Success(c, snapshot)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 不合法", nil)
		return
	}

	if err := h.CartService.RemoveItem(userID, uint(productID)); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, nil)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(userID); err != nil {
		respondError(c, response.CodeInternal, "购物车清空失败", err)
		return
	}
	response.Success(c, nil)
}
