package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 下单商品项请求
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	PaymentMethod   string             `json:"payment_method" binding:"required"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	BillingAddress  string             `json:"billing_address"`
	CustomerNotes   string             `json:"customer_notes"`
	CouponCode      string             `json:"coupon_code"`
	// FromCart 为 true 时以购物车内容下单并在成功后清空购物车
	FromCart bool `json:"from_cart"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	input := service.CreateOrderInput{
		UserID:          userID,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		CustomerNotes:   req.CustomerNotes,
		CouponCode:      req.CouponCode,
	}

	var order *models.Order
	var err error
	if req.FromCart {
		order, err = h.OrderService.CreateOrderFromCart(input)
	} else {
		items := make([]service.CreateOrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, service.CreateOrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		input.Items = items
		order, err = h.OrderService.CreateOrder(input)
	}
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Success(c, order)
}

// ListMyOrders 获取用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.TrimSpace(c.Query("status")),
	}

	orders, total, err := h.OrderService.ListOrdersByUser(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "订单列表获取失败", err)
		return
	}
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetMyOrder 获取用户订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 不合法", nil)
		return
	}

	order, err := h.OrderService.GetOrderForUser(uint(orderID), userID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, service.ErrOrderNotFound.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "订单详情获取失败", err)
		return
	}
	response.Success(c, order)
}

// GetMyOrderByNumber 按订单编号获取用户订单详情
func (h *Handler) GetMyOrderByNumber(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderNumber := strings.TrimSpace(c.Param("order_number"))
	if orderNumber == "" {
		respondError(c, response.CodeBadRequest, "订单编号不合法", nil)
		return
	}

	order, err := h.OrderService.GetOrderByNumberForUser(orderNumber, userID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, service.ErrOrderNotFound.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "订单详情获取失败", err)
		return
	}
	response.Success(c, order)
}

// CancelMyOrder 用户取消订单，仅限待处理状态
func (h *Handler) CancelMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 不合法", nil)
		return
	}

	order, err := h.OrderService.CancelOrderByUser(uint(orderID), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, service.ErrOrderNotFound.Error(), nil)
		case errors.Is(err, service.ErrOrderNotCancellable):
			respondError(c, response.CodeBadRequest, service.ErrOrderNotCancellable.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "订单取消失败", err)
		}
		return
	}
	response.Success(c, order)
}
