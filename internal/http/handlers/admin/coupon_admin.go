package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/repository"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponRequest 优惠券写入请求
type CouponRequest struct {
	Code       string     `json:"code" binding:"required"`
	Type       string     `json:"type" binding:"required"`
	Value      string     `json:"value" binding:"required"`
	MinAmount  string     `json:"min_amount"`
	UsageLimit int        `json:"usage_limit"`
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
	IsActive   bool       `json:"is_active"`
}

func (r CouponRequest) toInput() (service.CouponInput, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(r.Value))
	if err != nil {
		return service.CouponInput{}, err
	}
	minAmount := decimal.Zero
	if raw := strings.TrimSpace(r.MinAmount); raw != "" {
		minAmount, err = decimal.NewFromString(raw)
		if err != nil {
			return service.CouponInput{}, err
		}
	}
	return service.CouponInput{
		Code:       r.Code,
		Type:       r.Type,
		Value:      value,
		MinAmount:  minAmount,
		UsageLimit: r.UsageLimit,
		StartsAt:   r.StartsAt,
		EndsAt:     r.EndsAt,
		IsActive:   r.IsActive,
	}, nil
}

// ListCoupons 后台优惠券列表
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		isActive, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "is_active 参数不合法", nil)
			return
		}
		filter.IsActive = &isActive
	}

	coupons, total, err := h.CouponService.ListCoupons(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "优惠券列表获取失败", err)
		return
	}
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, coupons, pagination)
}

// CreateCoupon 后台创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "金额格式不合法", nil)
		return
	}

	coupon, err := h.CouponService.CreateCoupon(input)
	if err != nil {
		respondServiceError(c, err, "优惠券创建失败")
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon 后台更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "优惠券 ID 不合法", nil)
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "金额格式不合法", nil)
		return
	}

	coupon, err := h.CouponService.UpdateCoupon(uint(couponID), input)
	if err != nil {
		respondServiceError(c, err, "优惠券更新失败")
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 后台删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "优惠券 ID 不合法", nil)
		return
	}

	if err := h.CouponService.DeleteCoupon(uint(couponID)); err != nil {
		respondServiceError(c, err, "优惠券删除失败")
		return
	}
	response.Success(c, nil)
}
