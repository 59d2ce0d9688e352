package service

import (
	"strings"
	"time"

	"github.com/openmart/openmart/internal/constants"
	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

var percentBase = decimal.NewFromInt(100)

// ApplyCoupon 校验优惠券并计算优惠金额。
// 返回可用的优惠券与按小计计算后的优惠金额（不超过小计）。
func (s *CouponService) ApplyCoupon(code string, subtotal decimal.Decimal) (*models.Coupon, decimal.Decimal, error) {
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if coupon == nil || !coupon.IsActive {
		return nil, decimal.Zero, ErrCouponInvalid
	}

	now := time.Now()
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return nil, decimal.Zero, ErrCouponExpired
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return nil, decimal.Zero, ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, decimal.Zero, ErrCouponUsedUp
	}
	if subtotal.LessThan(coupon.MinAmount.Decimal) {
		return nil, decimal.Zero, ErrCouponMinAmount
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case constants.CouponTypeFixed:
		discount = coupon.Value.Decimal
	case constants.CouponTypePercent:
		discount = subtotal.Mul(coupon.Value.Decimal).Div(percentBase)
	default:
		return nil, decimal.Zero, ErrCouponInvalid
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return coupon, discount.Round(2), nil
}

// CouponInput 优惠券写入参数
type CouponInput struct {
	Code       string
	Type       string
	Value      decimal.Decimal
	MinAmount  decimal.Decimal
	UsageLimit int
	StartsAt   *time.Time
	EndsAt     *time.Time
	IsActive   bool
}

// CreateCoupon 后台创建优惠券
func (s *CouponService) CreateCoupon(input CouponInput) (*models.Coupon, error) {
	if err := validateCouponInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.couponRepo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeExists
	}

	coupon := &models.Coupon{
		Code:       input.Code,
		Type:       input.Type,
		Value:      models.NewMoneyFromDecimal(input.Value),
		MinAmount:  models.NewMoneyFromDecimal(input.MinAmount),
		UsageLimit: input.UsageLimit,
		StartsAt:   input.StartsAt,
		EndsAt:     input.EndsAt,
		IsActive:   input.IsActive,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// UpdateCoupon 后台更新优惠券
func (s *CouponService) UpdateCoupon(id uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrNotFound
	}
	if err := validateCouponInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.couponRepo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrCouponCodeExists
	}

	coupon.Code = input.Code
	coupon.Type = input.Type
	coupon.Value = models.NewMoneyFromDecimal(input.Value)
	coupon.MinAmount = models.NewMoneyFromDecimal(input.MinAmount)
	coupon.UsageLimit = input.UsageLimit
	coupon.StartsAt = input.StartsAt
	coupon.EndsAt = input.EndsAt
	coupon.IsActive = input.IsActive

	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// DeleteCoupon 后台删除优惠券
func (s *CouponService) DeleteCoupon(id uint) error {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrNotFound
	}
	return s.couponRepo.Delete(id)
}

// ListCoupons 后台优惠券列表
func (s *CouponService) ListCoupons(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

func validateCouponInput(input *CouponInput) error {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if input.Code == "" {
		return ErrValidation
	}
	switch input.Type {
	case constants.CouponTypeFixed, constants.CouponTypePercent:
	default:
		return ErrValidation
	}
	if input.Value.IsNegative() || input.Value.IsZero() {
		return ErrValidation
	}
	if input.Type == constants.CouponTypePercent && input.Value.GreaterThan(percentBase) {
		return ErrValidation
	}
	if input.MinAmount.IsNegative() || input.UsageLimit < 0 {
		return ErrValidation
	}
	return nil
}
