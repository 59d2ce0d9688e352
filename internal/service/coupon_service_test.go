package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/openmart/openmart/internal/constants"
	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCouponService(repository.NewCouponRepository(db)), db
}

func createTestCoupon(t *testing.T, db *gorm.DB, coupon *models.Coupon) *models.Coupon {
	t.Helper()
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon %s failed: %v", coupon.Code, err)
	}
	return coupon
}

func TestApplyCouponFixed(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, &models.Coupon{
		Code:     "FLAT10",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive: true,
	})

	coupon, discount, err := svc.ApplyCoupon("FLAT10", decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if coupon.Code != "FLAT10" {
		t.Fatalf("coupon code want FLAT10 got %s", coupon.Code)
	}
	if !discount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("discount want 10 got %s", discount.String())
	}

	// 优惠码不区分大小写
	if _, _, err := svc.ApplyCoupon("flat10", decimal.NewFromInt(50)); err != nil {
		t.Fatalf("lowercase code should resolve: %v", err)
	}
}

func TestApplyCouponPercentRounds(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, &models.Coupon{
		Code:     "PCT15",
		Type:     constants.CouponTypePercent,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
		IsActive: true,
	})

	_, discount, err := svc.ApplyCoupon("PCT15", decimal.RequireFromString("33.33"))
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	// 33.33 * 15% = 4.9995，四舍五入到两位
	if !discount.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("discount want 5.00 got %s", discount.String())
	}
}

func TestApplyCouponCappedAtSubtotal(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, &models.Coupon{
		Code:     "BIG100",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		IsActive: true,
	})

	_, discount, err := svc.ApplyCoupon("BIG100", decimal.RequireFromString("30.00"))
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("discount should be capped at subtotal, got %s", discount.String())
	}
}

func TestApplyCouponRejections(t *testing.T) {
	svc, db := setupCouponServiceTest(t)

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	createTestCoupon(t, db, &models.Coupon{
		Code:     "INACTIVE",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		IsActive: false,
	})
	createTestCoupon(t, db, &models.Coupon{
		Code:     "EXPIRED",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		EndsAt:   &past,
		IsActive: true,
	})
	createTestCoupon(t, db, &models.Coupon{
		Code:     "NOTYET",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		StartsAt: &future,
		IsActive: true,
	})
	createTestCoupon(t, db, &models.Coupon{
		Code:       "USEDUP",
		Type:       constants.CouponTypeFixed,
		Value:      models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		UsageLimit: 1,
		UsedCount:  1,
		IsActive:   true,
	})
	createTestCoupon(t, db, &models.Coupon{
		Code:      "MIN50",
		Type:      constants.CouponTypeFixed,
		Value:     models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		MinAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		IsActive:  true,
	})

	subtotal := decimal.NewFromInt(30)
	cases := []struct {
		code string
		want error
	}{
		{"MISSING", ErrCouponInvalid},
		{"INACTIVE", ErrCouponInvalid},
		{"EXPIRED", ErrCouponExpired},
		{"NOTYET", ErrCouponExpired},
		{"USEDUP", ErrCouponUsedUp},
		{"MIN50", ErrCouponMinAmount},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			_, _, err := svc.ApplyCoupon(tc.code, subtotal)
			if !errors.Is(err, tc.want) {
				t.Fatalf("coupon %s want %v got %v", tc.code, tc.want, err)
			}
		})
	}
}

func TestCreateCouponValidation(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	cases := []struct {
		name  string
		input CouponInput
	}{
		{"empty code", CouponInput{Type: constants.CouponTypeFixed, Value: decimal.NewFromInt(5)}},
		{"bad type", CouponInput{Code: "X", Type: "lottery", Value: decimal.NewFromInt(5)}},
		{"zero value", CouponInput{Code: "X", Type: constants.CouponTypeFixed, Value: decimal.Zero}},
		{"percent over 100", CouponInput{Code: "X", Type: constants.CouponTypePercent, Value: decimal.NewFromInt(150)}},
		{"negative min amount", CouponInput{Code: "X", Type: constants.CouponTypeFixed, Value: decimal.NewFromInt(5), MinAmount: decimal.NewFromInt(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateCoupon(tc.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("want ErrValidation got %v", err)
			}
		})
	}
}

func TestCreateCouponNormalizesCodeAndRejectsDuplicates(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	coupon, err := svc.CreateCoupon(CouponInput{
		Code:     "  welcome10  ",
		Type:     constants.CouponTypePercent,
		Value:    decimal.NewFromInt(10),
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if coupon.Code != "WELCOME10" {
		t.Fatalf("code should be upper-cased and trimmed, got %q", coupon.Code)
	}

	_, err = svc.CreateCoupon(CouponInput{
		Code:     "WELCOME10",
		Type:     constants.CouponTypeFixed,
		Value:    decimal.NewFromInt(5),
		IsActive: true,
	})
	if !errors.Is(err, ErrCouponCodeExists) {
		t.Fatalf("duplicate code want ErrCouponCodeExists got %v", err)
	}
}

func TestUpdateAndDeleteCoupon(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createTestCoupon(t, db, &models.Coupon{
		Code:     "EDITME",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		IsActive: true,
	})

	updated, err := svc.UpdateCoupon(coupon.ID, CouponInput{
		Code:       "EDITME",
		Type:       constants.CouponTypePercent,
		Value:      decimal.NewFromInt(20),
		UsageLimit: 10,
		IsActive:   false,
	})
	if err != nil {
		t.Fatalf("update coupon failed: %v", err)
	}
	if updated.Type != constants.CouponTypePercent || updated.UsageLimit != 10 || updated.IsActive {
		t.Fatalf("coupon fields not updated: %+v", updated)
	}

	if _, err := svc.UpdateCoupon(9999, CouponInput{Code: "X", Type: constants.CouponTypeFixed, Value: decimal.NewFromInt(1)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing coupon want ErrNotFound got %v", err)
	}

	if err := svc.DeleteCoupon(coupon.ID); err != nil {
		t.Fatalf("delete coupon failed: %v", err)
	}
	if err := svc.DeleteCoupon(coupon.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete again want ErrNotFound got %v", err)
	}
}
