package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:review_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Review{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db)), db
}

func createReviewTestProduct(t *testing.T, db *gorm.DB, slug string, active bool) *models.Product {
	t.Helper()
	category := &models.Category{Slug: "cat-" + slug, Name: slug, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:    category.ID,
		Slug:          slug,
		Name:          slug,
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		StockQuantity: 5,
		IsActive:      active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCreateReview(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := createReviewTestProduct(t, db, "reviewed", true)

	review, err := svc.CreateReview(1, product.ID, 5, "  great sound  ")
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if review.Comment != "great sound" {
		t.Fatalf("comment should be trimmed, got %q", review.Comment)
	}

	// 同一用户对同一商品仅允许一条
	if _, err := svc.CreateReview(1, product.ID, 4, "again"); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("duplicate review want ErrReviewExists got %v", err)
	}
	// 其他用户不受限制
	if _, err := svc.CreateReview(2, product.ID, 3, ""); err != nil {
		t.Fatalf("second user review failed: %v", err)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	inactive := createReviewTestProduct(t, db, "unlisted", false)

	if _, err := svc.CreateReview(1, inactive.ID, 0, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("rating 0 want ErrInvalidRating got %v", err)
	}
	if _, err := svc.CreateReview(1, inactive.ID, 6, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("rating 6 want ErrInvalidRating got %v", err)
	}
	if _, err := svc.CreateReview(1, inactive.ID, 4, ""); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product want ErrProductNotFound got %v", err)
	}
	if _, err := svc.CreateReview(1, 9999, 4, ""); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown product want ErrProductNotFound got %v", err)
	}
}

func TestListReviewsByProduct(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	first := createReviewTestProduct(t, db, "first", true)
	second := createReviewTestProduct(t, db, "second", true)

	for userID := uint(1); userID <= 3; userID++ {
		if _, err := svc.CreateReview(userID, first.ID, int(userID)+2, ""); err != nil {
			t.Fatalf("create review failed: %v", err)
		}
	}
	if _, err := svc.CreateReview(1, second.ID, 5, ""); err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	_, total, err := svc.ListByProduct(repository.ReviewListFilter{Page: 1, PageSize: 20, ProductID: first.ID})
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("reviews for first product want 3 got %d", total)
	}

	rows, total, err := svc.ListByProduct(repository.ReviewListFilter{Page: 1, PageSize: 20, UserID: 1})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("reviews by user 1 want 2 got total=%d len=%d", total, len(rows))
	}
}

func TestDeleteReview(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := createReviewTestProduct(t, db, "deletable", true)

	review, err := svc.CreateReview(1, product.ID, 4, "")
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if err := svc.DeleteReview(review.ID); err != nil {
		t.Fatalf("delete review failed: %v", err)
	}

	_, total, err := svc.ListByProduct(repository.ReviewListFilter{Page: 1, PageSize: 20, ProductID: product.ID})
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("reviews should be empty after delete, got %d", total)
	}
}
