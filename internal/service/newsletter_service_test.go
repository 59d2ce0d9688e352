package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupNewsletterServiceTest(t *testing.T) (*NewsletterService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:newsletter_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.NewsletterSubscriber{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewNewsletterService(repository.NewNewsletterRepository(db), nil), db
}

func TestNewsletterSubscribeIsIdempotent(t *testing.T) {
	svc, db := setupNewsletterServiceTest(t)

	if err := svc.Subscribe("Reader@Example.com"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	// 重复订阅视为成功
	if err := svc.Subscribe("reader@example.com"); err != nil {
		t.Fatalf("repeat subscribe failed: %v", err)
	}

	var count int64
	db.Model(&models.NewsletterSubscriber{}).Count(&count)
	if count != 1 {
		t.Fatalf("subscriber rows want 1 got %d", count)
	}

	var subscriber models.NewsletterSubscriber
	if err := db.First(&subscriber).Error; err != nil {
		t.Fatalf("load subscriber failed: %v", err)
	}
	if subscriber.Email != "reader@example.com" {
		t.Fatalf("email should be normalized, got %q", subscriber.Email)
	}
	if !subscriber.IsActive {
		t.Fatalf("subscriber should be active")
	}
}

func TestNewsletterSubscribeRejectsBadEmail(t *testing.T) {
	svc, _ := setupNewsletterServiceTest(t)
	if err := svc.Subscribe("not an email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail got %v", err)
	}
}

func TestNewsletterUnsubscribeAndResubscribe(t *testing.T) {
	svc, db := setupNewsletterServiceTest(t)

	if err := svc.Unsubscribe("ghost@example.com"); !errors.Is(err, ErrNotSubscribed) {
		t.Fatalf("never subscribed want ErrNotSubscribed got %v", err)
	}

	if err := svc.Subscribe("fan@example.com"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := svc.Unsubscribe("fan@example.com"); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}

	var subscriber models.NewsletterSubscriber
	if err := db.Where("email = ?", "fan@example.com").First(&subscriber).Error; err != nil {
		t.Fatalf("load subscriber failed: %v", err)
	}
	if subscriber.IsActive || subscriber.UnsubscribedAt == nil {
		t.Fatalf("subscriber should be inactive with unsubscribed_at set")
	}

	// 已退订者再次退订
	if err := svc.Unsubscribe("fan@example.com"); !errors.Is(err, ErrNotSubscribed) {
		t.Fatalf("inactive unsubscribe want ErrNotSubscribed got %v", err)
	}

	// 重新订阅恢复有效状态
	if err := svc.Subscribe("fan@example.com"); err != nil {
		t.Fatalf("resubscribe failed: %v", err)
	}
	if err := db.Where("email = ?", "fan@example.com").First(&subscriber).Error; err != nil {
		t.Fatalf("reload subscriber failed: %v", err)
	}
	if !subscriber.IsActive || subscriber.UnsubscribedAt != nil {
		t.Fatalf("resubscribed row should be active with unsubscribed_at cleared")
	}
}

func TestNewsletterListSubscribers(t *testing.T) {
	svc, _ := setupNewsletterServiceTest(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if err := svc.Subscribe(email); err != nil {
			t.Fatalf("subscribe %s failed: %v", email, err)
		}
	}
	if err := svc.Unsubscribe("b@example.com"); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}

	_, total, err := svc.ListSubscribers(1, 20, false)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("all subscribers want 3 got %d", total)
	}

	rows, total, err := svc.ListSubscribers(1, 20, true)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("active subscribers want 2 got total=%d len=%d", total, len(rows))
	}
}
