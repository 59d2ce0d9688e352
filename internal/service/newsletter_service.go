package service

import (
	"time"

	"github.com/openmart/openmart/internal/logger"
	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/queue"
	"github.com/openmart/openmart/internal/repository"
)

// NewsletterService 邮件订阅服务
type NewsletterService struct {
	newsletterRepo repository.NewsletterRepository
	queueClient    *queue.Client
}

// NewNewsletterService 创建邮件订阅服务
func NewNewsletterService(newsletterRepo repository.NewsletterRepository, queueClient *queue.Client) *NewsletterService {
	return &NewsletterService{
		newsletterRepo: newsletterRepo,
		queueClient:    queueClient,
	}
}

// Subscribe 订阅，重复订阅视为成功，退订后重新订阅恢复有效状态
func (s *NewsletterService) Subscribe(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	existing, err := s.newsletterRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.IsActive {
			return nil
		}
		existing.IsActive = true
		existing.UnsubscribedAt = nil
		if err := s.newsletterRepo.Update(existing); err != nil {
			return err
		}
		s.enqueueWelcome(normalized)
		return nil
	}

	if err := s.newsletterRepo.Create(&models.NewsletterSubscriber{
		Email:    normalized,
		IsActive: true,
	}); err != nil {
		return err
	}
	s.enqueueWelcome(normalized)
	return nil
}

// Unsubscribe 退订
func (s *NewsletterService) Unsubscribe(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	existing, err := s.newsletterRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if existing == nil || !existing.IsActive {
		return ErrNotSubscribed
	}
	now := time.Now()
	existing.IsActive = false
	existing.UnsubscribedAt = &now
	return s.newsletterRepo.Update(existing)
}

// ListSubscribers 后台订阅列表
func (s *NewsletterService) ListSubscribers(page, pageSize int, onlyActive bool) ([]models.NewsletterSubscriber, int64, error) {
	return s.newsletterRepo.List(page, pageSize, onlyActive)
}

func (s *NewsletterService) enqueueWelcome(email string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	task, err := queue.NewNewsletterWelcomeTask(queue.NewsletterWelcomePayload{Email: email})
	if err != nil {
		logger.Warnw("newsletter_welcome_task_build_failed", "error", err, "email", email)
		return
	}
	if err := s.queueClient.Enqueue(task); err != nil {
		logger.Warnw("newsletter_welcome_task_enqueue_failed", "error", err, "email", email)
	}
}
