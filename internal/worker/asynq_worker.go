package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/openmart/openmart/internal/logger"
	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/provider"
	"github.com/openmart/openmart/internal/queue"
	"github.com/openmart/openmart/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmEmail, c.handleOrderConfirmEmail)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskNewsletterWelcome, c.handleNewsletterWelcome)
}

func (c *Consumer) handleOrderConfirmEmail(_ context.Context, task *asynq.Task) error {
	order, receiver, payload, err := c.resolveOrderEmail(task, "worker_order_confirm_email")
	if err != nil || order == nil {
		return err
	}
	input := buildOrderEmailInput(order, payload.Status)
	if err := c.EmailService.SendOrderConfirmation(receiver, input); err != nil {
		return c.normalizeEmailError("worker_order_confirm_email_send_failed", order, receiver, err)
	}
	return nil
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	order, receiver, payload, err := c.resolveOrderEmail(task, "worker_order_status_email")
	if err != nil || order == nil {
		return err
	}
	input := buildOrderEmailInput(order, payload.Status)
	if err := c.EmailService.SendOrderStatusEmail(receiver, input); err != nil {
		return c.normalizeEmailError("worker_order_status_email_send_failed", order, receiver, err)
	}
	return nil
}

func (c *Consumer) handleNewsletterWelcome(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_newsletter_welcome_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NewsletterWelcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_newsletter_welcome_unmarshal_failed", "error", err)
		return err
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" {
		logger.Debugw("worker_newsletter_welcome_skip_empty_email")
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_newsletter_welcome_skip_email_service_nil", "email", email)
		return nil
	}
	if err := c.EmailService.SendNewsletterWelcome(email); err != nil {
		if isEmailUnavailable(err) {
			logger.Debugw("worker_newsletter_welcome_skip_email_unavailable", "email", email)
			return nil
		}
		logger.Warnw("worker_newsletter_welcome_send_failed", "email", email, "error", err)
		return err
	}
	return nil
}

// resolveOrderEmail 解析订单邮件任务载荷并定位收件人。
// 返回 nil 订单表示任务应跳过。
func (c *Consumer) resolveOrderEmail(task *asynq.Task, logPrefix string) (*models.Order, string, queue.OrderEmailPayload, error) {
	var payload queue.OrderEmailPayload
	if c == nil || task == nil {
		logger.Debugw(logPrefix+"_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil, "", payload, nil
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw(logPrefix+"_unmarshal_failed", "error", err)
		return nil, "", payload, err
	}
	if payload.OrderID == 0 {
		logger.Debugw(logPrefix+"_skip_invalid_payload", "order_id", payload.OrderID)
		return nil, "", payload, nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw(logPrefix+"_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return nil, "", payload, err
	}
	if order == nil {
		logger.Debugw(logPrefix+"_skip_order_not_found", "order_id", payload.OrderID)
		return nil, "", payload, nil
	}

	receiver := strings.TrimSpace(payload.Email)
	if receiver == "" && order.UserID != 0 {
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw(logPrefix+"_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
			return nil, "", payload, err
		}
		if user != nil {
			receiver = strings.TrimSpace(user.Email)
		}
	}
	if receiver == "" {
		logger.Debugw(logPrefix+"_skip_empty_receiver", "order_id", order.ID, "order_number", order.OrderNumber)
		return nil, "", payload, nil
	}
	if c.EmailService == nil {
		logger.Warnw(logPrefix+"_skip_email_service_nil", "order_id", order.ID, "order_number", order.OrderNumber)
		return nil, "", payload, nil
	}
	return order, receiver, payload, nil
}

func (c *Consumer) normalizeEmailError(event string, order *models.Order, receiver string, err error) error {
	if isEmailUnavailable(err) {
		logger.Debugw(event, "order_id", order.ID, "order_number", order.OrderNumber, "reason", "email_unavailable")
		return nil
	}
	logger.Warnw(event,
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"receiver_email", receiver,
		"error", err,
	)
	return err
}

func buildOrderEmailInput(order *models.Order, status string) service.OrderEmailInput {
	status = strings.TrimSpace(status)
	if status == "" {
		status = order.Status
	}
	return service.OrderEmailInput{
		OrderNumber: order.OrderNumber,
		Status:      status,
		FinalAmount: order.FinalAmount,
		ItemCount:   len(order.Items),
	}
}

// 邮件服务未启用或未配置时不重试
func isEmailUnavailable(err error) bool {
	return errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured)
}
