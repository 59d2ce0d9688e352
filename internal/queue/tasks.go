package queue

import (
	"encoding/json"

	"github.com/openmart/openmart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmEmail 下单确认邮件任务
	TaskOrderConfirmEmail = constants.TaskOrderConfirmEmail
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskNewsletterWelcome 订阅欢迎邮件任务
	TaskNewsletterWelcome = constants.TaskNewsletterWelcome
)

// OrderEmailPayload 订单邮件任务载荷
type OrderEmailPayload struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Email       string `json:"email"`
	Status      string `json:"status"`
}

// NewsletterWelcomePayload 订阅欢迎邮件任务载荷
type NewsletterWelcomePayload struct {
	Email string `json:"email"`
}

// NewOrderEmailTask 创建订单邮件任务，taskType 为确认或状态通知
func NewOrderEmailTask(taskType string, payload OrderEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}

// NewNewsletterWelcomeTask 创建订阅欢迎邮件任务
func NewNewsletterWelcomeTask(payload NewsletterWelcomePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNewsletterWelcome, body), nil
}
