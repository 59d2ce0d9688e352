package public

import (
	"errors"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
)

// NewsletterRequest 订阅/退订请求
type NewsletterRequest struct {
	Email string `json:"email" binding:"required"`
}

// SubscribeNewsletter 订阅邮件通知，重复订阅视为成功
func (h *Handler) SubscribeNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if err := h.NewsletterService.Subscribe(req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(c, response.CodeBadRequest, service.ErrInvalidEmail.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "订阅失败", err)
		return
	}
	response.Success(c, nil)
}

// UnsubscribeNewsletter 退订邮件通知
func (h *Handler) UnsubscribeNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if err := h.NewsletterService.Unsubscribe(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, service.ErrInvalidEmail.Error(), nil)
		case errors.Is(err, service.ErrNotSubscribed):
			respondError(c, response.CodeNotFound, service.ErrNotSubscribed.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "退订失败", err)
		}
		return
	}
	response.Success(c, nil)
}
