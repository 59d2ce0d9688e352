package public

import (
	"errors"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
// 命中规则时直接以哨兵错误的文案作为响应消息。
type mappedHandlerError struct {
	target error
	code   int
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.target.Error(), nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest},
	{target: service.ErrCouponUsedUp, code: response.CodeBadRequest},
	{target: service.ErrCouponMinAmount, code: response.CodeBadRequest},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest},
	{target: service.ErrInvalidPaymentMethod, code: response.CodeBadRequest},
	{target: service.ErrInvalidAddress, code: response.CodeBadRequest},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest},
	{target: service.ErrInsufficientStock, code: response.CodeConflict},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest},
	{target: service.ErrProductNotFound, code: response.CodeNotFound},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest},
	{target: service.ErrEmailExists, code: response.CodeConflict},
	{target: service.ErrPasswordTooShort, code: response.CodeBadRequest},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest},
	{target: service.ErrUserDisabled, code: response.CodeForbidden},
	{target: service.ErrValidation, code: response.CodeBadRequest},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound},
	{target: service.ErrInvalidRating, code: response.CodeBadRequest},
	{target: service.ErrReviewExists, code: response.CodeConflict},
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err,
		concatMappedHandlerErrors(orderCreateErrorRules, couponErrorRules),
		response.CodeInternal, "订单创建失败")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "购物车操作失败")
}

func respondAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "请求处理失败")
}

func respondReviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "评价提交失败")
}
