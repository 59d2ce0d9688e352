package admin

import (
	"errors"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError 将后台常见业务错误映射为接口错误响应。
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, service.ErrNotFound.Error(), nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, service.ErrProductNotFound.Error(), nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, service.ErrCategoryNotFound.Error(), nil)
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, service.ErrOrderNotFound.Error(), nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeConflict, service.ErrSlugExists.Error(), nil)
	case errors.Is(err, service.ErrCouponCodeExists):
		respondError(c, response.CodeConflict, service.ErrCouponCodeExists.Error(), nil)
	case errors.Is(err, service.ErrCategoryInUse):
		respondError(c, response.CodeConflict, service.ErrCategoryInUse.Error(), nil)
	case errors.Is(err, service.ErrInvalidOrderStatus):
		respondError(c, response.CodeBadRequest, service.ErrInvalidOrderStatus.Error(), nil)
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, service.ErrValidation.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}
