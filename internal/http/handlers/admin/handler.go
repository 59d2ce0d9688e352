package admin

import (
	handlershared "github.com/openmart/openmart/internal/http/handlers/shared"
	"github.com/openmart/openmart/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 后台管理接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}
