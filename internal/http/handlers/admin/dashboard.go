package admin

import (
	"github.com/openmart/openmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSalesStats 销售统计概览，已取消订单不计入
func (h *Handler) GetSalesStats(c *gin.Context) {
	stats, err := h.OrderService.SalesStats()
	if err != nil {
		respondError(c, response.CodeInternal, "销售统计获取失败", err)
		return
	}
	response.Success(c, stats)
}
