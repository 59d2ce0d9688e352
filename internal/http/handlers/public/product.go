package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/repository"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	filter, ok := parseProductListFilter(c)
	if !ok {
		return
	}

	products, total, err := h.ProductService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "商品列表获取失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: (total + int64(filter.PageSize) - 1) / int64(filter.PageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 不合法", nil)
		return
	}

	detail, err := h.ProductService.GetProduct(uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, service.ErrProductNotFound.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "商品详情获取失败", err)
		return
	}
	response.Success(c, detail)
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	detail, err := h.ProductService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, service.ErrProductNotFound.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "商品详情获取失败", err)
		return
	}
	response.Success(c, detail)
}

// parseProductListFilter 解析商品列表的分页、筛选与排序参数。
func parseProductListFilter(c *gin.Context) (repository.ProductListFilter, bool) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Sort:     strings.TrimSpace(c.Query("sort")),
	}

	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "分类 ID 不合法", nil)
			return filter, false
		}
		filter.CategoryID = uint(categoryID)
	}
	if raw := strings.TrimSpace(c.Query("featured")); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "featured 参数不合法", nil)
			return filter, false
		}
		filter.Featured = featured
	}
	if raw := strings.TrimSpace(c.Query("min_price")); raw != "" {
		minPrice, err := decimal.NewFromString(raw)
		if err != nil || minPrice.IsNegative() {
			respondError(c, response.CodeBadRequest, "最低价格不合法", nil)
			return filter, false
		}
		filter.MinPrice = &minPrice
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil || maxPrice.IsNegative() {
			respondError(c, response.CodeBadRequest, "最高价格不合法", nil)
			return filter, false
		}
		filter.MaxPrice = &maxPrice
	}
	return filter, true
}
