package admin

import (
	"strconv"
	"strings"

	"github.com/openmart/openmart/internal/http/response"
	"github.com/openmart/openmart/internal/repository"
	"github.com/openmart/openmart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品写入请求
type ProductRequest struct {
	CategoryID       uint     `json:"category_id" binding:"required"`
	Slug             string   `json:"slug" binding:"required"`
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description"`
	SKU              string   `json:"sku"`
	Price            string   `json:"price" binding:"required"`
	ComparePrice     *string  `json:"compare_price"`
	StockQuantity    int      `json:"stock_quantity"`
	Image            string   `json:"image"`
	Gallery          []string `json:"gallery"`
	Tags             []string `json:"tags"`
	IsFeatured       bool     `json:"is_featured"`
	IsActive         bool     `json:"is_active"`
}

func (r ProductRequest) toInput() (service.ProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return service.ProductInput{}, err
	}
	input := service.ProductInput{
		CategoryID:       r.CategoryID,
		Slug:             r.Slug,
		Name:             r.Name,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		SKU:              r.SKU,
		Price:            price,
		StockQuantity:    r.StockQuantity,
		Image:            r.Image,
		Gallery:          r.Gallery,
		Tags:             r.Tags,
		IsFeatured:       r.IsFeatured,
		IsActive:         r.IsActive,
	}
	if r.ComparePrice != nil {
		comparePrice, err := decimal.NewFromString(strings.TrimSpace(*r.ComparePrice))
		if err != nil {
			return service.ProductInput{}, err
		}
		input.ComparePrice = &comparePrice
	}
	return input, nil
}

// ListProducts 后台商品列表（含下架商品）
func (h *Handler) ListProducts(c *gin.Context) {
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
			return
		}
		filter.CategoryID = uint(categoryID)
	}

	products, total, err := h.ProductService.ListAllProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "商品列表获取失败", err)
		return
	}
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// CreateProduct 后台创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "价格格式不合法", nil)
		return
	}

	product, err := h.ProductService.CreateProduct(input)
	if err != nil {
		respondServiceError(c, err, "商品创建失败")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 后台更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 不合法", nil)
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "价格格式不合法", nil)
		return
	}

	product, err := h.ProductService.UpdateProduct(uint(productID), input)
	if err != nil {
		respondServiceError(c, err, "商品更新失败")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 后台删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 不合法", nil)
		return
	}

	if err := h.ProductService.DeleteProduct(uint(productID)); err != nil {
		respondServiceError(c, err, "商品删除失败")
		return
	}
	response.Success(c, nil)
}
