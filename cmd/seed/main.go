package main

import (
	"github.com/openmart/openmart/internal/config"
	"github.com/openmart/openmart/internal/logger"
	"github.com/openmart/openmart/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "electronics", Name: "Electronics", Description: "Phones, laptops and smart devices", IsActive: true, SortOrder: 1},
		{Slug: "lifestyle", Name: "Lifestyle", Description: "Everyday home and living goods", IsActive: true, SortOrder: 2},
		{Slug: "accessories", Name: "Accessories", Description: "Cables, cases and add-ons", IsActive: true, SortOrder: 3},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "lifestyle", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加示例商品
	products := []models.Product{
		{
			CategoryID:       categoryIDs["electronics"],
			Slug:             "wireless-earbuds",
			Name:             "Wireless Earbuds",
			ShortDescription: "Noise-cancelling wireless earbuds with charging case",
			SKU:              "ELEC-0001",
			Price:            models.NewMoneyFromDecimal(decimal.RequireFromString("59.99")),
			ComparePrice:     moneyPtr("79.99"),
			StockQuantity:    120,
			Tags:             models.StringArray{"audio", "wireless"},
			IsFeatured:       true,
			IsActive:         true,
		},
		{
			CategoryID:       categoryIDs["electronics"],
			Slug:             "smart-watch",
			Name:             "Smart Watch",
			ShortDescription: "Fitness tracking watch with a week of battery",
			SKU:              "ELEC-0002",
			Price:            models.NewMoneyFromDecimal(decimal.RequireFromString("129.00")),
			StockQuantity:    45,
			Tags:             models.StringArray{"wearable"},
			IsFeatured:       true,
			IsActive:         true,
		},
		{
			CategoryID:       categoryIDs["lifestyle"],
			Slug:             "ceramic-mug-set",
			Name:             "Ceramic Mug Set",
			ShortDescription: "Set of four stoneware mugs",
			SKU:              "LIFE-0001",
			Price:            models.NewMoneyFromDecimal(decimal.RequireFromString("24.50")),
			StockQuantity:    200,
			Tags:             models.StringArray{"kitchen"},
			IsActive:         true,
		},
		{
			CategoryID:       categoryIDs["accessories"],
			Slug:             "usb-c-cable-2m",
			Name:             "USB-C Cable 2m",
			ShortDescription: "Braided 100W USB-C to USB-C cable",
			SKU:              "ACC-0001",
			Price:            models.NewMoneyFromDecimal(decimal.RequireFromString("9.90")),
			StockQuantity:    500,
			Tags:             models.StringArray{"cable", "charging"},
			IsActive:         true,
		},
	}
	for _, product := range products {
		if product.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category missing", product.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 初始化默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	stdLog.Printf("Seed finished")
}

func moneyPtr(amount string) *models.Money {
	m := models.NewMoneyFromDecimal(decimal.RequireFromString(amount))
	return &m
}
