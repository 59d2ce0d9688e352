package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// OrderStatuses 订单状态全集
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// PaymentStatuses 支付状态全集
var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// 支付方式常量
const (
	PaymentMethodCOD        = "cash_on_delivery"
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetbanking = "netbanking"
)

// PaymentMethods 支付方式全集
var PaymentMethods = []string{
	PaymentMethodCOD,
	PaymentMethodCard,
	PaymentMethodUPI,
	PaymentMethodNetbanking,
}

// 商品排序常量
const (
	ProductSortNewest    = "newest"
	ProductSortPriceLow  = "price_low"
	ProductSortPriceHigh = "price_high"
	ProductSortName      = "name"
	ProductSortFeatured  = "featured"
)

// 用户角色常量
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 优惠券类型常量
const (
	CouponTypeFixed   = "fixed"
	CouponTypePercent = "percent"
)

// 订单号常量
const (
	OrderNumberPrefix      = "ORD"
	OrderNumberSuffixLen   = 6
	OrderNumberMaxAttempts = 5
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskOrderConfirmEmail = "order:confirm_email"
	TaskOrderStatusEmail  = "order:status_email"
	TaskNewsletterWelcome = "newsletter:welcome_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "om"
)
