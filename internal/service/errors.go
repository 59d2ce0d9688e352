package service

import "errors"

// 通用错误
var (
	ErrNotFound   = errors.New("资源不存在")
	ErrValidation = errors.New("参数校验失败")
)

// 商品/分类错误
var (
	ErrProductNotFound  = errors.New("商品不存在")
	ErrProductInactive  = errors.New("商品已下架")
	ErrCategoryNotFound = errors.New("分类不存在")
	ErrSlugExists       = errors.New("slug 已被占用")
	ErrCategoryInUse    = errors.New("分类下仍有商品，无法删除")
)

// 购物车错误
var (
	ErrCartItemNotFound = errors.New("购物车项不存在")
	ErrInvalidQuantity  = errors.New("数量不合法")
	ErrCartEmpty        = errors.New("购物车为空")
)

// 订单错误
var (
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrInvalidOrderItem     = errors.New("订单项不合法")
	ErrInvalidPaymentMethod = errors.New("支付方式不支持")
	ErrInvalidOrderStatus   = errors.New("订单状态不合法")
	ErrInvalidAddress       = errors.New("收货地址不完整")
	ErrInsufficientStock    = errors.New("商品库存不足")
	ErrOrderCreateFailed    = errors.New("订单创建失败")
	ErrOrderNotCancellable  = errors.New("订单当前状态不可取消")
)

// 优惠券错误
var (
	ErrCouponInvalid    = errors.New("优惠券无效")
	ErrCouponExpired    = errors.New("优惠券不在有效期内")
	ErrCouponUsedUp     = errors.New("优惠券已达使用上限")
	ErrCouponMinAmount  = errors.New("未达到优惠券使用门槛")
	ErrCouponCodeExists = errors.New("优惠码已存在")
)

// 用户/认证错误
var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidEmail       = errors.New("邮箱格式不合法")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrPasswordTooShort   = errors.New("密码长度不足")
)

// 评价错误
var (
	ErrReviewExists   = errors.New("已评价过该商品")
	ErrInvalidRating  = errors.New("评分必须在 1-5 之间")
	ErrReviewNotFound = errors.New("评价不存在")
)

// 订阅错误
var (
	ErrAlreadySubscribed = errors.New("邮箱已订阅")
	ErrNotSubscribed     = errors.New("邮箱未订阅")
)

// 邮件错误
var (
	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
)
