package model

import "time"

type CheckoutForm struct {
	FullName       string         `json:"fullName" validate:"required"`
	Phone          string         `json:"phone" validate:"required,min=8"`
	Address        string         `json:"address" validate:"required"`
	Ward           string         `json:"ward" validate:"required"`
	District       string         `json:"district" validate:"required"`
	City           string         `json:"city" validate:"required"`
	Notes          string         `json:"notes"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod" validate:"required,oneof=COD BANK_TRANSFER VNPAY MOMO"`
	ShippingMethod ShippingMethod `json:"shippingMethod" validate:"required,oneof=STANDARD FAST EXPRESS"`
	AddressID      *int64         `json:"addressId"`
}

// Quote là kết quả tính tiền hiện tại của một phiên thanh toán
type Quote struct {
	Subtotal     VND    `json:"subtotal"`
	ShippingFee  VND    `json:"shippingFee"`
	Discount     VND    `json:"discount"`
	Total        VND    `json:"total"`
	FreeShipping bool   `json:"freeShipping"`
	FeeSource    string `json:"feeSource"`
}

type CheckoutPayload struct {
	CheckoutForm
	CartItemIDs []int64 `json:"cartItemIds"`
	VoucherCode string  `json:"voucherCode,omitempty"`
	Subtotal    VND     `json:"subtotal"`
	ShippingFee VND     `json:"shippingFee"`
	Discount    VND     `json:"discount"`
	Total       VND     `json:"total"`
}

type CheckoutResponse struct {
	OrderNumber string `json:"orderNumber"`
	PaymentURL  string `json:"paymentUrl"`
	TotalAmount VND    `json:"totalAmount"`
}

type ShippingFeeQuote struct {
	Fee *VND `json:"fee"`
}

// ShippingFeeConfig là bảng phí dự phòng, đồng bộ định kỳ từ API
type ShippingFeeConfig struct {
	DTO
	Method                ShippingMethod `gorm:"uniqueIndex;not null" json:"method"`
	Fee                   VND            `gorm:"not null" json:"fee"`
	FreeShippingThreshold VND            `gorm:"not null" json:"freeShippingThreshold"`
	Active                bool           `gorm:"not null;default:true" json:"active"`
	SyncedAt              *time.Time     `json:"syncedAt"`
}

func (s ShippingFeeConfig) RowID() int64 { return int64(s.ID) }

type ShippingFeeConfigs []ShippingFeeConfig

type UpdateShippingFeeConfigInput struct {
	Fee                   VND   `json:"fee" validate:"gte=0"`
	FreeShippingThreshold VND   `json:"freeShippingThreshold" validate:"gte=0"`
	Active                *bool `json:"active"`
}

const (
	OrderStatusPlaced  = "PLACED"
	OrderStatusPending = "PENDING_PAYMENT"
	OrderStatusPaid    = "PAID"
	OrderStatusFailed  = "PAYMENT_FAILED"
)

// OrderRecord lưu lại mỗi đơn đã gửi đi để đối soát VNPay và hiển thị trang xác nhận
type OrderRecord struct {
	DTO
	OrderNumber    string         `gorm:"uniqueIndex;size:40;not null" json:"orderNumber"`
	OwnerID        int64          `gorm:"index" json:"ownerId"`
	Email          string         `json:"email"`
	FullName       string         `json:"fullName"`
	Phone          string         `json:"phone"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	ShippingMethod ShippingMethod `json:"shippingMethod"`
	VoucherCode    string         `json:"voucherCode"`
	Subtotal       VND            `json:"subtotal"`
	ShippingFee    VND            `json:"shippingFee"`
	Discount       VND            `json:"discount"`
	Total          VND            `json:"total"`
	PaymentURL     string         `json:"-"`
	Status         string         `json:"status"`
	PaidAt         *time.Time     `json:"paidAt,omitempty"`
}

type StartCheckoutInput struct {
	ItemIDs []int64 `json:"itemIds" validate:"dive,gt=0"`
}

type ChangeAddressInput struct {
	AddressID int64 `json:"addressId" validate:"required,gt=0"`
}

type ChangeShippingInput struct {
	ShippingMethod ShippingMethod `json:"shippingMethod" validate:"required,oneof=STANDARD FAST EXPRESS"`
}
