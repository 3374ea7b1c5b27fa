package model

import "fmt"

type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "COD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentVNPay        PaymentMethod = "VNPAY"
	PaymentMomo         PaymentMethod = "MOMO"
)

var PaymentMethods = []PaymentMethod{PaymentCOD, PaymentBankTransfer, PaymentVNPay, PaymentMomo}

// UsesGateway cho biết phương thức này chuyển hướng sang cổng thanh toán
func (p PaymentMethod) UsesGateway() bool {
	switch p {
	case PaymentVNPay, PaymentMomo:
		return true
	case PaymentCOD, PaymentBankTransfer:
		return false
	}
	return false
}

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCOD:
		return "Thanh toán khi nhận hàng"
	case PaymentBankTransfer:
		return "Chuyển khoản ngân hàng"
	case PaymentVNPay:
		return "VNPay"
	case PaymentMomo:
		return "Ví MoMo"
	}
	return "Không xác định"
}

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "STANDARD"
	ShippingFast     ShippingMethod = "FAST"
	ShippingExpress  ShippingMethod = "EXPRESS"
)

var ShippingMethods = []ShippingMethod{ShippingStandard, ShippingFast, ShippingExpress}

func ParseShippingMethod(s string) (ShippingMethod, error) {
	for _, m := range ShippingMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown shipping method %q", s)
}

type ReturnStatus string

const (
	ReturnRequested     ReturnStatus = "REQUESTED"
	ReturnApproved      ReturnStatus = "APPROVED"
	ReturnRejected      ReturnStatus = "REJECTED"
	ReturnRefundPending ReturnStatus = "REFUND_PENDING"
	ReturnRefunded      ReturnStatus = "REFUNDED"
)

var ReturnStatuses = []ReturnStatus{ReturnRequested, ReturnApproved, ReturnRejected, ReturnRefundPending, ReturnRefunded}

// CanTransitionTo: REQUESTED → APPROVED/REJECTED → REFUND_PENDING → REFUNDED
func (s ReturnStatus) CanTransitionTo(next ReturnStatus) bool {
	switch s {
	case ReturnRequested:
		return next == ReturnApproved || next == ReturnRejected
	case ReturnApproved:
		return next == ReturnRefundPending
	case ReturnRefundPending:
		return next == ReturnRefunded
	case ReturnRejected, ReturnRefunded:
		return false
	}
	return false
}

type VoucherType string

const (
	VoucherPercentage VoucherType = "PERCENTAGE"
	VoucherFixed      VoucherType = "FIXED"
)

var VoucherTypes = []VoucherType{VoucherPercentage, VoucherFixed}

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleAdmin    Role = "ADMIN"
)

var Roles = []Role{RoleCustomer, RoleStaff, RoleAdmin}

type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

var Tiers = []Tier{TierBronze, TierSilver, TierGold, TierPlatinum}

// Strings đổi danh sách hằng sang []string để dùng cho bộ lọc
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
