package checkout

import (
	"sixthsoul_bff/constants"
	"sixthsoul_bff/model"
)

// FeeTable là bảng phí dự phòng khi không lấy được báo giá động
type FeeTable struct {
	Fees                  map[model.ShippingMethod]model.VND
	FreeShippingThreshold model.VND
}

// FeeTableFromBase: STANDARD = base, FAST = base + 10.000, EXPRESS = base + 20.000
func FeeTableFromBase(base, threshold model.VND) FeeTable {
	return FeeTable{
		Fees: map[model.ShippingMethod]model.VND{
			model.ShippingStandard: base,
			model.ShippingFast:     base + model.VND(constants.FAST_SHIPPING_SURCHARGE),
			model.ShippingExpress:  base + model.VND(constants.EXPRESS_SHIPPING_SURCHARGE),
		},
		FreeShippingThreshold: threshold,
	}
}

func DefaultFeeTable() FeeTable {
	return FeeTableFromBase(
		model.VND(constants.DEFAULT_BASE_SHIPPING_FEE),
		model.VND(constants.FREE_SHIPPING_THRESHOLD),
	)
}

// FeeTableFromConfigs lấy phí và ngưỡng của dòng STANDARD đang bật làm gốc.
// FAST và EXPRESS luôn suy ra từ gốc cộng phụ phí cố định.
func FeeTableFromConfigs(rows []model.ShippingFeeConfig) FeeTable {
	for _, row := range rows {
		if row.Active && row.Method == model.ShippingStandard {
			threshold := row.FreeShippingThreshold
			if threshold <= 0 {
				threshold = model.VND(constants.FREE_SHIPPING_THRESHOLD)
			}
			return FeeTableFromBase(row.Fee, threshold)
		}
	}
	return DefaultFeeTable()
}

func (t FeeTable) feeFor(method model.ShippingMethod) model.VND {
	if fee, ok := t.Fees[method]; ok {
		return fee
	}
	return t.Fees[model.ShippingStandard]
}

func (t FeeTable) IsFree(subtotal model.VND) bool {
	return t.FreeShippingThreshold > 0 && subtotal >= t.FreeShippingThreshold
}

// FallbackFee tính phí theo bảng, miễn phí khi đạt ngưỡng bất kể phương thức
func FallbackFee(t FeeTable, method model.ShippingMethod, subtotal model.VND) model.VND {
	if t.IsFree(subtotal) {
		return 0
	}
	return t.feeFor(method)
}

func Subtotal(items []model.CartItem) model.VND {
	var sum model.VND
	for _, item := range items {
		sum += item.UnitPrice * model.VND(item.Quantity)
	}
	return sum
}

// FilterItems giữ lại các dòng có id trong ids; ids rỗng thì giữ tất cả.
// Thành tiền từng dòng được tính lại, không tin tổng giỏ hàng từ máy chủ.
func FilterItems(items []model.CartItem, ids []int64) []model.CartItem {
	keep := make(map[int64]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	out := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if len(ids) > 0 && !keep[item.ID] {
			continue
		}
		item.Subtotal = item.UnitPrice * model.VND(item.Quantity)
		out = append(out, item)
	}
	return out
}

// ClampDiscount giới hạn giảm giá trong [0, subtotal]
func ClampDiscount(discount, subtotal model.VND) model.VND {
	if discount < 0 {
		return 0
	}
	return model.MinVND(discount, model.MaxVND(subtotal, 0))
}

func Total(subtotal, fee, discount model.VND) model.VND {
	return model.MaxVND(subtotal+fee-discount, 0)
}
