package model

import "sort"

// Address là địa chỉ giao hàng đã lưu của người dùng
type Address struct {
	ID           int64  `json:"id"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"` // số nhà, đường
	Ward         string `json:"ward"`
	District     string `json:"district"`
	City         string `json:"city"`
	ProvinceCode *int   `json:"provinceCode,omitempty"`
	DistrictCode *int   `json:"districtCode,omitempty"`
	WardCode     *int   `json:"wardCode,omitempty"`
	IsDefault    bool   `json:"isDefault"`
}

type AddressInput struct {
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone" validate:"required,min=8"`
	Address      string `json:"address" validate:"required"`
	Ward         string `json:"ward" validate:"required"`
	District     string `json:"district" validate:"required"`
	City         string `json:"city" validate:"required"`
	ProvinceCode *int   `json:"provinceCode"`
	DistrictCode *int   `json:"districtCode"`
	WardCode     *int   `json:"wardCode"`
	IsDefault    bool   `json:"isDefault"`
}

// SortAddresses: địa chỉ mặc định lên đầu, sau đó theo id tăng dần
func SortAddresses(list []Address) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsDefault != list[j].IsDefault {
			return list[i].IsDefault
		}
		return list[i].ID < list[j].ID
	})
}

// GeoOption là một đơn vị hành chính (tỉnh, huyện hoặc xã)
type GeoOption struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}
