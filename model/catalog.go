package model

import "time"

type Collection struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	Visible      bool      `json:"visible"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (c Collection) RowID() int64 { return c.ID }

type FilterCollection struct {
	Pagination
	Search  string `query:"search" url:"search,omitempty"`
	Visible *bool  `query:"visible" url:"visible,omitempty"`
}

type CollectionInput struct {
	Name        string `json:"name" validate:"required,max=150"`
	Slug        string `json:"slug" validate:"omitempty,max=180"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	Visible     bool   `json:"visible"`
}

type UpdateVisibilityInput struct {
	Visible bool `json:"visible"`
}

type Product struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Price    VND      `json:"price"`
	Images   []string `json:"images"`
	Sizes    []string `json:"sizes"`
	Colors   []string `json:"colors"`
	InStock  bool     `json:"inStock"`
	Category string   `json:"category"`
}

type CollectionDetail struct {
	Collection
	Products []Product `json:"products"`
}

type Voucher struct {
	ID            int64       `json:"id"`
	Code          string      `json:"code"`
	Description   string      `json:"description"`
	Type          VoucherType `json:"type"`
	Value         VND         `json:"value"`
	MaxDiscount   *VND        `json:"maxDiscount"`
	MinOrderValue VND         `json:"minOrderValue"`
	UsageLimit    int         `json:"usageLimit"`
	UsedCount     int         `json:"usedCount"`
	StartsAt      time.Time   `json:"startsAt"`
	EndsAt        time.Time   `json:"endsAt"`
	Active        bool        `json:"active"`
}

func (v Voucher) RowID() int64 { return v.ID }

type FilterVoucher struct {
	Pagination
	Search string `query:"search" url:"search,omitempty"`
	Type   string `query:"type" url:"type,omitempty" validate:"omitempty,oneof=PERCENTAGE FIXED"`
	Active *bool  `query:"active" url:"active,omitempty"`
}

type VoucherInput struct {
	Code          string      `json:"code" validate:"required,min=3,max=50"`
	Description   string      `json:"description"`
	Type          VoucherType `json:"type" validate:"required,oneof=PERCENTAGE FIXED"`
	Value         VND         `json:"value" validate:"gt=0"`
	MaxDiscount   *VND        `json:"maxDiscount"`
	MinOrderValue VND         `json:"minOrderValue" validate:"gte=0"`
	UsageLimit    int         `json:"usageLimit" validate:"gte=0"`
	StartsAt      time.Time   `json:"startsAt" validate:"required"`
	EndsAt        time.Time   `json:"endsAt" validate:"required,gtfield=StartsAt"`
	Active        bool        `json:"active"`
}

type UpdateActiveInput struct {
	Active bool `json:"active"`
}

type VoucherValidation struct {
	Code     string `json:"code"`
	Discount *VND   `json:"discount"`
	Message  string `json:"message"`
}

type ApplyVoucherInput struct {
	Code string `json:"code" validate:"required,max=50"`
}
