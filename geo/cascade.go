package geo

import (
	"context"
	"fmt"

	"sixthsoul_bff/model"
)

// Cascade là trạng thái chọn tỉnh → quận/huyện → phường/xã của một form địa chỉ.
// Chọn cấp trên luôn xoá lựa chọn và danh sách của các cấp dưới.
type Cascade struct {
	provider Provider

	Provinces []model.GeoOption `json:"provinces"`
	Districts []model.GeoOption `json:"districts"`
	Wards     []model.GeoOption `json:"wards"`

	Province *model.GeoOption `json:"province"`
	District *model.GeoOption `json:"district"`
	Ward     *model.GeoOption `json:"ward"`
}

func NewCascade(ctx context.Context, provider Provider) (*Cascade, error) {
	provinces, err := provider.Provinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("load provinces: %w", err)
	}
	return &Cascade{provider: provider, Provinces: provinces}, nil
}

func byCode(options []model.GeoOption, code int) (model.GeoOption, bool) {
	return Find(options, &code, "")
}

func (c *Cascade) SelectProvince(ctx context.Context, code int) error {
	opt, ok := byCode(c.Provinces, code)
	if !ok {
		return fmt.Errorf("%w: province %d", ErrUnknownUnit, code)
	}
	c.Province = &opt
	c.District, c.Ward = nil, nil
	c.Districts, c.Wards = nil, nil

	districts, err := c.provider.Districts(ctx, code)
	if err != nil {
		return fmt.Errorf("load districts of %d: %w", code, err)
	}
	c.Districts = districts
	return nil
}

func (c *Cascade) SelectDistrict(ctx context.Context, code int) error {
	if c.Province == nil {
		return fmt.Errorf("%w: no province selected", ErrUnknownUnit)
	}
	opt, ok := byCode(c.Districts, code)
	if !ok {
		return fmt.Errorf("%w: district %d", ErrUnknownUnit, code)
	}
	c.District = &opt
	c.Ward = nil
	c.Wards = nil

	wards, err := c.provider.Wards(ctx, code)
	if err != nil {
		return fmt.Errorf("load wards of %d: %w", code, err)
	}
	c.Wards = wards
	return nil
}

func (c *Cascade) SelectWard(code int) error {
	if c.District == nil {
		return fmt.Errorf("%w: no district selected", ErrUnknownUnit)
	}
	opt, ok := byCode(c.Wards, code)
	if !ok {
		return fmt.Errorf("%w: ward %d", ErrUnknownUnit, code)
	}
	c.Ward = &opt
	return nil
}

// Prefill dựng lại lựa chọn cho một địa chỉ đã lưu. Cấp nào không tìm thấy thì
// để trống cấp đó và các cấp dưới, không coi là lỗi.
func (c *Cascade) Prefill(ctx context.Context, addr model.Address) error {
	province, ok := Find(c.Provinces, addr.ProvinceCode, addr.City)
	if !ok {
		return nil
	}
	if err := c.SelectProvince(ctx, province.Code); err != nil {
		return err
	}

	district, ok := Find(c.Districts, addr.DistrictCode, addr.District)
	if !ok {
		return nil
	}
	if err := c.SelectDistrict(ctx, district.Code); err != nil {
		return err
	}

	ward, ok := Find(c.Wards, addr.WardCode, addr.Ward)
	if !ok {
		return nil
	}
	return c.SelectWard(ward.Code)
}

// Fill ghi tên và mã đã chọn vào input địa chỉ
func (c *Cascade) Fill(input *model.AddressInput) {
	if c.Province != nil {
		input.City = c.Province.Name
		input.ProvinceCode = &c.Province.Code
	}
	if c.District != nil {
		input.District = c.District.Name
		input.DistrictCode = &c.District.Code
	}
	if c.Ward != nil {
		input.Ward = c.Ward.Name
		input.WardCode = &c.Ward.Code
	}
}
