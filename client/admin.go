package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"

	"sixthsoul_bff/model"
)

const (
	PathAdminUsers          = "/admin/users"
	PathAdminVouchers       = "/admin/vouchers"
	PathAdminCollections    = "/admin/collections"
	PathAdminReturns        = "/admin/returns"
	PathAdminLoginActivity  = "/admin/login-activities"
	PathAdminLoyaltyPoints  = "/admin/loyalty-points"
	PathAdminShippingConfig = "/admin/shipping-fee-configs"
)

// EncodeFilter đổi struct bộ lọc (tag `url`) thành query string
func EncodeFilter(filter any) (url.Values, error) {
	v, err := query.Values(filter)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	return v, nil
}

// ListPage lấy một trang của tài nguyên quản trị
func ListPage[T any](ctx context.Context, c *Client, path string, q url.Values) (model.Page[T], error) {
	return get[model.Page[T]](ctx, c, path, WithQuery(q))
}

func (c *Client) UpdateUserStatus(ctx context.Context, id int64, active bool) (model.User, error) {
	return send[model.User](ctx, c, http.MethodPatch, fmt.Sprintf("%s/%d/status", PathAdminUsers, id), model.UpdateUserStatusInput{Active: active})
}

func (c *Client) UpdateUserRole(ctx context.Context, id int64, role model.Role) (model.User, error) {
	return send[model.User](ctx, c, http.MethodPatch, fmt.Sprintf("%s/%d/role", PathAdminUsers, id), model.UpdateUserRoleInput{Role: role})
}

func (c *Client) CreateVoucher(ctx context.Context, input model.VoucherInput) (model.Voucher, error) {
	return send[model.Voucher](ctx, c, http.MethodPost, PathAdminVouchers, input)
}

func (c *Client) UpdateVoucher(ctx context.Context, id int64, input model.VoucherInput) (model.Voucher, error) {
	return send[model.Voucher](ctx, c, http.MethodPut, fmt.Sprintf("%s/%d", PathAdminVouchers, id), input)
}

func (c *Client) SetVoucherActive(ctx context.Context, id int64, active bool) (model.Voucher, error) {
	return send[model.Voucher](ctx, c, http.MethodPatch, fmt.Sprintf("%s/%d/active", PathAdminVouchers, id), model.UpdateActiveInput{Active: active})
}

func (c *Client) DeleteVoucher(ctx context.Context, id int64) error {
	_, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", PathAdminVouchers, id), nil)
	return err
}

func (c *Client) CreateCollection(ctx context.Context, input model.CollectionInput) (model.Collection, error) {
	return send[model.Collection](ctx, c, http.MethodPost, PathAdminCollections, input)
}

func (c *Client) UpdateCollection(ctx context.Context, id int64, input model.CollectionInput) (model.Collection, error) {
	return send[model.Collection](ctx, c, http.MethodPut, fmt.Sprintf("%s/%d", PathAdminCollections, id), input)
}

func (c *Client) SetCollectionVisibility(ctx context.Context, id int64, visible bool) (model.Collection, error) {
	return send[model.Collection](ctx, c, http.MethodPatch, fmt.Sprintf("%s/%d/visibility", PathAdminCollections, id), model.UpdateVisibilityInput{Visible: visible})
}

func (c *Client) UpdateReturnStatus(ctx context.Context, id int64, input model.UpdateReturnStatusInput) (model.ReturnRequest, error) {
	return send[model.ReturnRequest](ctx, c, http.MethodPatch, fmt.Sprintf("%s/%d/status", PathAdminReturns, id), input)
}

func (c *Client) AdjustLoyaltyPoints(ctx context.Context, userID int64, input model.AdjustPointsInput) (model.LoyaltyPoint, error) {
	return send[model.LoyaltyPoint](ctx, c, http.MethodPost, fmt.Sprintf("%s/%d/adjust", PathAdminLoyaltyPoints, userID), input)
}

func (c *Client) UpdateShippingFeeConfig(ctx context.Context, id int64, input model.UpdateShippingFeeConfigInput) (model.ShippingFeeConfig, error) {
	return send[model.ShippingFeeConfig](ctx, c, http.MethodPut, fmt.Sprintf("%s/%d", PathAdminShippingConfig, id), input)
}
