package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"sixthsoul_bff/model"
)

func (c *Client) Login(ctx context.Context, input model.LoginInput) (model.LoginResponse, error) {
	return send[model.LoginResponse](ctx, c, http.MethodPost, "/auth/login", map[string]string{
		"email":    input.Email,
		"password": input.Password,
	})
}

func (c *Client) AdminLogin(ctx context.Context, input model.LoginInput) (model.LoginResponse, error) {
	return send[model.LoginResponse](ctx, c, http.MethodPost, "/admin/auth/login", map[string]string{
		"email":    input.Email,
		"password": input.Password,
	})
}

func (c *Client) Me(ctx context.Context) (model.User, error) {
	return get[model.User](ctx, c, "/users/me")
}

func (c *Client) Addresses(ctx context.Context) ([]model.Address, error) {
	return get[[]model.Address](ctx, c, "/users/me/addresses")
}

func (c *Client) CreateAddress(ctx context.Context, input model.AddressInput) (model.Address, error) {
	return send[model.Address](ctx, c, http.MethodPost, "/users/me/addresses", input)
}

func (c *Client) UpdateAddress(ctx context.Context, id int64, input model.AddressInput) (model.Address, error) {
	return send[model.Address](ctx, c, http.MethodPut, fmt.Sprintf("/users/me/addresses/%d", id), input)
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	_, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/users/me/addresses/%d", id), nil)
	return err
}

func (c *Client) Cart(ctx context.Context) (model.Cart, error) {
	return get[model.Cart](ctx, c, "/cart")
}

// ShippingFee hỏi dịch vụ báo giá; Fee = nil khi dịch vụ không có giá cho địa chỉ này
func (c *Client) ShippingFee(ctx context.Context, addressID int64, method model.ShippingMethod) (model.ShippingFeeQuote, error) {
	q := url.Values{}
	q.Set("addressId", strconv.FormatInt(addressID, 10))
	q.Set("method", string(method))
	return get[model.ShippingFeeQuote](ctx, c, "/shipping/fee", WithQuery(q))
}

func (c *Client) ShippingFeeConfigByMethod(ctx context.Context, method model.ShippingMethod) (model.ShippingFeeConfig, bool, error) {
	var out model.ShippingFeeConfig
	q := url.Values{}
	q.Set("method", string(method))
	found, err := c.Do(ctx, http.MethodGet, "/shipping-fee-configs/by-method", &out, WithQuery(q), AllowNotFound())
	return out, found, err
}

func (c *Client) ValidateVoucher(ctx context.Context, code string, subtotal model.VND) (model.VoucherValidation, error) {
	q := url.Values{}
	q.Set("code", code)
	q.Set("subtotal", strconv.FormatInt(int64(subtotal), 10))
	return get[model.VoucherValidation](ctx, c, "/vouchers/validate", WithQuery(q))
}

func (c *Client) Checkout(ctx context.Context, payload model.CheckoutPayload) (model.CheckoutResponse, error) {
	return send[model.CheckoutResponse](ctx, c, http.MethodPost, "/orders/checkout", payload)
}

func (c *Client) Orders(ctx context.Context, page model.Pagination) (model.Page[model.Order], error) {
	return get[model.Page[model.Order]](ctx, c, "/orders", WithQuery(pageQuery(page)))
}

func (c *Client) Order(ctx context.Context, orderNumber string) (model.Order, error) {
	return get[model.Order](ctx, c, "/orders/"+url.PathEscape(orderNumber))
}

func (c *Client) Collections(ctx context.Context, page model.Pagination) (model.Page[model.Collection], error) {
	return get[model.Page[model.Collection]](ctx, c, "/collections", WithQuery(pageQuery(page)))
}

func (c *Client) CollectionBySlug(ctx context.Context, slug string) (model.CollectionDetail, error) {
	return get[model.CollectionDetail](ctx, c, "/collections/"+url.PathEscape(slug))
}

// SlugTaken kiểm tra slug bộ sưu tập đã tồn tại chưa; 404 nghĩa là còn trống
func (c *Client) SlugTaken(ctx context.Context, slug string) (bool, error) {
	return c.Do(ctx, http.MethodGet, "/collections/"+url.PathEscape(slug), nil, AllowNotFound())
}

func pageQuery(p model.Pagination) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	return q
}
