package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sixthsoul_bff/model"
)

func (c *Client) CreateReturn(ctx context.Context, input model.CreateReturnInput) (model.ReturnRequest, error) {
	return send[model.ReturnRequest](ctx, c, http.MethodPost, "/returns", input)
}

func (c *Client) MyReturns(ctx context.Context, page model.Pagination) (model.Page[model.ReturnRequest], error) {
	return get[model.Page[model.ReturnRequest]](ctx, c, "/returns", WithQuery(pageQuery(page)))
}

// ReturnForOrder: đơn chưa có yêu cầu đổi trả là trường hợp bình thường, trả về found=false
func (c *Client) ReturnForOrder(ctx context.Context, orderNumber string) (model.ReturnRequest, bool, error) {
	var out model.ReturnRequest
	found, err := c.Do(ctx, http.MethodGet, "/returns/order/"+url.PathEscape(orderNumber), &out, AllowNotFound())
	return out, found, err
}

func (c *Client) CreateReview(ctx context.Context, input model.ReviewInput) (model.Review, error) {
	return send[model.Review](ctx, c, http.MethodPost, "/reviews", input)
}

func (c *Client) ProductReviews(ctx context.Context, productID int64, page model.Pagination) (model.Page[model.Review], error) {
	return get[model.Page[model.Review]](ctx, c, "/reviews/product/"+strconv.FormatInt(productID, 10), WithQuery(pageQuery(page)))
}

func (c *Client) MyReviews(ctx context.Context, page model.Pagination) (model.Page[model.Review], error) {
	return get[model.Page[model.Review]](ctx, c, "/me/reviews", WithQuery(pageQuery(page)))
}

func (c *Client) MyLoyalty(ctx context.Context) (model.LoyaltySummary, error) {
	return get[model.LoyaltySummary](ctx, c, "/users/me/loyalty-points")
}
