package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"sixthsoul_bff/checkout"
	"sixthsoul_bff/client"
	"sixthsoul_bff/constants"
	"sixthsoul_bff/geo"
	"sixthsoul_bff/middleware"
	"sixthsoul_bff/model"
	"sixthsoul_bff/session"
	"sixthsoul_bff/utils"
)

type OrderStore interface {
	ByNumber(ctx context.Context, orderNumber string) (model.OrderRecord, error)
	MarkPaid(ctx context.Context, orderNumber string, paidAt time.Time) (model.OrderRecord, bool, error)
	MarkFailed(ctx context.Context, orderNumber string) (model.OrderRecord, bool, error)
}

// Handler gom các phụ thuộc dùng chung của mọi route
type Handler struct {
	API          *client.Client
	Sessions     *session.Store
	Signer       *session.Signer
	Checkout     *checkout.Aggregator
	Geo          geo.Provider
	Orders       OrderStore
	Notifier     checkout.Notifier
	VNPay        *VNPay
	Cld          *cloudinary.Cloudinary
	Redis        *redis.Client
	AppURL       string
	SecureCookie bool
}

// api là client gắn với phiên của request hiện tại
func (h *Handler) api(c *fiber.Ctx) *client.Client {
	return h.API.WithTokens(middleware.Current(c))
}

func scopeOf(c *fiber.Ctx) client.Scope {
	if strings.HasPrefix(c.Path(), "/api/v1/admin") {
		return client.ScopeAdmin
	}
	return client.ScopeCustomer
}

// owner là id người dùng của phiên khách hàng; route đã qua RequireScope
func owner(c *fiber.Ctx) int64 {
	b := middleware.Current(c).Blob(client.ScopeCustomer)
	if b == nil {
		return 0
	}
	return b.User.ID
}

// unauthorized xoá phiên của scope (token đã bị API từ chối) và yêu cầu đăng nhập lại
func (h *Handler) unauthorized(c *fiber.Ctx, scope client.Scope) error {
	if sess := middleware.Current(c); sess != nil && sess.Blob(scope) != nil {
		sess.Set(scope, nil)
		if err := h.Sessions.Save(c.UserContext(), sess); err != nil {
			log.Errorf("Không lưu được phiên %s: %v", sess.ID, err)
		}
	}
	return utils.RedirectResponse(c, fiber.StatusUnauthorized, constants.SESSION_INVALID, session.LoginPath(scope, middleware.PagePath(c)))
}

// fail chuyển lỗi từ API hoặc từ luồng thanh toán thành phản hồi HTTP
func (h *Handler) fail(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, client.ErrNoToken) {
		return h.unauthorized(c, scopeOf(c))
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == fiber.StatusUnauthorized:
			return h.unauthorized(c, scopeOf(c))
		case apiErr.Status < 500:
			return utils.ErrorResponse(c, apiErr.Status, client.ServerMessage(err, fallback), err)
		default:
			log.Errorf("API lỗi %s %s: %v", apiErr.Method, apiErr.Path, err)
			return utils.ErrorResponse(c, fiber.StatusBadGateway, client.ServerMessage(err, fallback), err)
		}
	}

	var userErr *checkout.UserError
	var formErr *checkout.ValidationError
	switch {
	case errors.As(err, &formErr):
		return utils.FieldErrorsResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, formErr.Fields)
	case errors.As(err, &userErr):
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, userErr.Message, err)
	case errors.Is(err, checkout.ErrDraftNotFound), errors.Is(err, checkout.ErrNotOwner):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CHECKOUT_DRAFT_NOT_FOUND, err)
	case errors.Is(err, checkout.ErrEmptyCart):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.CHECKOUT_EMPTY_CART, err)
	case errors.Is(err, checkout.ErrAddressRequired), errors.Is(err, checkout.ErrUnknownAddress):
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.CHECKOUT_NO_ADDRESS, err, "addressId")
	case errors.Is(err, context.DeadlineExceeded):
		return utils.ErrorResponse(c, fiber.StatusGatewayTimeout, constants.ERROR_UPSTREAM, err)
	}

	log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback, err)
}

func inputId(c *fiber.Ctx) int64 {
	id, _ := c.Locals("inputId").(int64)
	return id
}
