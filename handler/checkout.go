package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sixthsoul_bff/checkout"
	"sixthsoul_bff/constants"
	"sixthsoul_bff/model"
	"sixthsoul_bff/utils"
)

type draftView struct {
	*checkout.Draft
	Quote        model.Quote `json:"quote"`
	VoucherError string      `json:"voucherError,omitempty"`
}

func viewOf(d *checkout.Draft) draftView {
	return draftView{Draft: d, Quote: d.Quote()}
}

func (h *Handler) StartCheckout(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.StartCheckoutInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	d, err := h.Checkout.Start(c.UserContext(), h.api(c), input.ItemIDs)
	if err != nil {
		return h.fail(c, err, constants.ERROR_GENERIC)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, viewOf(d))
}

func (h *Handler) GetCheckout(c *fiber.Ctx) error {
	d, err := h.Checkout.Get(c.UserContext(), owner(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, constants.ERROR_GENERIC)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, viewOf(d))
}

func (h *Handler) ChangeCheckoutAddress(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.ChangeAddressInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	d, err := h.Checkout.ChangeAddress(c.UserContext(), h.api(c), owner(c), c.Params("id"), input.AddressID)
	if err != nil {
		return h.fail(c, err, constants.ERROR_UPDATE)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, viewOf(d))
}

func (h *Handler) ChangeCheckoutShipping(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.ChangeShippingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	d, err := h.Checkout.ChangeShippingMethod(c.UserContext(), h.api(c), owner(c), c.Params("id"), input.ShippingMethod)
	if err != nil {
		return h.fail(c, err, constants.ERROR_UPDATE)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, viewOf(d))
}

// ApplyVoucher: mã bị từ chối vẫn trả 200 kèm draft đã bỏ giảm giá và voucherError
func (h *Handler) ApplyVoucher(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.ApplyVoucherInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	d, err := h.Checkout.ApplyVoucher(c.UserContext(), h.api(c), owner(c), c.Params("id"), input.Code)
	var userErr *checkout.UserError
	if errors.As(err, &userErr) && d != nil {
		view := viewOf(d)
		view.VoucherError = userErr.Message
		return utils.SuccessResponse(c, fiber.StatusOK, view)
	}
	if err != nil {
		return h.fail(c, err, constants.VOUCHER_INVALID)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, viewOf(d))
}

func (h *Handler) RemoveVoucher(c *fiber.Ctx) error {
	d, err := h.Checkout.RemoveVoucher(c.UserContext(), owner(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, constants.ERROR_UPDATE)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, viewOf(d))
}

func (h *Handler) SubmitCheckout(c *fiber.Ctx) error {
	form, ok := c.Locals("input").(model.CheckoutForm)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	outcome, err := h.Checkout.Submit(c.UserContext(), h.api(c), owner(c), c.Params("id"), form)
	if err != nil {
		return h.fail(c, err, constants.CHECKOUT_FAILED)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, outcome)
}
