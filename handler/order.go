package handler

import (
	"encoding/base64"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/jinzhu/copier"

	"sixthsoul_bff/constants"
	"sixthsoul_bff/database"
	"sixthsoul_bff/model"
	"sixthsoul_bff/utils"
)

func (h *Handler) ListOrders(c *fiber.Ctx) error {
	page, _ := c.Locals("input").(model.Pagination)
	list, err := h.api(c).Orders(c.UserContext(), page)
	if err != nil {
		return h.fail(c, err, constants.ERROR_LOAD_LIST)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

func (h *Handler) Order(c *fiber.Ctx) error {
	order, err := h.api(c).Order(c.UserContext(), c.Params("orderNumber"))
	if err != nil {
		return h.fail(c, err, constants.NOT_FOUND_RECORDS)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// OrderConfirmation là dữ liệu trang xác nhận ngay sau khi đặt hàng
type OrderConfirmation struct {
	OrderNumber    string               `json:"orderNumber"`
	FullName       string               `json:"fullName"`
	PaymentMethod  model.PaymentMethod  `json:"paymentMethod"`
	PaymentLabel   string               `json:"paymentLabel"`
	ShippingMethod model.ShippingMethod `json:"shippingMethod"`
	Subtotal       model.VND            `json:"subtotal"`
	ShippingFee    model.VND            `json:"shippingFee"`
	Discount       model.VND            `json:"discount"`
	Total          model.VND            `json:"total"`
	Status         string               `json:"status"`
	TransferQR     string               `json:"transferQr,omitempty"` // data URI PNG
}

func (h *Handler) OrderConfirmation(c *fiber.Ctx) error {
	rec, err := h.Orders.ByNumber(c.UserContext(), c.Params("orderNumber"))
	if errors.Is(err, database.ErrOrderNotFound) || (err == nil && rec.OwnerID != owner(c)) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, nil)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var view OrderConfirmation
	if err := copier.Copy(&view, &rec); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	view.PaymentLabel = rec.PaymentMethod.Label()

	if rec.PaymentMethod == model.PaymentBankTransfer {
		png, err := utils.GenerateQRCode(utils.BankTransferContent(rec), 256)
		if err != nil {
			log.Warnf("Không tạo được QR chuyển khoản cho đơn %s: %v", rec.OrderNumber, err)
		} else {
			view.TransferQR = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, view)
}
