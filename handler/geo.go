package handler

import (
	"github.com/gofiber/fiber/v2"

	"sixthsoul_bff/constants"
	"sixthsoul_bff/geo"
	"sixthsoul_bff/model"
	"sixthsoul_bff/utils"
)

func (h *Handler) Provinces(c *fiber.Ctx) error {
	list, err := h.Geo.Provinces(c.UserContext())
	if err != nil {
		return h.geoFail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

func (h *Handler) Districts(c *fiber.Ctx) error {
	code, _ := c.Locals("inputCode").(int)
	list, err := h.Geo.Districts(c.UserContext(), code)
	if err != nil {
		return h.geoFail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

func (h *Handler) Wards(c *fiber.Ctx) error {
	code, _ := c.Locals("inputCode").(int)
	list, err := h.Geo.Wards(c.UserContext(), code)
	if err != nil {
		return h.geoFail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

// Prefill dựng sẵn ba danh sách và lựa chọn cho form sửa một địa chỉ đã lưu
func (h *Handler) Prefill(c *fiber.Ctx) error {
	var addr model.Address
	if err := c.BodyParser(&addr); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	ctx := c.UserContext()
	cascade, err := geo.NewCascade(ctx, h.Geo)
	if err != nil {
		return h.geoFail(c, err)
	}
	if err := cascade.Prefill(ctx, addr); err != nil {
		return h.geoFail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cascade)
}
