package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"sixthsoul_bff/constants"
	"sixthsoul_bff/geo"
	"sixthsoul_bff/model"
	"sixthsoul_bff/utils"
)

func (h *Handler) Profile(c *fiber.Ctx) error {
	me, err := h.api(c).Me(c.UserContext())
	if err != nil {
		return h.fail(c, err, constants.ERROR_GENERIC)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, me)
}

func (h *Handler) Addresses(c *fiber.Ctx) error {
	list, err := h.api(c).Addresses(c.UserContext())
	if err != nil {
		return h.fail(c, err, constants.ERROR_LOAD_LIST)
	}
	model.SortAddresses(list)
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

func (h *Handler) CreateAddress(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.AddressInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	if err := h.canonicalAddress(c.UserContext(), &input); err != nil {
		return h.geoFail(c, err)
	}

	addr, err := h.api(c).CreateAddress(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err, constants.ERROR_CREATE)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, addr)
}

func (h *Handler) UpdateAddress(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.AddressInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	if err := h.canonicalAddress(c.UserContext(), &input); err != nil {
		return h.geoFail(c, err)
	}

	addr, err := h.api(c).UpdateAddress(c.UserContext(), inputId(c), input)
	if err != nil {
		return h.fail(c, err, constants.ERROR_UPDATE)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, addr)
}

func (h *Handler) DeleteAddress(c *fiber.Ctx) error {
	if err := h.api(c).DeleteAddress(c.UserContext(), inputId(c)); err != nil {
		return h.fail(c, err, constants.ERROR_DELETE)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, inputId(c))
}

// canonicalAddress thay tên đơn vị hành chính bằng tên chuẩn khi form gửi kèm mã
func (h *Handler) canonicalAddress(ctx context.Context, input *model.AddressInput) error {
	if h.Geo == nil || input.ProvinceCode == nil {
		return nil
	}
	cascade, err := geo.NewCascade(ctx, h.Geo)
	if err != nil {
		return err
	}
	if err := cascade.SelectProvince(ctx, *input.ProvinceCode); err != nil {
		return err
	}
	if input.DistrictCode != nil {
		if err := cascade.SelectDistrict(ctx, *input.DistrictCode); err != nil {
			return err
		}
		if input.WardCode != nil {
			if err := cascade.SelectWard(*input.WardCode); err != nil {
				return err
			}
		}
	}
	cascade.Fill(input)
	return nil
}

func (h *Handler) geoFail(c *fiber.Ctx, err error) error {
	if errors.Is(err, geo.ErrUnknownUnit) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "provinceCode")
	}
	return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.GEO_LOAD_FAILED, err)
}

func (h *Handler) Cart(c *fiber.Ctx) error {
	cart, err := h.api(c).Cart(c.UserContext())
	if err != nil {
		return h.fail(c, err, constants.ERROR_GENERIC)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cart)
}

func (h *Handler) Loyalty(c *fiber.Ctx) error {
	summary, err := h.api(c).MyLoyalty(c.UserContext())
	if err != nil {
		return h.fail(c, err, constants.ERROR_GENERIC)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}
