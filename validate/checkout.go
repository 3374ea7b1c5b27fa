package validate

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sixthsoul_bff/checkout"
	"sixthsoul_bff/constants"
	"sixthsoul_bff/model"
	"sixthsoul_bff/utils"
)

// CheckoutForm trả về toàn bộ lỗi theo trường để form hiển thị cùng lúc
func CheckoutForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CheckoutForm
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		input = checkout.NormalizeForm(input)

		if err := checkout.ValidateForm(input); err != nil {
			var verr *checkout.ValidationError
			if errors.As(err, &verr) {
				return utils.FieldErrorsResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, verr.Fields)
			}
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func ApplyVoucher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ApplyVoucherInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if input.Code == "" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.VOUCHER_EMPTY, nil, "code")
		}
		if ok, err := checkStruct(c, input); !ok {
			return err
		}

		c.Locals("input", input)
		return c.Next()
	}
}
