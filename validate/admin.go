package validate

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sixthsoul_bff/constants"
	"sixthsoul_bff/listing"
	"sixthsoul_bff/utils"
)

// Resource tra tài nguyên quản trị theo :resource và lưu Definition vào c.Locals("resource")
func Resource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		def, ok := listing.Registry[c.Params("resource")]
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, errors.New("unknown resource"))
		}
		c.Locals("resource", def)
		return c.Next()
	}
}

// Action đọc một thao tác quản trị; phải đứng sau Resource()
func Action() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input listing.Action
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.UNKNOWN_ACTION, nil, "name")
		}
		if input.ID < 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, nil, "id")
		}

		c.Locals("input", input)
		return c.Next()
	}
}
