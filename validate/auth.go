package validate

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"sixthsoul_bff/constants"
	"sixthsoul_bff/model"
	"sixthsoul_bff/utils"
)

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		input.Email = strings.TrimSpace(input.Email)
		if input.Email == "" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, nil, "email")
		}
		if input.Password == "" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, nil, "password")
		}
		if ok, err := checkStruct(c, input); !ok {
			return err
		}

		c.Locals("input", input)
		return c.Next()
	}
}
