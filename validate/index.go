package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sixthsoul_bff/constants"
	"sixthsoul_bff/utils"
)

var validate = newValidator()

// tên trường trong lỗi lấy theo tag json/query để khớp với keyError phía giao diện
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.ParseInt(params, 10, 64)
		if err != nil || valueKey <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", valueKey)
		return c.Next()
	}
}

// GetCode đọc mã đơn vị hành chính trên URL
func GetCode(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := strconv.Atoi(c.Params(key))
		if err != nil || code <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		c.Locals("inputCode", code)
		return c.Next()
	}
}

// checkStruct ghi phản hồi lỗi của trường đầu tiên không hợp lệ; ok=false khi đã trả lỗi
func checkStruct(c *fiber.Ctx, input any) (bool, error) {
	err := validate.Struct(input)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return false, utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	fe := verrs[0]
	return false, utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, fieldMessage(fe), err, fe.Field())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s không được để trống", fe.Field())
	case "email":
		return "Email không hợp lệ"
	case "min", "gte", "gt":
		return fmt.Sprintf("%s phải tối thiểu %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s chỉ được tối đa %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s phải là một trong: %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s phải có dạng YYYY-MM-DD", fe.Field())
	case "url":
		return fmt.Sprintf("%s phải là đường dẫn hợp lệ", fe.Field())
	case "gtfield":
		return fmt.Sprintf("%s phải sau %s", fe.Field(), fe.Param())
	}
	return constants.ERROR_INPUT
}

// Body đọc JSON body vào T, kiểm tra và lưu vào c.Locals("input")
func Body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if ok, err := checkStruct(c, input); !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

// Query đọc query string vào T, kiểm tra và lưu vào c.Locals("input")
func Query[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_FILTER, err)
		}
		if ok, err := checkStruct(c, input); !ok {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}
