package utils

import (
	"github.com/gofiber/fiber/v2"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	} else {
		errMsg = nil
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

func ErrorResponseHaveKey(c *fiber.Ctx, status int, message string, err error, keyError string) error {
	var errMsg string
	if err != nil {
		errMsg = err.Error()
	} else {
		errMsg = ""
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   "error",
		"message":  message,
		"errors":   errMsg,
		"keyError": keyError,
	})
}

// FieldErrorsResponse trả về lỗi theo từng trường của form
func FieldErrorsResponse(c *fiber.Ctx, status int, message string, fields map[string]string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"fields":  fields,
	})
}

// RedirectResponse dùng cho 401 của route cần đăng nhập: trình duyệt tự chuyển tới redirect
func RedirectResponse(c *fiber.Ctx, status int, message, redirect string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":   "error",
		"message":  message,
		"redirect": redirect,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

func Ptr[T any](v T) *T {
	return &v
}
