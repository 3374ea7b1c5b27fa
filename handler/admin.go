package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"sixthsoul_bff/client"
	"sixthsoul_bff/constants"
	"sixthsoul_bff/listing"
	"sixthsoul_bff/utils"
)

// AdminList lấy một trang tài nguyên quản trị theo bộ lọc F đã kiểm tra ở validate.Query
func AdminList[T any, F any](h *Handler, path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, ok := c.Locals("input").(F)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
		}
		q, err := client.EncodeFilter(filter)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_FILTER, err)
		}
		page, err := client.ListPage[T](c.UserContext(), h.api(c), path, q)
		if err != nil {
			return h.fail(c, err, constants.ERROR_LOAD_LIST)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, page)
	}
}

// AdminAction chạy một thao tác quản trị qua REST, dùng chung định nghĩa với bàn điều khiển websocket
func (h *Handler) AdminAction(c *fiber.Ctx) error {
	def := c.Locals("resource").(listing.Definition)
	action, ok := c.Locals("input").(listing.Action)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	ctx := c.UserContext()
	console := def.NewConsole(ctx, h.api(c))
	defer console.Close()

	result, err := console.Do(ctx, action)
	console.Wait()
	if err != nil {
		return h.actionFail(c, err)
	}

	h.publishChange(c, def.ResourceName(), "")
	if report, ok := result.(listing.BulkReport); ok && !report.OK() {
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"status":  "partial",
			"message": report.Message(),
			"data":    report,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) actionFail(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, listing.ErrConfirmationRequired):
		return utils.ErrorResponseHaveKey(c, fiber.StatusPreconditionRequired, constants.CONFIRMATION_REQUIRED, err, "confirm")
	case errors.Is(err, listing.ErrUnknownAction):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.UNKNOWN_ACTION, err)
	case errors.Is(err, listing.ErrTransition):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_STATUS_TRANSITION, err)
	case errors.As(err, &verrs):
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, verrs[0].Field())
	}
	return h.fail(c, err, constants.ERROR_UPDATE)
}

// publishChange báo cho các bàn điều khiển đang mở tải lại; origin để kết nối gửi đi bỏ qua tin của chính nó
func (h *Handler) publishChange(c *fiber.Ctx, resource, origin string) {
	if h.Redis == nil {
		return
	}
	if origin == "" {
		origin = uuid.NewString()
	}
	if err := h.Redis.Publish(c.UserContext(), adminChannel(resource), origin).Err(); err != nil {
		log.Warnf("Không gửi được thông báo thay đổi %s: %v", resource, err)
	}
}

func adminChannel(resource string) string {
	return fmt.Sprintf("admin:%s", resource)
}
