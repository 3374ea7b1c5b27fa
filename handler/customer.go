package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sixthsoul_bff/constants"
	"sixthsoul_bff/helper"
	"sixthsoul_bff/model"
	"sixthsoul_bff/utils"
)

func (h *Handler) CreateReturn(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateReturnInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	req, err := h.api(c).CreateReturn(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err, constants.ERROR_CREATE)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, req)
}

func (h *Handler) MyReturns(c *fiber.Ctx) error {
	page, _ := c.Locals("input").(model.Pagination)
	list, err := h.api(c).MyReturns(c.UserContext(), page)
	if err != nil {
		return h.fail(c, err, constants.ERROR_LOAD_LIST)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

// ReturnForOrder: đơn chưa có yêu cầu đổi trả trả về found=false, không phải lỗi
func (h *Handler) ReturnForOrder(c *fiber.Ctx) error {
	req, found, err := h.api(c).ReturnForOrder(c.UserContext(), c.Params("orderNumber"))
	if err != nil {
		return h.fail(c, err, constants.ERROR_GENERIC)
	}
	if !found {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"found": false})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"found": true, "request": req})
}

func (h *Handler) CreateReview(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.ReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	review, err := h.api(c).CreateReview(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err, constants.ERROR_CREATE)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, review)
}

func (h *Handler) ProductReviews(c *fiber.Ctx) error {
	page, _ := c.Locals("input").(model.Pagination)
	list, err := h.api(c).ProductReviews(c.UserContext(), inputId(c), page)
	if err != nil {
		return h.fail(c, err, constants.ERROR_LOAD_LIST)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

func (h *Handler) MyReviews(c *fiber.Ctx) error {
	page, _ := c.Locals("input").(model.Pagination)
	list, err := h.api(c).MyReviews(c.UserContext(), page)
	if err != nil {
		return h.fail(c, err, constants.ERROR_LOAD_LIST)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

type ReviewUploadInput struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

// ReviewUploadSignature cấp tham số đã ký để trình duyệt tải ảnh đánh giá lên Cloudinary
func (h *Handler) ReviewUploadSignature(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(ReviewUploadInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	sig, err := helper.SignReviewUpload(h.Cld, owner(c), input.ProductID, time.Now())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sig)
}

func (h *Handler) Collections(c *fiber.Ctx) error {
	page, _ := c.Locals("input").(model.Pagination)
	list, err := h.api(c).Collections(c.UserContext(), page)
	if err != nil {
		return h.fail(c, err, constants.ERROR_LOAD_LIST)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

func (h *Handler) Collection(c *fiber.Ctx) error {
	detail, err := h.api(c).CollectionBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.fail(c, err, constants.NOT_FOUND_RECORDS)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, detail)
}
