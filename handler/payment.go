package handler

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"sixthsoul_bff/database"
	"sixthsoul_bff/model"
)

// settle ghi kết quả thanh toán vào đơn đã lưu; changed=false nếu đơn đã được xử lý trước đó
func (h *Handler) settle(c *fiber.Ctx, result model.PaymentResult) (model.OrderRecord, bool, error) {
	ctx := c.UserContext()
	if !result.IsSuccess {
		return h.Orders.MarkFailed(ctx, result.TxnRef)
	}
	rec, changed, err := h.Orders.MarkPaid(ctx, result.TxnRef, time.Now())
	if err == nil && changed && h.Notifier != nil {
		h.Notifier.OrderPlaced(rec)
	}
	return rec, changed, err
}

func vnpQuery(c *fiber.Ctx) url.Values {
	query, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	return query
}

// VNPayReturn: VNPay chuyển trình duyệt về đây sau khi thanh toán
func (h *Handler) VNPayReturn(c *fiber.Ctx) error {
	result := h.VNPay.VerifyReturnUrl(vnpQuery(c))
	if result.TxnRef == "" {
		return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=%s", h.AppURL, url.QueryEscape(result.Message)))
	}

	if _, _, err := h.settle(c, result); err != nil && !errors.Is(err, database.ErrOrderNotFound) {
		log.Errorf("Lỗi cập nhật thanh toán đơn %s: %v", result.TxnRef, err)
	}

	status := "success"
	if !result.IsSuccess {
		status = "failed"
	}
	return c.Redirect(fmt.Sprintf("%s/orders/%s?payment=%s", h.AppURL, url.PathEscape(result.TxnRef), status))
}

// VNPayIPN: VNPay gọi server-to-server, phản hồi theo mã RspCode của VNPay
func (h *Handler) VNPayIPN(c *fiber.Ctx) error {
	query := vnpQuery(c)
	if !h.VNPay.verify(query) {
		return c.JSON(fiber.Map{"RspCode": "97", "Message": "Invalid signature"})
	}

	result := h.VNPay.VerifyReturnUrl(query)
	rec, err := h.Orders.ByNumber(c.UserContext(), result.TxnRef)
	if errors.Is(err, database.ErrOrderNotFound) {
		return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found"})
	}
	if err != nil {
		log.Errorf("Lỗi đọc đơn %s: %v", result.TxnRef, err)
		return c.JSON(fiber.Map{"RspCode": "99", "Message": "Unknown error"})
	}
	if int64(rec.Total) != result.Amount {
		return c.JSON(fiber.Map{"RspCode": "04", "Message": "Invalid amount"})
	}
	if rec.Status != model.OrderStatusPending {
		return c.JSON(fiber.Map{"RspCode": "02", "Message": "Order already confirmed"})
	}

	if _, _, err := h.settle(c, result); err != nil {
		log.Errorf("Lỗi cập nhật thanh toán đơn %s: %v", result.TxnRef, err)
		return c.JSON(fiber.Map{"RspCode": "99", "Message": "Unknown error"})
	}
	return c.JSON(fiber.Map{"RspCode": "00", "Message": "Confirm Success"})
}
