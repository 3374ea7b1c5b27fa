package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sixthsoul_bff/config"
	"sixthsoul_bff/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestGenerateQRCode(t *testing.T) {
	rec := model.OrderRecord{OrderNumber: "SS-100", Total: 625000}
	content := BankTransferContent(rec)
	assert.Equal(t, "SIXTHSOUL|SS-100|625000|Thanh toan don SS-100", content)

	png, err := GenerateQRCode(content, 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderOrderConfirmation(t *testing.T) {
	rec := model.OrderRecord{
		OrderNumber:    "SS-100",
		FullName:       "Nguyễn Thị Lan <3",
		PaymentMethod:  model.PaymentCOD,
		ShippingMethod: model.ShippingStandard,
		Subtotal:       600000,
		ShippingFee:    25000,
		Total:          625000,
	}
	body, err := RenderOrderConfirmation(NewOrderConfirmationData(rec, "https://sixthsoul.vn"))
	require.NoError(t, err)

	assert.Contains(t, body, "#SS-100")
	assert.Contains(t, body, "625.000₫")
	assert.Contains(t, body, "Thanh toán khi nhận hàng")
	assert.Contains(t, body, `href="https://sixthsoul.vn/orders/SS-100"`)
	assert.Contains(t, body, "Lan &lt;3")
}

func TestMailerDisabledWithoutSMTP(t *testing.T) {
	m := NewMailer(config.Settings{})
	assert.Nil(t, m)
	m.OrderPlaced(model.OrderRecord{OrderNumber: "SS-1", Email: "lan@sixthsoul.vn"})
}

func call(t *testing.T, h fiber.Handler) (int, map[string]any) {
	app := fiber.New()
	app.Get("/", h)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestResponses(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Sai dữ liệu", errors.New("bad"), "phone")
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "phone", body["keyError"])
	assert.Equal(t, "bad", body["errors"])

	status, body = call(t, func(c *fiber.Ctx) error {
		return FieldErrorsResponse(c, fiber.StatusBadRequest, "Sai dữ liệu", map[string]string{"city": "Bắt buộc"})
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, map[string]any{"city": "Bắt buộc"}, body["fields"])

	status, body = call(t, func(c *fiber.Ctx) error {
		return RedirectResponse(c, fiber.StatusUnauthorized, "Hết phiên", "/login?next=%2Fcart")
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "/login?next=%2Fcart", body["redirect"])

	status, body = call(t, func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.StatusCreated, fiber.Map{"id": 1})
	})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "success", body["status"])
}
