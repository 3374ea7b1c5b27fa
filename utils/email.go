package utils

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/gomail.v2"

	"sixthsoul_bff/config"
	"sixthsoul_bff/model"
)

// OrderConfirmationData dữ liệu cho template email
type OrderConfirmationData struct {
	OrderNumber    string
	FullName       string
	Subtotal       string
	ShippingFee    string
	Discount       string
	TotalAmount    string
	PaymentMethod  string
	ShippingMethod string
	DetailLink     string
}

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`<!DOCTYPE html>
<html lang="vi">
<body style="font-family: Arial, sans-serif; color: #222">
  <h2>Cảm ơn {{.FullName}} đã mua sắm tại SixthSoul</h2>
  <p>Đơn hàng <strong>#{{.OrderNumber}}</strong> đã được ghi nhận.</p>
  <table cellpadding="6">
    <tr><td>Tạm tính</td><td>{{.Subtotal}}</td></tr>
    <tr><td>Phí vận chuyển ({{.ShippingMethod}})</td><td>{{.ShippingFee}}</td></tr>
    <tr><td>Giảm giá</td><td>-{{.Discount}}</td></tr>
    <tr><td><strong>Tổng cộng</strong></td><td><strong>{{.TotalAmount}}</strong></td></tr>
    <tr><td>Thanh toán</td><td>{{.PaymentMethod}}</td></tr>
  </table>
  <p><a href="{{.DetailLink}}">Xem chi tiết đơn hàng</a></p>
</body>
</html>`))

func NewOrderConfirmationData(rec model.OrderRecord, appURL string) OrderConfirmationData {
	return OrderConfirmationData{
		OrderNumber:    rec.OrderNumber,
		FullName:       rec.FullName,
		Subtotal:       rec.Subtotal.String(),
		ShippingFee:    rec.ShippingFee.String(),
		Discount:       rec.Discount.String(),
		TotalAmount:    rec.Total.String(),
		PaymentMethod:  rec.PaymentMethod.Label(),
		ShippingMethod: string(rec.ShippingMethod),
		DetailLink:     appURL + "/orders/" + rec.OrderNumber,
	}
}

func RenderOrderConfirmation(data OrderConfirmationData) (string, error) {
	var body bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// Mailer gửi email xác nhận đơn hàng qua SMTP
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	appURL string
}

func NewMailer(s config.Settings) *Mailer {
	if s.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(s.SMTPHost, s.SMTPPort, s.SMTPUsername, s.SMTPPassword),
		from:   s.SMTPFrom,
		appURL: s.AppURL,
	}
}

// OrderPlaced gửi email xác nhận (async để không chặn response)
func (m *Mailer) OrderPlaced(rec model.OrderRecord) {
	if m == nil || rec.Email == "" {
		return
	}
	go func() {
		body, err := RenderOrderConfirmation(NewOrderConfirmationData(rec, m.appURL))
		if err != nil {
			log.Errorf("Lỗi render template email: %v", err)
			return
		}

		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", rec.Email)
		msg.SetHeader("Subject", "Xác nhận đơn hàng #"+rec.OrderNumber)
		msg.SetBody("text/html", body)

		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Errorf("Lỗi gửi email đơn %s: %v", rec.OrderNumber, err)
		}
	}()
}
