package utils

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"

	"sixthsoul_bff/model"
)

// GenerateQRCode tạo QR code và trả về bytes PNG
func GenerateQRCode(content string, size int) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	err = png.Encode(buf, qr.Image(size))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// BankTransferContent là nội dung QR chuyển khoản: số tiền và mã đơn làm nội dung chuyển
func BankTransferContent(rec model.OrderRecord) string {
	return fmt.Sprintf("SIXTHSOUL|%s|%d|Thanh toan don %s", rec.OrderNumber, int64(rec.Total), rec.OrderNumber)
}
