package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strconv"

	"sixthsoul_bff/config"
	"sixthsoul_bff/model"
)

// VNPay kiểm tra chữ ký các callback của cổng VNPay; URL thanh toán do API tạo
type VNPay struct {
	Config model.VNPayConfig
}

func NewVNPay(s config.Settings) *VNPay {
	return &VNPay{
		Config: model.VNPayConfig{
			TmnCode:    s.VNPayTmnCode,
			HashSecret: s.VNPayHashSecret,
			BaseURL:    s.VNPayURL,
		},
	}
}

// verify kiểm tra vnp_SecureHash trên bản sao query (không sửa query gốc)
func (v *VNPay) verify(query url.Values) bool {
	secureHash := query.Get("vnp_SecureHash")
	if secureHash == "" {
		return false
	}
	signed := url.Values{}
	for k, vals := range query {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		signed[k] = vals
	}
	expected := v.generateHash(signed.Encode())
	return hmac.Equal([]byte(secureHash), []byte(expected))
}

// VerifyReturnUrl đọc kết quả thanh toán từ URL VNPay chuyển về
func (v *VNPay) VerifyReturnUrl(query url.Values) model.PaymentResult {
	if !v.verify(query) {
		return model.PaymentResult{IsSuccess: false, Message: "Invalid hash"}
	}

	txnRef := query.Get("vnp_TxnRef")
	amount, _ := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)
	if query.Get("vnp_ResponseCode") == "00" && query.Get("vnp_TransactionStatus") != "02" {
		return model.PaymentResult{
			IsSuccess: true,
			TxnRef:    txnRef,
			Amount:    amount / 100,
			Status:    model.OrderStatusPaid,
		}
	}

	return model.PaymentResult{IsSuccess: false, TxnRef: txnRef, Amount: amount / 100, Message: "Payment failed"}
}

func (v *VNPay) generateHash(data string) string {
	h := hmac.New(sha512.New, []byte(v.Config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
