package model

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
}

type PaymentResult struct {
	IsSuccess bool   `json:"isSuccess"`
	TxnRef    string `json:"txnRef"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"` // PAID hoặc rỗng
	Message   string `json:"message"`
}
