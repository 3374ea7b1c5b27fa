package model

import "time"

type ReturnItem struct {
	OrderItemID int64  `json:"orderItemId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type ReturnRequest struct {
	ID           int64        `json:"id"`
	OrderNumber  string       `json:"orderNumber"`
	UserID       int64        `json:"userId"`
	Email        string       `json:"email"`
	Reason       string       `json:"reason"`
	Status       ReturnStatus `json:"status"`
	Items        []ReturnItem `json:"items"`
	RefundAmount VND          `json:"refundAmount"`
	AdminNote    string       `json:"adminNote"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func (r ReturnRequest) RowID() int64 { return r.ID }

type FilterReturn struct {
	Pagination
	Status      string `query:"status" url:"status,omitempty" validate:"omitempty,oneof=REQUESTED APPROVED REJECTED REFUND_PENDING REFUNDED"`
	OrderNumber string `query:"orderNumber" url:"orderNumber,omitempty"`
	From        string `query:"from" url:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To          string `query:"to" url:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateReturnInput struct {
	OrderNumber  string  `json:"orderNumber" validate:"required"`
	Reason       string  `json:"reason" validate:"required,min=10,max=1000"`
	OrderItemIDs []int64 `json:"orderItemIds" validate:"required,min=1"`
}

type UpdateReturnStatusInput struct {
	Status ReturnStatus `json:"status" validate:"required,oneof=REQUESTED APPROVED REJECTED REFUND_PENDING REFUNDED"`
	Note   string       `json:"note" validate:"max=500"`
}

type BulkReturnStatusInput struct {
	IDs     []int64      `json:"ids" validate:"required,min=1"`
	Status  ReturnStatus `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Note    string       `json:"note" validate:"max=500"`
	Confirm bool         `json:"confirm"`
}

type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	ImageURLs []string  `json:"imageUrls"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewInput struct {
	ProductID   int64    `json:"productId" validate:"required,gt=0"`
	OrderNumber string   `json:"orderNumber" validate:"required"`
	Rating      int      `json:"rating" validate:"required,min=1,max=5"`
	Comment     string   `json:"comment" validate:"max=2000"`
	ImageURLs   []string `json:"imageUrls" validate:"max=5,dive,url"`
}

type Order struct {
	OrderNumber   string        `json:"orderNumber"`
	Status        string        `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	TotalAmount   VND           `json:"totalAmount"`
	CreatedAt     time.Time     `json:"createdAt"`
	Items         []CartItem    `json:"items"`
}
