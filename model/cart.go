package model

type CartItem struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Quantity    int    `json:"quantity"`
	UnitPrice   VND    `json:"unitPrice"`
	Subtotal    VND    `json:"subtotal"`
}

type Cart struct {
	ID          int64      `json:"id"`
	Items       []CartItem `json:"items"`
	TotalAmount VND        `json:"totalAmount"`
}
