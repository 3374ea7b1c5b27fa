package model

import "time"

type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Page là envelope phân trang mà API trả về cho mọi danh sách
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

type Pagination struct {
	Page int `query:"page" url:"page" json:"page" validate:"gte=0"`
	Size int `query:"size" url:"size,omitempty" json:"size" validate:"gte=0,lte=100"`
}

type TokenData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Next     string `json:"next"`
}

type LoginResponse struct {
	TokenData
	User User `json:"user"`
}
