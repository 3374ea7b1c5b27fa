package model

import "time"

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone"`
	Role          Role      `json:"role"`
	Active        bool      `json:"active"`
	Tier          Tier      `json:"tier"`
	LoyaltyPoints int64     `json:"loyaltyPoints"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (u User) RowID() int64 { return u.ID }

type FilterUser struct {
	Pagination
	Search string `query:"search" url:"search,omitempty"`
	Role   string `query:"role" url:"role,omitempty" validate:"omitempty,oneof=CUSTOMER STAFF ADMIN"`
	Active *bool  `query:"active" url:"active,omitempty"`
}

type UpdateUserStatusInput struct {
	Active bool `json:"active"`
}

type UpdateUserRoleInput struct {
	Role Role `json:"role" validate:"required,oneof=CUSTOMER STAFF ADMIN"`
}

type LoginActivity struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l LoginActivity) RowID() int64 { return l.ID }

type FilterLoginActivity struct {
	Pagination
	UserID  int64  `query:"userId" url:"userId,omitempty" validate:"gte=0"`
	Success *bool  `query:"success" url:"success,omitempty"`
	From    string `query:"from" url:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To      string `query:"to" url:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type LoyaltyPoint struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	Points    int64     `json:"points"`
	Tier      Tier      `json:"tier"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l LoyaltyPoint) RowID() int64 { return l.ID }

type FilterLoyaltyPoint struct {
	Pagination
	UserID int64  `query:"userId" url:"userId,omitempty" validate:"gte=0"`
	Tier   string `query:"tier" url:"tier,omitempty" validate:"omitempty,oneof=BRONZE SILVER GOLD PLATINUM"`
}

type AdjustPointsInput struct {
	Delta  int64  `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required,max=255"`
}

type LoyaltyHistory struct {
	ID        int64     `json:"id"`
	Delta     int64     `json:"delta"`
	Reason    string    `json:"reason"`
	OrderID   *int64    `json:"orderId"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoyaltySummary struct {
	Points  int64            `json:"points"`
	Tier    Tier             `json:"tier"`
	History []LoyaltyHistory `json:"history"`
}
