package response

import (
	"time"

	"billing-habit/internal/data/entity"
)

type UserResponse struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Credit     int       `json:"credit"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

type VerifyOTPResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	IsNewUser bool         `json:"isNewUser"`
	ExpiresAt time.Time    `json:"-"`
}

func UserToResponse(a *entity.Account) UserResponse {
	return UserResponse{
		ID:         a.ID.String(),
		Number:     a.Number,
		Name:       a.Name,
		Address:    a.Address,
		Credit:     a.Credit,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
	}
}
