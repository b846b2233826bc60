package dto

import (
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,max=80"`
	Role     string `json:"role" binding:"required,oneof=provider requester"`
}

// LoginRequest is the sign-in form
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AvailabilityRequest toggles provider listing
type AvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// ProfileRequest renames the account
type ProfileRequest struct {
	Name string `json:"name" binding:"required,max=80"`
}

// UserResponse is the caller's own profile
type UserResponse struct {
	ID                       string    `json:"id"`
	Email                    string    `json:"email"`
	Name                     string    `json:"name"`
	Role                     string    `json:"role"`
	Coins                    int64     `json:"coins"`
	IsAvailable              bool      `json:"isAvailable"`
	TotalMBShared            int64     `json:"totalMbShared"`
	TotalMBConsumed          int64     `json:"totalMbConsumed"`
	TotalSessionsAsProvider  int64     `json:"totalSessionsAsProvider"`
	TotalSessionsAsRequester int64     `json:"totalSessionsAsRequester"`
	CreatedAt                time.Time `json:"createdAt"`
}

// AuthResponse carries a session token and the account it belongs to
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps an account
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                       u.ID,
		Email:                    u.Email,
		Name:                     u.Name,
		Role:                     string(u.Role),
		Coins:                    u.Coins(),
		IsAvailable:              u.IsAvailable,
		TotalMBShared:            u.Stats.TotalMBShared,
		TotalMBConsumed:          u.Stats.TotalMBConsumed,
		TotalSessionsAsProvider:  u.Stats.TotalSessionsAsProvider,
		TotalSessionsAsRequester: u.Stats.TotalSessionsAsRequester,
		CreatedAt:                u.CreatedAt,
	}
}
