package dto

import (
	"time"

	"github.com/google/uuid"

	"contaflow/internal/domain/profile"
)

type ProfileResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	AccountType string     `json:"account_type"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		AccountType: string(p.AccountType),
		CreatedAt:   p.CreatedAt,
		LastLogin:   p.LastLogin,
	}
}
