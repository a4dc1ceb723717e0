package dto

import (
	"time"

	"github.com/google/uuid"

	"contaflow/internal/domain/client"
)

type ClientResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	CpfCnpj    string    `json:"cpf_cnpj"`
	PersonType string    `json:"person_type"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewClientResponse(c client.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		CpfCnpj:    c.CpfCnpj,
		PersonType: string(c.PersonType),
		Email:      c.Email,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
	}
}

func NewClientListResponse(items []client.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewClientResponse(c))
	}
	return out
}
