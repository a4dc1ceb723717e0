package client

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PersonType string

const (
	PersonTypePF PersonType = "PF"
	PersonTypePJ PersonType = "PJ"
)

func (p PersonType) Valid() bool {
	return p == PersonTypePF || p == PersonTypePJ
}

type Client struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	CpfCnpj    string
	PersonType PersonType
	Email      *string
	Phone      *string
	CreatedAt  time.Time
}

// NormalizeDocument strips formatting punctuation from a CPF/CNPJ so only
// digits are persisted.
func NormalizeDocument(doc string) string {
	var b strings.Builder
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidDocument checks the digit count against the person type: CPF carries
// 11 digits, CNPJ carries 14.
func ValidDocument(pt PersonType, digits string) bool {
	switch pt {
	case PersonTypePF:
		return len(digits) == 11
	case PersonTypePJ:
		return len(digits) == 14
	default:
		return false
	}
}
