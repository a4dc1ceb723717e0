package profile

import (
	"time"

	"github.com/google/uuid"
)

type AccountType string

const (
	AccountTypeContador   AccountType = "contador"
	AccountTypeEscritorio AccountType = "escritorio"
)

// ParseAccountType maps signup metadata onto a recognized account type.
// Anything unrecognized (including empty) falls back to contador.
func ParseAccountType(raw string) AccountType {
	switch AccountType(raw) {
	case AccountTypeContador, AccountTypeEscritorio:
		return AccountType(raw)
	default:
		return AccountTypeContador
	}
}

func (a AccountType) Valid() bool {
	return a == AccountTypeContador || a == AccountTypeEscritorio
}

type Profile struct {
	ID           uuid.UUID
	Name         string
	Email        string
	AccountType  AccountType
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
}
