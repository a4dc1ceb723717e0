package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"contaflow/internal/domain/profile"
)

const maxNameLen = 200

type ProfileUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	UpdateName(ctx context.Context, userID uuid.UUID, name string) (profile.Profile, error)
}

type Profiles struct {
	profiles profile.Repository
}

func NewProfileUsecase(profiles profile.Repository) *Profiles {
	return &Profiles{profiles: profiles}
}

func (s *Profiles) GetMe(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrNotFound
		}
		return profile.Profile{}, ErrInternal
	}
	p.PasswordHash = ""
	return p, nil
}

// UpdateName is the only profile mutation the owner can perform; email and
// account type are fixed at signup.
func (s *Profiles) UpdateName(ctx context.Context, userID uuid.UUID, name string) (profile.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return profile.Profile{}, ErrInvalidInput
	}

	if err := s.profiles.UpdateName(ctx, userID, name); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrNotFound
		}
		return profile.Profile{}, ErrInternal
	}

	return s.GetMe(ctx, userID)
}
