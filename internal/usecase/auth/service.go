package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"contaflow/internal/domain/profile"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string

	// Optional signup metadata.
	Name        string
	AccountType string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	profiles profile.Repository
	now      func() time.Time
}

func NewService(profiles profile.Repository) *Service {
	return &Service{profiles: profiles, now: time.Now}
}

// Register provisions exactly one profile for the new identity. The display
// name falls back to the email when metadata carries none, and unrecognized
// account types fall back to contador. A failed insert fails the signup.
func (s *Service) Register(ctx context.Context, in RegisterInput) (profile.Profile, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return profile.Profile{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return profile.Profile{}, ErrInvalidInput
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}

	p := profile.Profile{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		AccountType:  profile.ParseAccountType(strings.TrimSpace(in.AccountType)),
		PasswordHash: string(hash),
	}

	if err := s.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, profile.ErrEmailTaken) {
			return profile.Profile{}, ErrEmailAlreadyRegistered
		}
		return profile.Profile{}, ErrInternal
	}

	created, err := s.profiles.GetByID(ctx, p.ID)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	return sanitizeProfile(created), nil
}

// Login verifies the credentials and overwrites last_login with the current
// time as part of the sign-in flow.
func (s *Service) Login(ctx context.Context, in LoginInput) (profile.Profile, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return profile.Profile{}, ErrInvalidCredentials
	}

	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrInvalidCredentials
		}
		return profile.Profile{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return profile.Profile{}, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.profiles.TouchLastLogin(ctx, p.ID, now); err != nil {
		return profile.Profile{}, ErrInternal
	}
	p.LastLogin = &now

	return sanitizeProfile(p), nil
}

// ChangePassword requires the caller's current password.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	return s.SetPassword(ctx, userID, next)
}

// SetPassword rehashes without checking the old password; callers must have
// authenticated the identity some other way (active session or reset token).
func (s *Service) SetPassword(ctx context.Context, userID uuid.UUID, next string) error {
	if !isValidPassword(next) {
		return ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}
	if err := s.profiles.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return ErrInternal
	}
	return nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeProfile(p profile.Profile) profile.Profile {
	p.PasswordHash = ""
	return p
}
