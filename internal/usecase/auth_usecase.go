package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"contaflow/internal/domain/profile"
	"contaflow/internal/pkg/jwt"
	ucauth "contaflow/internal/usecase/auth"
)

const resetTokenTTL = 30 * time.Minute

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (profile.Profile, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (profile.Profile, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
}

type Auth struct {
	authSvc  *ucauth.Service
	profiles profile.Repository
	jwt      jwt.Service
	tokens   TokenStore
	logger   *log.Logger
}

func NewAuthUsecase(profiles profile.Repository, jwtSvc jwt.Service, tokens TokenStore, logger *log.Logger) *Auth {
	return &Auth{
		authSvc:  ucauth.NewService(profiles),
		profiles: profiles,
		jwt:      jwtSvc,
		tokens:   tokens,
		logger:   logger,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (profile.Profile, string, string, error) {
	p, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return profile.Profile{}, "", "", err
	}
	return u.issueTokens(p)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (profile.Profile, string, string, error) {
	p, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return profile.Profile{}, "", "", err
	}
	return u.issueTokens(p)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	if u.tokens != nil {
		denied, err := u.tokens.Exists(ctx, denylistKey(refreshToken))
		if err == nil && denied {
			return "", "", ErrInvalidRefreshToken
		}
	}

	p, err := u.profiles.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

// Logout denylists the refresh token for its remaining lifetime. Without
// Redis this degrades to a no-op acknowledgment: the token simply ages out.
func (u *Auth) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" || u.tokens == nil {
		return nil
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil || !u.jwt.IsRefreshToken(claims) {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := u.tokens.SetValue(ctx, denylistKey(refreshToken), "1", ttl); err != nil {
		if u.logger != nil {
			u.logger.Printf("auth logout denylist skipped | error=%v", err)
		}
	}
	return nil
}

// ForgotPassword always succeeds from the caller's point of view so email
// addresses cannot be enumerated. Token delivery is out of scope; the token
// is logged for the operator to forward.
func (u *Auth) ForgotPassword(ctx context.Context, email string) error {
	p, err := u.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}
	if u.tokens == nil {
		return nil
	}

	token := uuid.NewString()
	if err := u.tokens.SetValue(ctx, resetKey(token), p.ID.String(), resetTokenTTL); err != nil {
		if u.logger != nil {
			u.logger.Printf("password reset token not stored | user_id=%s error=%v", p.ID, err)
		}
		return nil
	}
	if u.logger != nil {
		u.logger.Printf("password reset token issued | user_id=%s token=%s ttl=%s", p.ID, token, resetTokenTTL)
	}
	return nil
}

func (u *Auth) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || u.tokens == nil {
		return ErrResetTokenInvalid
	}

	// An unreachable store fails closed: the token cannot be verified, so it
	// is treated as invalid rather than surfacing a server error.
	raw, ok, err := u.tokens.TakeValue(ctx, resetKey(token))
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("password reset store unavailable | error=%v", err)
		}
		return ErrResetTokenInvalid
	}
	if !ok {
		return ErrResetTokenInvalid
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return ErrResetTokenInvalid
	}

	if err := u.authSvc.SetPassword(ctx, userID, newPassword); err != nil {
		if errors.Is(err, ucauth.ErrInvalidInput) {
			return ErrInvalidInput
		}
		return ErrInternal
	}
	return nil
}

func (u *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	err := u.authSvc.ChangePassword(ctx, userID, current, next)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return ErrUnauthorized
	case errors.Is(err, ucauth.ErrInvalidInput):
		return ErrInvalidInput
	default:
		return ErrInternal
	}
}

func (u *Auth) issueTokens(p profile.Profile) (profile.Profile, string, string, error) {
	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email)
	if err != nil {
		return profile.Profile{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return profile.Profile{}, "", "", ErrInternal
	}
	return p, access, refresh, nil
}

func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:denylist:" + hex.EncodeToString(sum[:])
}

func resetKey(token string) string {
	return "auth:reset:" + token
}
