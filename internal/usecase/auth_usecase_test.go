package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"contaflow/internal/domain/profile"
	"contaflow/internal/pkg/jwt"
	ucauth "contaflow/internal/usecase/auth"
)

type mockProfileRepo struct {
	byID    map[uuid.UUID]profile.Profile
	byEmail map[string]profile.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{
		byID:    map[uuid.UUID]profile.Profile{},
		byEmail: map[string]profile.Profile{},
	}
}

func (m *mockProfileRepo) Create(_ context.Context, p profile.Profile) error {
	if _, ok := m.byEmail[p.Email]; ok {
		return profile.ErrEmailTaken
	}
	m.byID[p.ID] = p
	m.byEmail[p.Email] = p
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) GetByEmail(_ context.Context, email string) (profile.Profile, error) {
	p, ok := m.byEmail[email]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockProfileRepo) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	p, ok := m.byID[id]
	if !ok {
		return profile.ErrNotFound
	}
	p.Name = name
	m.byID[id] = p
	m.byEmail[p.Email] = p
	return nil
}

func (m *mockProfileRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	p, ok := m.byID[id]
	if !ok {
		return profile.ErrNotFound
	}
	p.PasswordHash = hash
	m.byID[id] = p
	m.byEmail[p.Email] = p
	return nil
}

func (m *mockProfileRepo) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	p, ok := m.byID[id]
	if !ok {
		return profile.ErrNotFound
	}
	p.LastLogin = &at
	m.byID[id] = p
	m.byEmail[p.Email] = p
	return nil
}

func (m *mockProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	p, ok := m.byID[id]
	if !ok {
		return profile.ErrNotFound
	}
	delete(m.byID, id)
	delete(m.byEmail, p.Email)
	return nil
}

// mockJWTService hands out opaque tokens and tracks per-token claims so
// refresh and logout flows can be driven without real signing.
type mockJWTService struct {
	seq    int
	claims map[string]jwt.Claims
}

func newMockJWTService() *mockJWTService {
	return &mockJWTService{claims: map[string]jwt.Claims{}}
}

func (m *mockJWTService) issue(tokenType string, userID uuid.UUID, email string, expiresAt time.Time) string {
	m.seq++
	token := fmt.Sprintf("%s-%d", tokenType, m.seq)
	m.claims[token] = jwt.Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
	}
	return token
}

func (m *mockJWTService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return m.issue(jwt.TokenTypeAccess, userID, email, time.Now().Add(15*time.Minute)), nil
}

func (m *mockJWTService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return m.issue(jwt.TokenTypeRefresh, userID, "", time.Now().Add(7*24*time.Hour)), nil
}

func (m *mockJWTService) ValidateToken(tokenString string) (jwt.Claims, error) {
	c, ok := m.claims[tokenString]
	if !ok {
		return jwt.Claims{}, jwt.ErrTokenInvalid
	}
	if time.Now().After(c.ExpiresAt.Time) {
		return jwt.Claims{}, jwt.ErrTokenExpired
	}
	return c, nil
}

func (m *mockJWTService) IsRefreshToken(claims jwt.Claims) bool {
	return claims.TokenType == jwt.TokenTypeRefresh
}

type mockTokenStore struct {
	values map[string]string
	ttls   map[string]time.Duration

	takeErr error
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockTokenStore) SetValue(_ context.Context, key, value string, ttl time.Duration) error {
	m.values[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockTokenStore) TakeValue(_ context.Context, key string) (string, bool, error) {
	if m.takeErr != nil {
		return "", false, m.takeErr
	}
	v, ok := m.values[key]
	if ok {
		delete(m.values, key)
	}
	return v, ok, nil
}

func (m *mockTokenStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.values[key]
	return ok, nil
}

func newAuthFixture(t *testing.T) (*Auth, *mockProfileRepo, *mockJWTService, *mockTokenStore) {
	t.Helper()
	profiles := newMockProfileRepo()
	jwtSvc := newMockJWTService()
	tokens := newMockTokenStore()
	logger := log.New(testWriter{t}, "", 0)
	return NewAuthUsecase(profiles, jwtSvc, tokens, logger), profiles, jwtSvc, tokens
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func TestAuthRefresh_RotatesTokenPair(t *testing.T) {
	uc, _, _, _ := newAuthFixture(t)

	_, _, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "maria@exemplo.com", Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	access2, refresh2, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if access2 == "" || refresh2 == "" {
		t.Fatal("refresh must return a full token pair")
	}
	if refresh2 == refresh {
		t.Fatal("refresh token must rotate")
	}
}

func TestAuthRefresh_RejectsAccessToken(t *testing.T) {
	uc, _, _, _ := newAuthFixture(t)

	_, access, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "maria@exemplo.com", Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), access); err != ErrInvalidRefreshToken {
		t.Fatalf("access token used as refresh: expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthRefresh_ExpiredToken(t *testing.T) {
	uc, profiles, jwtSvc, _ := newAuthFixture(t)

	p := profile.Profile{ID: uuid.New(), Email: "maria@exemplo.com"}
	if err := profiles.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	expired := jwtSvc.issue(jwt.TokenTypeRefresh, p.ID, "", time.Now().Add(-time.Minute))

	if _, _, err := uc.Refresh(context.Background(), expired); err != ErrRefreshTokenExpired {
		t.Fatalf("expected ErrRefreshTokenExpired, got %v", err)
	}
}

func TestAuthRefresh_GarbageToken(t *testing.T) {
	uc, _, _, _ := newAuthFixture(t)
	if _, _, err := uc.Refresh(context.Background(), "not-a-token"); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
	if _, _, err := uc.Refresh(context.Background(), ""); err != ErrUnauthorized {
		t.Fatalf("empty token: expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthRefresh_DeletedProfile(t *testing.T) {
	uc, profiles, _, _ := newAuthFixture(t)

	p, _, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "maria@exemplo.com", Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := profiles.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), refresh); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthLogout_DenylistsRefreshToken(t *testing.T) {
	uc, _, _, tokens := newAuthFixture(t)

	_, _, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "maria@exemplo.com", Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), refresh); err != nil {
		t.Fatalf("refresh before logout: unexpected err: %v", err)
	}

	if err := uc.Logout(context.Background(), refresh); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(tokens.values) != 1 {
		t.Fatalf("expected 1 denylist entry, got %d", len(tokens.values))
	}

	if _, _, err := uc.Refresh(context.Background(), refresh); err != ErrInvalidRefreshToken {
		t.Fatalf("refresh after logout: expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthLogout_ToleratesBadTokens(t *testing.T) {
	uc, _, _, tokens := newAuthFixture(t)

	if err := uc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(tokens.values) != 0 {
		t.Fatal("invalid tokens must not reach the denylist")
	}
}

func TestAuthForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	uc, _, _, tokens := newAuthFixture(t)

	if err := uc.ForgotPassword(context.Background(), "ninguem@exemplo.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if len(tokens.values) != 0 {
		t.Fatal("no reset token may be stored for an unknown email")
	}
}

func TestAuthResetPassword_TokenIsSingleUse(t *testing.T) {
	uc, profiles, _, tokens := newAuthFixture(t)

	p, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "maria@exemplo.com", Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := uc.ForgotPassword(context.Background(), "maria@exemplo.com"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(tokens.values) != 1 {
		t.Fatalf("expected 1 stored reset token, got %d", len(tokens.values))
	}

	var token string
	for key := range tokens.values {
		token = strings.TrimPrefix(key, "auth:reset:")
	}

	oldHash := profiles.byID[p.ID].PasswordHash
	if err := uc.ResetPassword(context.Background(), token, "novo-segredo"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if profiles.byID[p.ID].PasswordHash == oldHash {
		t.Fatal("password hash unchanged after reset")
	}

	if err := uc.ResetPassword(context.Background(), token, "outro-segredo"); err != ErrResetTokenInvalid {
		t.Fatalf("second use of reset token: expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestAuthResetPassword_StoreDownFailsClosed(t *testing.T) {
	uc, profiles, _, tokens := newAuthFixture(t)

	p, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "maria@exemplo.com", Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	tokens.takeErr = errors.New("connection refused")
	oldHash := profiles.byID[p.ID].PasswordHash

	if err := uc.ResetPassword(context.Background(), uuid.NewString(), "novo-segredo"); err != ErrResetTokenInvalid {
		t.Fatalf("unreachable store: expected ErrResetTokenInvalid, got %v", err)
	}
	if profiles.byID[p.ID].PasswordHash != oldHash {
		t.Fatal("no password may change while the store is unreachable")
	}
}

func TestAuthResetPassword_UnknownToken(t *testing.T) {
	uc, _, _, _ := newAuthFixture(t)

	if err := uc.ResetPassword(context.Background(), uuid.NewString(), "novo-segredo"); err != ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
	if err := uc.ResetPassword(context.Background(), "", "novo-segredo"); err != ErrResetTokenInvalid {
		t.Fatalf("empty token: expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestAuthChangePassword_ErrorMapping(t *testing.T) {
	uc, _, _, _ := newAuthFixture(t)

	p, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "maria@exemplo.com", Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := uc.ChangePassword(context.Background(), p.ID, "senha-errada", "novo-segredo"); err != ErrUnauthorized {
		t.Fatalf("wrong current password: expected ErrUnauthorized, got %v", err)
	}
	if err := uc.ChangePassword(context.Background(), p.ID, "segredo-forte", "curta"); err != ErrInvalidInput {
		t.Fatalf("short new password: expected ErrInvalidInput, got %v", err)
	}
	if err := uc.ChangePassword(context.Background(), p.ID, "segredo-forte", "novo-segredo"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
