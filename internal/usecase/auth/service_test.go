package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"contaflow/internal/domain/profile"
)

type mockProfileRepo struct {
	byID    map[uuid.UUID]profile.Profile
	byEmail map[string]profile.Profile

	createErr error
	touchErr  error

	lastLoginWrites []time.Time
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{
		byID:    map[uuid.UUID]profile.Profile{},
		byEmail: map[string]profile.Profile{},
	}
}

func (m *mockProfileRepo) Create(_ context.Context, p profile.Profile) error {
	if m.createErr != nil {
		return m.createErr
	}
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
	if m.touchErr != nil {
		return m.touchErr
	}
	p, ok := m.byID[id]
	if !ok {
		return profile.ErrNotFound
	}
	p.LastLogin = &at
	m.byID[id] = p
	m.byEmail[p.Email] = p
	m.lastLoginWrites = append(m.lastLoginWrites, at)
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

func TestRegister_DefaultsWithoutMetadata(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewService(repo)

	p, err := svc.Register(context.Background(), RegisterInput{
		Email:    "maria@escritorio.com.br",
		Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if p.AccountType != profile.AccountTypeContador {
		t.Fatalf("account type = %q, want %q", p.AccountType, profile.AccountTypeContador)
	}
	if p.Name != "maria@escritorio.com.br" {
		t.Fatalf("name = %q, want fallback to email", p.Name)
	}
}

func TestRegister_UnrecognizedAccountTypeFallsBack(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewService(repo)

	p, err := svc.Register(context.Background(), RegisterInput{
		Email:       "joao@exemplo.com",
		Password:    "segredo-forte",
		Name:        "João",
		AccountType: "empresa",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.AccountType != profile.AccountTypeContador {
		t.Fatalf("account type = %q, want %q", p.AccountType, profile.AccountTypeContador)
	}
	if p.Name != "João" {
		t.Fatalf("name = %q, want metadata name", p.Name)
	}
}

func TestRegister_EscritorioKept(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewService(repo)

	p, err := svc.Register(context.Background(), RegisterInput{
		Email:       "firma@exemplo.com",
		Password:    "segredo-forte",
		AccountType: "escritorio",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.AccountType != profile.AccountTypeEscritorio {
		t.Fatalf("account type = %q, want escritorio", p.AccountType)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewService(repo)

	in := RegisterInput{Email: "maria@exemplo.com", Password: "segredo-forte"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_FailedInsertFailsSignup(t *testing.T) {
	repo := newMockProfileRepo()
	repo.createErr = errors.New("connection reset")
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "maria@exemplo.com",
		Password: "segredo-forte",
	})
	if err == nil {
		t.Fatal("expected signup to fail when the profile insert fails")
	}
	if len(repo.byID) != 0 {
		t.Fatal("no profile row should exist after a failed signup")
	}
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	svc := NewService(newMockProfileRepo())
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "curta"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogin_TouchesLastLoginEachTime(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "maria@exemplo.com", Password: "segredo-forte"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	base := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Hour)
	}

	var last time.Time
	for i := 0; i < 3; i++ {
		p, err := svc.Login(context.Background(), LoginInput{Email: "maria@exemplo.com", Password: "segredo-forte"})
		if err != nil {
			t.Fatalf("login %d: unexpected err: %v", i, err)
		}
		if p.LastLogin == nil {
			t.Fatalf("login %d: last login not set", i)
		}
		if !p.LastLogin.After(last) {
			t.Fatalf("login %d: last login %v not after previous %v", i, p.LastLogin, last)
		}
		last = *p.LastLogin
	}

	if len(repo.lastLoginWrites) != 3 {
		t.Fatalf("expected 3 last-login writes, got %d", len(repo.lastLoginWrites))
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "maria@exemplo.com", Password: "segredo-forte"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{Email: "maria@exemplo.com", Password: "errada-errada"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newMockProfileRepo())
	_, err := svc.Login(context.Background(), LoginInput{Email: "ninguem@exemplo.com", Password: "qualquer-coisa"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_SanitizesPasswordHash(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "maria@exemplo.com", Password: "segredo-forte"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	p, err := svc.Login(context.Background(), LoginInput{Email: "maria@exemplo.com", Password: "segredo-forte"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.PasswordHash != "" {
		t.Fatal("password hash must not leave the service")
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewService(repo)

	created, err := svc.Register(context.Background(), RegisterInput{Email: "maria@exemplo.com", Password: "segredo-forte"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), created.ID, "senha-errada", "novo-segredo"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), created.ID, "segredo-forte", "novo-segredo"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	stored := repo.byID[created.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("novo-segredo")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}
