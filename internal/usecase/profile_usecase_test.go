package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"contaflow/internal/domain/profile"
)

func TestProfileGetMe(t *testing.T) {
	repo := newMockProfileRepo()
	uc := NewProfileUsecase(repo)

	p := profile.Profile{
		ID:           uuid.New(),
		Name:         "Maria",
		Email:        "maria@exemplo.com",
		AccountType:  profile.AccountTypeContador,
		PasswordHash: "bcrypt-hash",
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := uc.GetMe(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Email != p.Email || got.Name != p.Name {
		t.Fatalf("got %+v", got)
	}
	if got.PasswordHash != "" {
		t.Fatal("password hash must not leave the usecase")
	}

	if _, err := uc.GetMe(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileUpdateName(t *testing.T) {
	repo := newMockProfileRepo()
	uc := NewProfileUsecase(repo)

	p := profile.Profile{ID: uuid.New(), Name: "Maria", Email: "maria@exemplo.com"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	updated, err := uc.UpdateName(context.Background(), p.ID, "  Maria Silva  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Name != "Maria Silva" {
		t.Fatalf("name = %q, want trimmed %q", updated.Name, "Maria Silva")
	}

	if _, err := uc.UpdateName(context.Background(), p.ID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.UpdateName(context.Background(), p.ID, strings.Repeat("a", maxNameLen+1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("oversized name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.UpdateName(context.Background(), uuid.New(), "Outro Nome"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing profile: expected ErrNotFound, got %v", err)
	}
}

// Name length is measured in characters, not bytes: an accented name near the
// limit must not be rejected for its multi-byte encoding.
func TestProfileUpdateName_CountsRunes(t *testing.T) {
	repo := newMockProfileRepo()
	uc := NewProfileUsecase(repo)

	p := profile.Profile{ID: uuid.New(), Name: "Maria", Email: "maria@exemplo.com"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	accented := strings.Repeat("ç", maxNameLen)
	if len(accented) <= maxNameLen {
		t.Fatal("fixture must exceed the limit in bytes while staying within it in runes")
	}

	updated, err := uc.UpdateName(context.Background(), p.ID, accented)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Name != accented {
		t.Fatal("accented name at the rune limit must be stored unchanged")
	}

	if _, err := uc.UpdateName(context.Background(), p.ID, strings.Repeat("ç", maxNameLen+1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("one rune over the limit: expected ErrInvalidInput, got %v", err)
	}
}
