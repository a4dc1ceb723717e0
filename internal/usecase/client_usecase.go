package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"contaflow/internal/domain/client"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type ClientListParams struct {
	PersonType string
	Search     string
	Limit      int
	Offset     int
}

type ClientInput struct {
	Name       string
	CpfCnpj    string
	PersonType string
	Email      *string
	Phone      *string
}

type ClientUsecase interface {
	List(ctx context.Context, ownerID uuid.UUID, p ClientListParams) ([]client.Client, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (client.Client, error)
	Create(ctx context.Context, ownerID uuid.UUID, in ClientInput) (client.Client, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in ClientInput) (client.Client, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type Clients struct {
	clients  client.Repository
	cache    SummaryCache
	notifier Notifier
}

func NewClientUsecase(clients client.Repository, cache SummaryCache, notifier Notifier) *Clients {
	return &Clients{clients: clients, cache: cache, notifier: notifier}
}

func (s *Clients) List(ctx context.Context, ownerID uuid.UUID, p ClientListParams) ([]client.Client, error) {
	f := client.Filter{
		Search: strings.TrimSpace(p.Search),
		Limit:  clampLimit(p.Limit),
		Offset: max(p.Offset, 0),
	}

	if pt := strings.TrimSpace(p.PersonType); pt != "" {
		t := client.PersonType(pt)
		if !t.Valid() {
			return nil, ErrInvalidInput
		}
		f.PersonType = &t
	}

	items, err := s.clients.List(ctx, ownerID, f)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Clients) Get(ctx context.Context, ownerID, id uuid.UUID) (client.Client, error) {
	c, err := s.clients.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return client.Client{}, ErrNotFound
		}
		return client.Client{}, ErrInternal
	}
	return c, nil
}

func (s *Clients) Create(ctx context.Context, ownerID uuid.UUID, in ClientInput) (client.Client, error) {
	c, err := s.validate(ownerID, in)
	if err != nil {
		return client.Client{}, err
	}
	c.ID = uuid.New()

	created, err := s.clients.Create(ctx, c)
	if err != nil {
		return client.Client{}, ErrInternal
	}

	s.invalidate(ctx, ownerID)
	return created, nil
}

func (s *Clients) Update(ctx context.Context, ownerID, id uuid.UUID, in ClientInput) (client.Client, error) {
	c, err := s.validate(ownerID, in)
	if err != nil {
		return client.Client{}, err
	}
	c.ID = id

	updated, err := s.clients.Update(ctx, c)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return client.Client{}, ErrNotFound
		}
		return client.Client{}, ErrInternal
	}

	s.invalidate(ctx, ownerID)
	return updated, nil
}

// Delete removes the client only. Tasks referencing it keep existing with a
// cleared client reference (schema-level SET NULL).
func (s *Clients) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.clients.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	s.invalidate(ctx, ownerID)
	return nil
}

func (s *Clients) validate(ownerID uuid.UUID, in ClientInput) (client.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return client.Client{}, ErrInvalidInput
	}

	pt := client.PersonType(strings.TrimSpace(in.PersonType))
	if !pt.Valid() {
		return client.Client{}, ErrInvalidInput
	}

	doc := client.NormalizeDocument(in.CpfCnpj)
	if !client.ValidDocument(pt, doc) {
		return client.Client{}, ErrInvalidInput
	}

	return client.Client{
		UserID:     ownerID,
		Name:       name,
		CpfCnpj:    doc,
		PersonType: pt,
		Email:      normalizeOptional(in.Email),
		Phone:      normalizeOptional(in.Phone),
	}, nil
}

func (s *Clients) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.DeleteByPattern(ctx, dashboardPattern(ownerID))
	}
	if s.notifier != nil {
		s.notifier.NotifyUser(ownerID, EventClientsUpdated)
	}
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
