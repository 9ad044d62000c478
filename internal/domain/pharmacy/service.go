package pharmacy

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	pharmacies Repository
}

func NewService(pharmacies Repository) *Service {
	return &Service{pharmacies: pharmacies}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Pharmacy, error) {
	return s.pharmacies.GetByID(ctx, id)
}

func (s *Service) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Pharmacy, error) {
	return s.pharmacies.GetByOwner(ctx, ownerID)
}

// List returns approved pharmacies only; unapproved entries are visible
// through admin tooling, not this API.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Pharmacy, int, error) {
	return s.pharmacies.List(ctx, true, limit, offset)
}

func (s *Service) Owner(ctx context.Context, pharmacyID uuid.UUID) (*User, error) {
	return s.pharmacies.GetOwner(ctx, pharmacyID)
}
