package pharmacy

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Pharmacy, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Pharmacy, error)
	List(ctx context.Context, approvedOnly bool, limit, offset int) ([]*Pharmacy, int, error)
	GetOwner(ctx context.Context, pharmacyID uuid.UUID) (*User, error)
}
