package catalog

import (
	"context"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	// GetByName matches case-insensitively against the stored name.
	GetByName(ctx context.Context, name string) (*Category, error)
	Create(ctx context.Context, c *Category) error
	List(ctx context.Context, limit, offset int) ([]*Category, int, error)
}

type MedicineRepository interface {
	// Create persists the medicine and its category links in submission order.
	Create(ctx context.Context, m *Medicine, categoryIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error)
	// FindByFields returns all medicines whose descriptive fields match
	// exactly (case-sensitive), categories loaded. The caller compares
	// category sets.
	FindByFields(ctx context.Context, ident Identity) ([]*Medicine, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
