package inventory

import (
	"context"

	"github.com/google/uuid"
)

type BatchRepository interface {
	Create(ctx context.Context, b *StockBatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*StockBatch, error)
	ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]*StockBatch, error)
	// UpdateEntries replaces the batch's entry list wholesale.
	UpdateEntries(ctx context.Context, id uuid.UUID, entries []ExpirationEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByMedicine(ctx context.Context, medicineID uuid.UUID) error
}
