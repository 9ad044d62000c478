package availability

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// FindByGenericName returns every batch whose medicine's generic name
	// matches case-insensitively as a whole string, joined with medicine,
	// pharmacy and owner contact. Results come back in storage order
	// (creation order) so per-pharmacy dedup is deterministic. A nil
	// pharmacyID searches all pharmacies.
	FindByGenericName(ctx context.Context, genericName string, pharmacyID *uuid.UUID) ([]*Result, error)
}
