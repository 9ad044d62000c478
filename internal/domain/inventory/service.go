package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/epharmacy/epharmacy/internal/domain/catalog"
	"github.com/epharmacy/epharmacy/internal/domain/pharmacy"
)

// MedicineCatalog is the slice of the catalog service the ledger needs.
type MedicineCatalog interface {
	ResolveOrCreateCategories(ctx context.Context, raw string) ([]catalog.Category, error)
	FindOrCreateMedicine(ctx context.Context, ident catalog.Identity) (*catalog.Medicine, error)
	GetMedicine(ctx context.Context, id uuid.UUID) (*catalog.Medicine, error)
	DeleteMedicine(ctx context.Context, id uuid.UUID) error
}

// PharmacyDirectory is the read-only pharmacy lookup the ledger needs.
type PharmacyDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*pharmacy.Pharmacy, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*pharmacy.Pharmacy, error)
}

// TxRunner runs a function inside a storage transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	batches    BatchRepository
	catalog    MedicineCatalog
	pharmacies PharmacyDirectory
	tx         TxRunner
}

func NewService(batches BatchRepository, cat MedicineCatalog, pharmacies PharmacyDirectory, tx TxRunner) *Service {
	return &Service{batches: batches, catalog: cat, pharmacies: pharmacies, tx: tx}
}

// CreateStockInput is the full create-stock submission: medicine identity
// fields, a "/"-delimited category string, and the expiration entries.
type CreateStockInput struct {
	GenericName    string
	BrandName      string
	DosageForm     string
	DosageStrength string
	Classification string
	Description    string
	Category       string
	Entries        []ExpirationEntry
	PharmacyID     uuid.UUID
}

// CreateStock runs the full submission flow: resolve categories, find or
// create the medicine identity, then persist a new batch for the pharmacy.
func (s *Service) CreateStock(ctx context.Context, input CreateStockInput) (*BatchDetail, error) {
	if len(input.Entries) == 0 {
		return nil, fmt.Errorf("%w: expirationPerStock must not be empty", ErrInvalidInput)
	}
	for _, e := range input.Entries {
		if e.ExpirationDate == "" {
			return nil, fmt.Errorf("%w: expirationDate is required on every entry", ErrInvalidInput)
		}
	}

	ph, err := s.pharmacies.Get(ctx, input.PharmacyID)
	if errors.Is(err, pharmacy.ErrNotFound) {
		return nil, fmt.Errorf("%w: pharmacy %s", ErrNotFound, input.PharmacyID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve pharmacy: %w", err)
	}

	cats, err := s.catalog.ResolveOrCreateCategories(ctx, input.Category)
	if err != nil {
		return nil, translateCatalogErr(err)
	}
	catIDs := make([]uuid.UUID, 0, len(cats))
	for _, c := range cats {
		catIDs = append(catIDs, c.ID)
	}

	med, err := s.catalog.FindOrCreateMedicine(ctx, catalog.Identity{
		GenericName:    input.GenericName,
		BrandName:      input.BrandName,
		DosageForm:     input.DosageForm,
		DosageStrength: input.DosageStrength,
		Classification: input.Classification,
		Description:    input.Description,
		CategoryIDs:    catIDs,
	})
	if err != nil {
		return nil, translateCatalogErr(err)
	}

	batch := &StockBatch{
		MedicineID: med.ID,
		PharmacyID: ph.ID,
		Entries:    input.Entries,
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("create stock batch: %w", err)
	}

	return &BatchDetail{StockBatch: *batch, Medicine: med, Pharmacy: ph}, nil
}

// GetBatch returns one batch with expiry depletion applied and persisted.
func (s *Service) GetBatch(ctx context.Context, id uuid.UUID) (*BatchDetail, error) {
	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.deplete(ctx, batch); err != nil {
		return nil, err
	}
	return s.detail(ctx, batch)
}

// ListForOwner resolves the owner's pharmacy and lists its batches. An owner
// without a pharmacy is an input error, not a not-found.
func (s *Service) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*BatchDetail, error) {
	ph, err := s.pharmacies.GetByOwner(ctx, ownerID)
	if errors.Is(err, pharmacy.ErrNotFound) {
		return nil, fmt.Errorf("%w: no pharmacy for owner %s", ErrInvalidInput, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve owner pharmacy: %w", err)
	}
	return s.listForPharmacy(ctx, ph)
}

// ListForPharmacy lists a pharmacy's batches with depletion applied.
func (s *Service) ListForPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]*BatchDetail, error) {
	ph, err := s.pharmacies.Get(ctx, pharmacyID)
	if errors.Is(err, pharmacy.ErrNotFound) {
		return nil, fmt.Errorf("%w: pharmacy %s", ErrNotFound, pharmacyID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve pharmacy: %w", err)
	}
	return s.listForPharmacy(ctx, ph)
}

func (s *Service) listForPharmacy(ctx context.Context, ph *pharmacy.Pharmacy) ([]*BatchDetail, error) {
	batches, err := s.batches.ListByPharmacy(ctx, ph.ID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	details := make([]*BatchDetail, 0, len(batches))
	for _, batch := range batches {
		if err := s.deplete(ctx, batch); err != nil {
			return nil, err
		}
		med, err := s.catalog.GetMedicine(ctx, batch.MedicineID)
		if err != nil {
			return nil, translateCatalogErr(err)
		}
		details = append(details, &BatchDetail{StockBatch: *batch, Medicine: med, Pharmacy: ph})
	}
	return details, nil
}

// UpdateBatch replaces the batch's expiration entries wholesale; this models
// a full re-count of shelf stock, not an incremental add.
func (s *Service) UpdateBatch(ctx context.Context, id uuid.UUID, entries []ExpirationEntry) (*BatchDetail, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: expirationPerStock must not be empty", ErrInvalidInput)
	}
	for _, e := range entries {
		if e.ExpirationDate == "" {
			return nil, fmt.Errorf("%w: expirationDate is required on every entry", ErrInvalidInput)
		}
	}

	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.batches.UpdateEntries(ctx, id, entries); err != nil {
		return nil, err
	}
	batch.Entries = entries

	if err := s.deplete(ctx, batch); err != nil {
		return nil, err
	}
	return s.detail(ctx, batch)
}

func (s *Service) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	return s.batches.Delete(ctx, id)
}

// DeleteMedicineCascade removes all batches referencing the medicine and then
// the medicine itself, in a single transaction.
func (s *Service) DeleteMedicineCascade(ctx context.Context, medicineID uuid.UUID) error {
	if _, err := s.catalog.GetMedicine(ctx, medicineID); err != nil {
		return translateCatalogErr(err)
	}
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.batches.DeleteByMedicine(ctx, medicineID); err != nil {
			return err
		}
		return s.catalog.DeleteMedicine(ctx, medicineID)
	})
}

// deplete applies expiry depletion to the batch and persists the result when
// anything changed, so the caller never sees stale pre-depletion quantities.
func (s *Service) deplete(ctx context.Context, batch *StockBatch) error {
	entries, changed := DepleteExpired(batch.Entries, time.Now())
	if !changed {
		return nil
	}
	if err := s.batches.UpdateEntries(ctx, batch.ID, entries); err != nil {
		return fmt.Errorf("persist depleted entries: %w", err)
	}
	batch.Entries = entries
	return nil
}

func (s *Service) detail(ctx context.Context, batch *StockBatch) (*BatchDetail, error) {
	med, err := s.catalog.GetMedicine(ctx, batch.MedicineID)
	if err != nil {
		return nil, translateCatalogErr(err)
	}
	ph, err := s.pharmacies.Get(ctx, batch.PharmacyID)
	if err != nil {
		return nil, fmt.Errorf("resolve pharmacy: %w", err)
	}
	return &BatchDetail{StockBatch: *batch, Medicine: med, Pharmacy: ph}, nil
}

// translateCatalogErr maps the catalog package's sentinels onto this
// package's so handlers only deal with one error taxonomy.
func translateCatalogErr(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, catalog.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return err
	}
}
