package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

type Service struct {
	categories CategoryRepository
	medicines  MedicineRepository
}

func NewService(categories CategoryRepository, medicines MedicineRepository) *Service {
	return &Service{categories: categories, medicines: medicines}
}

// ResolveOrCreateCategories resolves a "/"-delimited category submission to
// category records, creating any piece that has no case-insensitive match.
// The result preserves input order, duplicates included. Categories created
// before a later piece fails remain valid; there is no multi-row rollback.
func (s *Service) ResolveOrCreateCategories(ctx context.Context, raw string) ([]Category, error) {
	names := SplitCategoryNames(raw)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	result := make([]Category, 0, len(names))
	for _, name := range names {
		cat, err := s.categories.GetByName(ctx, name)
		if errors.Is(err, ErrNotFound) {
			cat = &Category{Name: name}
			if err := s.categories.Create(ctx, cat); err != nil {
				return nil, fmt.Errorf("create category %q: %w", name, err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("resolve category %q: %w", name, err)
		}
		result = append(result, *cat)
	}
	return result, nil
}

// FindOrCreateMedicine returns the existing medicine whose descriptive fields
// and category-id set both match the identity exactly, or creates a new one.
// A partial category overlap is a different identity and yields a new record.
func (s *Service) FindOrCreateMedicine(ctx context.Context, ident Identity) (*Medicine, error) {
	if ident.GenericName == "" {
		return nil, fmt.Errorf("%w: generic name is required", ErrInvalidInput)
	}
	if len(ident.CategoryIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", ErrInvalidInput)
	}

	candidates, err := s.medicines.FindByFields(ctx, ident)
	if err != nil {
		return nil, fmt.Errorf("find medicine: %w", err)
	}

	want := idSet(ident.CategoryIDs)
	for _, m := range candidates {
		have := make([]uuid.UUID, 0, len(m.Categories))
		for _, c := range m.Categories {
			have = append(have, c.ID)
		}
		if equalIDSets(want, idSet(have)) {
			return m, nil
		}
	}

	m := &Medicine{
		GenericName:    ident.GenericName,
		BrandName:      ident.BrandName,
		DosageForm:     ident.DosageForm,
		DosageStrength: ident.DosageStrength,
		Classification: ident.Classification,
		Description:    ident.Description,
	}
	if err := s.medicines.Create(ctx, m, dedupIDs(ident.CategoryIDs)); err != nil {
		return nil, fmt.Errorf("create medicine: %w", err)
	}
	return s.medicines.GetByID(ctx, m.ID)
}

func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.medicines.GetByID(ctx, id)
}

// DeleteMedicine removes the medicine record only. Callers owning dependent
// stock must remove it first (see the inventory cascade).
func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	return s.medicines.Delete(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, limit, offset int) ([]*Category, int, error) {
	return s.categories.List(ctx, limit, offset)
}

// idSet returns the sorted, deduplicated form of an id list.
func idSet(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	set := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			set = append(set, id)
		}
	}
	sort.Slice(set, func(i, j int) bool {
		return set[i].String() < set[j].String()
	})
	return set
}

func equalIDSets(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// dedupIDs drops duplicate ids while preserving first-seen order.
func dedupIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
