package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/epharmacy/epharmacy/internal/domain/catalog"
	"github.com/epharmacy/epharmacy/internal/domain/inventory"
)

// BatchStore is the write-back surface needed to persist expiry depletion on
// search results. inventory.BatchRepository satisfies it.
type BatchStore interface {
	UpdateEntries(ctx context.Context, id uuid.UUID, entries []inventory.ExpirationEntry) error
}

type Service struct {
	results Repository
	batches BatchStore
}

func NewService(results Repository, batches BatchStore) *Service {
	return &Service{results: results, batches: batches}
}

// Search finds batches by generic name. Without a pharmacy scope, results are
// deduplicated to one batch per pharmacy (first in storage order); scoped to
// one pharmacy, every matching batch is returned. No match is an empty
// result, not an error. Expiry depletion is applied and persisted before
// anything is returned.
func (s *Service) Search(ctx context.Context, genericName string, pharmacyID *uuid.UUID) ([]*Result, error) {
	name := catalog.NormalizeName(genericName)
	if name == "" {
		return nil, fmt.Errorf("%w: generic name is required", ErrInvalidInput)
	}

	results, err := s.results.FindByGenericName(ctx, name, pharmacyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, r := range results {
		entries, changed := inventory.DepleteExpired(r.Batch.Entries, now)
		if !changed {
			continue
		}
		if err := s.batches.UpdateEntries(ctx, r.Batch.ID, entries); err != nil {
			return nil, fmt.Errorf("persist depleted entries: %w", err)
		}
		r.Batch.Entries = entries
	}

	if pharmacyID != nil {
		return results, nil
	}

	seen := make(map[uuid.UUID]bool, len(results))
	deduped := make([]*Result, 0, len(results))
	for _, r := range results {
		if seen[r.Pharmacy.ID] {
			continue
		}
		seen[r.Pharmacy.ID] = true
		deduped = append(deduped, r)
	}
	return deduped, nil
}

// SearchCandidates runs an unscoped search per candidate name, preserving
// input order. Candidates that normalize to nothing yield empty results
// rather than failing the whole request.
func (s *Service) SearchCandidates(ctx context.Context, candidates []string) ([]*CandidateResult, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: candidates must not be empty", ErrInvalidInput)
	}

	out := make([]*CandidateResult, 0, len(candidates))
	for _, candidate := range candidates {
		cr := &CandidateResult{Candidate: candidate, Results: []*Result{}}
		if catalog.NormalizeName(candidate) != "" {
			results, err := s.Search(ctx, candidate, nil)
			if err != nil {
				return nil, err
			}
			if results != nil {
				cr.Results = results
			}
		}
		out = append(out, cr)
	}
	return out, nil
}
