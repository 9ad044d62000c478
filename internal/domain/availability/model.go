package availability

import (
	"github.com/epharmacy/epharmacy/internal/domain/catalog"
	"github.com/epharmacy/epharmacy/internal/domain/inventory"
	"github.com/epharmacy/epharmacy/internal/domain/pharmacy"
)

// Result is one matching stock batch joined with the medicine (categories
// included), the holding pharmacy, and the pharmacy owner's contact fields.
type Result struct {
	Batch    *inventory.StockBatch `json:"batch"`
	Medicine *catalog.Medicine     `json:"medicine"`
	Pharmacy *pharmacy.Pharmacy    `json:"pharmacy"`
	Owner    *pharmacy.User        `json:"owner,omitempty"`
}

// CandidateResult pairs one submitted candidate name with its availability
// results; used by the prescription candidate flow.
type CandidateResult struct {
	Candidate string    `json:"candidate"`
	Results   []*Result `json:"results"`
}
