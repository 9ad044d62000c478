package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/epharmacy/epharmacy/internal/domain/catalog"
	"github.com/epharmacy/epharmacy/internal/domain/pharmacy"
)

// StockBatch maps to the stock_batches table: one pharmacy's one supply
// submission of a medicine, holding one or more expiration-dated quantities.
// A pharmacy may hold multiple batches for the same medicine; the model does
// not collapse them at write time.
type StockBatch struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	MedicineID uuid.UUID         `db:"medicine_id" json:"medicine_id"`
	PharmacyID uuid.UUID         `db:"pharmacy_id" json:"pharmacy_id"`
	Entries    []ExpirationEntry `db:"entries" json:"expirationPerStock"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time         `db:"updated_at" json:"updated_at"`
}

// ExpirationEntry is one (quantity, expiration date) pair within a batch.
// The date is kept as the submitted YYYY-MM-DD string; no timezone
// conversion is applied.
type ExpirationEntry struct {
	Stock          StockCount `json:"stock"`
	ExpirationDate string     `json:"expirationDate"`
}

// BatchDetail is the joined read view of a batch returned by the API.
type BatchDetail struct {
	StockBatch
	Medicine *catalog.Medicine  `json:"medicine,omitempty"`
	Pharmacy *pharmacy.Pharmacy `json:"pharmacy,omitempty"`
}
