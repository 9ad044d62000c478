package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category maps to the categories table. Names are matched case-insensitively;
// the stored name keeps the casing of the first submission.
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Medicine maps to the medicines table plus its medicine_categories rows.
// Categories preserve submission order for display; identity comparison uses
// the id set only.
type Medicine struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	GenericName    string     `db:"generic_name" json:"generic_name"`
	BrandName      string     `db:"brand_name" json:"brand_name"`
	DosageForm     string     `db:"dosage_form" json:"dosage_form"`
	DosageStrength string     `db:"dosage_strength" json:"dosage_strength"`
	Classification string     `db:"classification" json:"classification"`
	Description    string     `db:"description" json:"description"`
	Categories     []Category `json:"categories"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// Identity is the composite natural key of a medicine: all descriptive fields
// compared with exact string equality, plus the resolved category-id set.
type Identity struct {
	GenericName    string
	BrandName      string
	DosageForm     string
	DosageStrength string
	Classification string
	Description    string
	CategoryIDs    []uuid.UUID
}
