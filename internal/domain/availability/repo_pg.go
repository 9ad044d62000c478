package availability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epharmacy/epharmacy/internal/domain/catalog"
	"github.com/epharmacy/epharmacy/internal/domain/inventory"
	"github.com/epharmacy/epharmacy/internal/domain/pharmacy"
	"github.com/epharmacy/epharmacy/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

func (r *repoPG) FindByGenericName(ctx context.Context, genericName string, pharmacyID *uuid.UUID) ([]*Result, error) {
	query := `
		SELECT b.id, b.medicine_id, b.pharmacy_id, b.entries, b.created_at, b.updated_at,
		       m.id, m.generic_name, m.brand_name, m.dosage_form, m.dosage_strength,
		       m.classification, m.description, m.created_at,
		       p.id, p.owner_id, p.name, p.address, p.latitude, p.longitude, p.approved, p.created_at,
		       u.id, u.name, u.email, u.phone, u.role
		FROM stock_batches b
		JOIN medicines m ON m.id = b.medicine_id
		JOIN pharmacies p ON p.id = b.pharmacy_id
		JOIN users u ON u.id = p.owner_id
		WHERE LOWER(m.generic_name) = LOWER($1)`
	args := []interface{}{genericName}
	if pharmacyID != nil {
		query += ` AND b.pharmacy_id = $2`
		args = append(args, *pharmacyID)
	}
	query += ` ORDER BY b.created_at, b.id`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find availability: %w", err)
	}
	defer rows.Close()

	var results []*Result
	for rows.Next() {
		var (
			b       inventory.StockBatch
			entries []byte
			m       catalog.Medicine
			p       pharmacy.Pharmacy
			u       pharmacy.User
		)
		err := rows.Scan(
			&b.ID, &b.MedicineID, &b.PharmacyID, &entries, &b.CreatedAt, &b.UpdatedAt,
			&m.ID, &m.GenericName, &m.BrandName, &m.DosageForm, &m.DosageStrength,
			&m.Classification, &m.Description, &m.CreatedAt,
			&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Latitude, &p.Longitude, &p.Approved, &p.CreatedAt,
			&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role)
		if err != nil {
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		if err := json.Unmarshal(entries, &b.Entries); err != nil {
			return nil, fmt.Errorf("decode batch entries: %w", err)
		}
		if err := r.loadCategories(ctx, &m); err != nil {
			return nil, err
		}
		results = append(results, &Result{Batch: &b, Medicine: &m, Pharmacy: &p, Owner: &u})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability rows: %w", err)
	}
	return results, nil
}

func (r *repoPG) loadCategories(ctx context.Context, m *catalog.Medicine) error {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT c.id, c.name, c.description, c.created_at
		FROM categories c
		JOIN medicine_categories mc ON mc.category_id = c.id
		WHERE mc.medicine_id = $1
		ORDER BY mc.position`, m.ID)
	if err != nil {
		return fmt.Errorf("load medicine categories: %w", err)
	}
	defer rows.Close()

	m.Categories = nil
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return fmt.Errorf("scan medicine category: %w", err)
		}
		m.Categories = append(m.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate medicine categories: %w", err)
	}
	return nil
}
