package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epharmacy/epharmacy/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Category Repository ===========

type categoryRepoPG struct{ pool *pgxpool.Pool }

func NewCategoryRepoPG(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepoPG{pool: pool}
}

func (r *categoryRepoPG) conn(ctx context.Context) queryable {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

func (r *categoryRepoPG) GetByName(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, description, created_at FROM categories
		WHERE LOWER(name) = LOWER($1)
		ORDER BY created_at, id
		LIMIT 1`, name).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (r *categoryRepoPG) Create(ctx context.Context, c *Category) error {
	c.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO categories (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		c.ID, c.Name, c.Description).
		Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *categoryRepoPG) List(ctx context.Context, limit, offset int) ([]*Category, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, description, created_at FROM categories
		ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var result []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate categories: %w", err)
	}
	return result, total, nil
}

// =========== Medicine Repository ===========

type medicineRepoPG struct{ pool *pgxpool.Pool }

func NewMedicineRepoPG(pool *pgxpool.Pool) MedicineRepository {
	return &medicineRepoPG{pool: pool}
}

func (r *medicineRepoPG) conn(ctx context.Context) queryable {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

const medicineCols = `id, generic_name, brand_name, dosage_form, dosage_strength,
	classification, description, created_at`

func scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.GenericName, &m.BrandName, &m.DosageForm, &m.DosageStrength,
		&m.Classification, &m.Description, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan medicine: %w", err)
	}
	return &m, nil
}

func (r *medicineRepoPG) Create(ctx context.Context, m *Medicine, categoryIDs []uuid.UUID) error {
	m.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medicines (id, generic_name, brand_name, dosage_form,
			dosage_strength, classification, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		m.ID, m.GenericName, m.BrandName, m.DosageForm,
		m.DosageStrength, m.Classification, m.Description).
		Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert medicine: %w", err)
	}

	for i, catID := range categoryIDs {
		if _, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO medicine_categories (medicine_id, category_id, position)
			VALUES ($1, $2, $3)`,
			m.ID, catID, i); err != nil {
			return fmt.Errorf("link medicine category: %w", err)
		}
	}
	return nil
}

func (r *medicineRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	m, err := scanMedicine(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medicineCols+` FROM medicines WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadCategories(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *medicineRepoPG) FindByFields(ctx context.Context, ident Identity) ([]*Medicine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+medicineCols+` FROM medicines
		WHERE generic_name = $1 AND brand_name = $2 AND dosage_form = $3
		  AND dosage_strength = $4 AND classification = $5 AND description = $6
		ORDER BY created_at, id`,
		ident.GenericName, ident.BrandName, ident.DosageForm,
		ident.DosageStrength, ident.Classification, ident.Description)
	if err != nil {
		return nil, fmt.Errorf("find medicines: %w", err)
	}
	defer rows.Close()

	var result []*Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medicines: %w", err)
	}

	for _, m := range result {
		if err := r.loadCategories(ctx, m); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *medicineRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *medicineRepoPG) loadCategories(ctx context.Context, m *Medicine) error {
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
		var c Category
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
