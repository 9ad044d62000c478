package inventory

import (
	"context"
	"encoding/json"
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

type batchRepoPG struct{ pool *pgxpool.Pool }

func NewBatchRepoPG(pool *pgxpool.Pool) BatchRepository {
	return &batchRepoPG{pool: pool}
}

func (r *batchRepoPG) conn(ctx context.Context) queryable {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

const batchCols = `id, medicine_id, pharmacy_id, entries, created_at, updated_at`

func scanBatch(row pgx.Row) (*StockBatch, error) {
	var b StockBatch
	var entries []byte
	err := row.Scan(&b.ID, &b.MedicineID, &b.PharmacyID, &entries, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan stock batch: %w", err)
	}
	if err := json.Unmarshal(entries, &b.Entries); err != nil {
		return nil, fmt.Errorf("decode batch entries: %w", err)
	}
	return &b, nil
}

func (r *batchRepoPG) Create(ctx context.Context, b *StockBatch) error {
	b.ID = uuid.New()
	entries, err := json.Marshal(b.Entries)
	if err != nil {
		return fmt.Errorf("encode batch entries: %w", err)
	}
	err = r.conn(ctx).QueryRow(ctx, `
		INSERT INTO stock_batches (id, medicine_id, pharmacy_id, entries)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		b.ID, b.MedicineID, b.PharmacyID, entries).
		Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert stock batch: %w", err)
	}
	return nil
}

func (r *batchRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*StockBatch, error) {
	return scanBatch(r.conn(ctx).QueryRow(ctx,
		`SELECT `+batchCols+` FROM stock_batches WHERE id = $1`, id))
}

func (r *batchRepoPG) ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]*StockBatch, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+batchCols+` FROM stock_batches WHERE pharmacy_id = $1 ORDER BY created_at, id`,
		pharmacyID)
	if err != nil {
		return nil, fmt.Errorf("list stock batches: %w", err)
	}
	defer rows.Close()

	var result []*StockBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock batches: %w", err)
	}
	return result, nil
}

func (r *batchRepoPG) UpdateEntries(ctx context.Context, id uuid.UUID, entries []ExpirationEntry) error {
	encoded, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode batch entries: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE stock_batches SET entries = $2, updated_at = NOW() WHERE id = $1`,
		id, encoded)
	if err != nil {
		return fmt.Errorf("update stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *batchRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM stock_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *batchRepoPG) DeleteByMedicine(ctx context.Context, medicineID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM stock_batches WHERE medicine_id = $1`, medicineID)
	if err != nil {
		return fmt.Errorf("delete stock batches by medicine: %w", err)
	}
	return nil
}
