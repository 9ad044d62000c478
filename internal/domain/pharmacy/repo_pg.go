package pharmacy

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

const pharmacyCols = `id, owner_id, name, address, latitude, longitude, approved, created_at`

func scanPharmacy(row pgx.Row) (*Pharmacy, error) {
	var p Pharmacy
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Latitude, &p.Longitude,
		&p.Approved, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pharmacy: %w", err)
	}
	return &p, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Pharmacy, error) {
	return scanPharmacy(r.conn(ctx).QueryRow(ctx,
		`SELECT `+pharmacyCols+` FROM pharmacies WHERE id = $1`, id))
}

func (r *repoPG) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Pharmacy, error) {
	return scanPharmacy(r.conn(ctx).QueryRow(ctx,
		`SELECT `+pharmacyCols+` FROM pharmacies WHERE owner_id = $1`, ownerID))
}

func (r *repoPG) List(ctx context.Context, approvedOnly bool, limit, offset int) ([]*Pharmacy, int, error) {
	where := ""
	if approvedOnly {
		where = " WHERE approved"
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM pharmacies`+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pharmacies: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+pharmacyCols+` FROM pharmacies`+where+` ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pharmacies: %w", err)
	}
	defer rows.Close()

	var result []*Pharmacy
	for rows.Next() {
		p, err := scanPharmacy(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate pharmacies: %w", err)
	}
	return result, total, nil
}

func (r *repoPG) GetOwner(ctx context.Context, pharmacyID uuid.UUID) (*User, error) {
	var u User
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.phone, u.role
		FROM users u
		JOIN pharmacies p ON p.owner_id = u.id
		WHERE p.id = $1`, pharmacyID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pharmacy owner: %w", err)
	}
	return &u, nil
}
