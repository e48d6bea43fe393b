package seeds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/seedshop/internal/dbx"
	"github.com/dmitrijs2005/seedshop/internal/server/models"
)

const seedColumns = "id, name, category, price, quantity, image, created_at, updated_at"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeed(row rowScanner, s *models.Seed) error {
	return row.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.Image, &s.CreatedAt, &s.UpdatedAt)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Seed, error) {
	query := `SELECT ` + seedColumns + ` FROM seeds ORDER BY id`
	return r.queryMany(ctx, query)
}

func (r *PostgresRepository) Search(ctx context.Context, q SearchQuery) ([]models.Seed, error) {
	query := `SELECT ` + seedColumns + ` FROM seeds`

	var conds []string
	var args []any
	if q.Name != "" {
		args = append(args, "%"+q.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if q.Category != "" {
		args = append(args, "%"+q.Category+"%")
		conds = append(conds, fmt.Sprintf("category ILIKE $%d", len(args)))
	}
	if q.MinPrice != nil {
		args = append(args, *q.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if q.MaxPrice != nil {
		args = append(args, *q.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	return r.queryMany(ctx, query, args...)
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]models.Seed, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	seeds := []models.Seed{}
	for rows.Next() {
		var s models.Seed
		if err := scanSeed(rows, &s); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		seeds = append(seeds, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return seeds, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*models.Seed, error) {
	query := `SELECT ` + seedColumns + ` FROM seeds WHERE id = $1`

	seed := &models.Seed{}
	err := scanSeed(r.db.QueryRowContext(ctx, query, id), seed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return seed, nil
}

func (r *PostgresRepository) Create(ctx context.Context, seed *models.Seed) (*models.Seed, error) {
	query :=
		`INSERT INTO seeds (name, category, price, quantity, image)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		seed.Name, seed.Category, seed.Price, seed.Quantity, seed.Image).
		Scan(&seed.ID, &seed.CreatedAt, &seed.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return seed, nil
}

func (r *PostgresRepository) Update(ctx context.Context, seed *models.Seed) (*models.Seed, error) {
	query :=
		`UPDATE seeds
		 SET name = $1, category = $2, price = $3, quantity = $4, image = $5, updated_at = now()
		 WHERE id = $6
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		seed.Name, seed.Category, seed.Price, seed.Quantity, seed.Image, seed.ID).
		Scan(&seed.CreatedAt, &seed.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return seed, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM seeds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PurchaseOne decrements the stock by one. The quantity guard is part of the
// UPDATE, so two concurrent purchases cannot drive the count negative.
func (r *PostgresRepository) PurchaseOne(ctx context.Context, id int) (*models.Seed, error) {
	query :=
		`UPDATE seeds
		 SET quantity = quantity - 1, updated_at = now()
		 WHERE id = $1 AND quantity > 0
		 RETURNING ` + seedColumns

	seed := &models.Seed{}
	err := scanSeed(r.db.QueryRowContext(ctx, query, id), seed)
	if err == nil {
		return seed, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	// Nothing updated: either the seed does not exist or it is sold out.
	if _, gerr := r.GetByID(ctx, id); gerr != nil {
		return nil, gerr
	}
	return nil, ErrOutOfStock
}

func (r *PostgresRepository) Restock(ctx context.Context, id int, amount int) (*models.Seed, error) {
	query :=
		`UPDATE seeds
		 SET quantity = quantity + $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + seedColumns

	seed := &models.Seed{}
	err := scanSeed(r.db.QueryRowContext(ctx, query, id, amount), seed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return seed, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seeds`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
