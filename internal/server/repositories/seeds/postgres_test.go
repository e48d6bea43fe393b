package seeds

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/seedshop/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func seedRows(id int, name string, quantity int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "category", "price", "quantity", "image", "created_at", "updated_at"}).
		AddRow(id, name, "Flower", "25.00", quantity, "", now, now)
}

func TestPurchaseOne_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+seeds\s+SET\s+quantity\s*=\s*quantity\s*-\s*1.*WHERE\s+id\s*=\s*\$1\s+AND\s+quantity\s*>\s*0\s+RETURNING`
	mock.ExpectQuery(q).WithArgs(1).WillReturnRows(seedRows(1, "Sunflower Seed", 49))

	seed, err := repo.PurchaseOne(context.Background(), 1)
	if err != nil {
		t.Fatalf("PurchaseOne error: %v", err)
	}
	if seed.Quantity != 49 {
		t.Fatalf("unexpected quantity: %d", seed.Quantity)
	}
	if !seed.Price.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("unexpected price: %s", seed.Price)
	}
}

func TestPurchaseOne_OutOfStock(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	updateQ := `(?s)^UPDATE\s+seeds\s+SET\s+quantity\s*=\s*quantity\s*-\s*1`
	mock.ExpectQuery(updateQ).WithArgs(1).WillReturnError(sql.ErrNoRows)

	selectQ := `(?s)^SELECT\s+.*\s+FROM\s+seeds\s+WHERE\s+id\s*=\s*\$1`
	mock.ExpectQuery(selectQ).WithArgs(1).WillReturnRows(seedRows(1, "Sunflower Seed", 0))

	_, err := repo.PurchaseOne(context.Background(), 1)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
}

func TestPurchaseOne_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	updateQ := `(?s)^UPDATE\s+seeds\s+SET\s+quantity\s*=\s*quantity\s*-\s*1`
	mock.ExpectQuery(updateQ).WithArgs(99).WillReturnError(sql.ErrNoRows)

	selectQ := `(?s)^SELECT\s+.*\s+FROM\s+seeds\s+WHERE\s+id\s*=\s*\$1`
	mock.ExpectQuery(selectQ).WithArgs(99).WillReturnError(sql.ErrNoRows)

	_, err := repo.PurchaseOne(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch_BuildsConditions(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+seeds\s+WHERE\s+name\s+ILIKE\s+\$1\s+AND\s+price\s*<=\s*\$2\s+ORDER\s+BY\s+id$`
	mock.ExpectQuery(q).WithArgs("%sun%", sqlmock.AnyArg()).WillReturnRows(seedRows(1, "Sunflower Seed", 50))

	maxPrice := decimal.RequireFromString("30")
	seeds, err := repo.Search(context.Background(), SearchQuery{Name: "sun", MaxPrice: &maxPrice})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(seeds) != 1 || seeds[0].Name != "Sunflower Seed" {
		t.Fatalf("unexpected result: %+v", seeds)
	}
}

func TestSearch_NoFilters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+seeds\s+ORDER\s+BY\s+id$`
	mock.ExpectQuery(q).WillReturnRows(seedRows(1, "Sunflower Seed", 50))

	seeds, err := repo.Search(context.Background(), SearchQuery{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(seeds) != 1 {
		t.Fatalf("unexpected result: %+v", seeds)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+seeds\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+seeds\s+SET\s+name\s*=\s*\$1`
	mock.ExpectQuery(q).WillReturnError(sql.ErrNoRows)

	seed := &models.Seed{ID: 5, Name: "Ghost Seed", Category: "Flower", Price: decimal.New(1, 0)}
	_, err := repo.Update(context.Background(), seed)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
