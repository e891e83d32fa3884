package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-gin-shop/internal/domain"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormRepoCreate(t *testing.T) {
	db, mock := newMockGorm(t)
	r := NewGormCategoryRepo(db)

	mock.ExpectExec(`INSERT INTO "categories"`).
		WithArgs(sqlmock.AnyArg(), "mycategory").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := domain.Category{Name: "mycategory"}
	require.NoError(t, r.Create(context.Background(), &c))
	assert.Len(t, c.ID, 36)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepoCreateDuplicate(t *testing.T) {
	db, mock := newMockGorm(t)
	r := NewGormProductRepo(db)

	mock.ExpectExec(`INSERT INTO "products"`).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			Message:        "duplicate key value violates unique constraint \"idx_products_name\"",
			ConstraintName: "idx_products_name",
		})

	p := domain.Product{Name: "myproduct"}
	err := r.Create(context.Background(), &p)
	require.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.EqualError(t, err, "A product with this name already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepoCreateStoreError(t *testing.T) {
	db, mock := newMockGorm(t)
	r := NewGormCategoryRepo(db)

	mock.ExpectExec(`INSERT INTO "categories"`).WillReturnError(errors.New("connection refused"))

	c := domain.Category{Name: "x"}
	err := r.Create(context.Background(), &c)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrDuplicateName)
}

func TestGormRepoCreateOtherDuplicateWordingIsStoreError(t *testing.T) {
	db, mock := newMockGorm(t)
	r := NewGormCategoryRepo(db)

	mock.ExpectExec(`INSERT INTO "categories"`).
		WillReturnError(&pgconn.PgError{Code: "42701", Message: `column "name" specified more than once (duplicate column)`})

	c := domain.Category{Name: "x"}
	err := r.Create(context.Background(), &c)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrDuplicateName)
}

func TestGormRepoFindByName(t *testing.T) {
	db, mock := newMockGorm(t)
	r := NewGormCategoryRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("c-1", "mycategory"))

	c, err := r.FindByName(context.Background(), "mycategory")
	require.NoError(t, err)
	assert.Equal(t, domain.Category{ID: "c-1", Name: "mycategory"}, *c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepoFindByIDNotFound(t *testing.T) {
	db, mock := newMockGorm(t)
	r := NewGormCategoryRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := r.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepoListProducts(t *testing.T) {
	db, mock := newMockGorm(t)
	r := NewGormProductRepo(db)

	cols := []string{"id", "name", "description", "category", "price", "sale_price", "img", "inventory"}
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p-1", "a", "da", "cat", "99.00", "11.00", "a.png", 22).
			AddRow("p-2", "b", "db", "cat", "5.50", "5.00", "b.png", 0))

	ps, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "99", ps[0].Price.String())
	assert.Equal(t, "5.5", ps[1].Price.String())
	assert.Equal(t, 22, ps[0].Inventory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepoListEmptyIsNotNil(t *testing.T) {
	db, mock := newMockGorm(t)
	r := NewGormCategoryRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	cs, err := r.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cs)
	assert.Empty(t, cs)
}

func TestGormRepoDelete(t *testing.T) {
	db, mock := newMockGorm(t)
	r := NewGormCategoryRepo(db)

	mock.ExpectExec(`DELETE FROM "categories" WHERE id = \$1`).
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "categories" WHERE id = \$1`).
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, r.Delete(context.Background(), "c-1"))
	assert.ErrorIs(t, r.Delete(context.Background(), "c-1"), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDupKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"translated", gorm.ErrDuplicatedKey, true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres unique wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"mysql duplicate entry", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'idx_categories_name'"}, true},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, false},
		{"mysql duplicate column", &mysql.MySQLError{Number: 1060, Message: "Duplicate column name 'name'"}, false},
		{"plain text", errors.New("duplicate key value violates unique constraint"), false},
		{"network", errors.New("connection reset by peer"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isDupKey(tc.err))
		})
	}
}
