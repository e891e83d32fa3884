package repo

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"go-gin-shop/internal/domain"
	"go-gin-shop/pkg/utils"
)

// GormRepo is a NamedRepository over one table. The table's unique index on
// name is what actually guarantees uniqueness.
type GormRepo[T any, PT domain.EntityPtr[T]] struct {
	db     *gorm.DB
	entity string
}

func NewGormUserRepo(db *gorm.DB) *GormRepo[domain.User, *domain.User] {
	return &GormRepo[domain.User, *domain.User]{db: db, entity: "user"}
}

func NewGormCategoryRepo(db *gorm.DB) *GormRepo[domain.Category, *domain.Category] {
	return &GormRepo[domain.Category, *domain.Category]{db: db, entity: "category"}
}

func NewGormProductRepo(db *gorm.DB) *GormRepo[domain.Product, *domain.Product] {
	return &GormRepo[domain.Product, *domain.Product]{db: db, entity: "product"}
}

func (r *GormRepo[T, PT]) Create(ctx context.Context, m *T) error {
	p := PT(m)
	if p.GetID() == "" {
		p.SetID(utils.NewID())
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDupKey(err) {
			return &domain.DuplicateNameError{Entity: r.entity, Name: p.GetName()}
		}
		return domain.StoreError("create "+r.entity, err)
	}
	return nil
}

func (r *GormRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, domain.StoreError("list "+r.entity, err)
	}
	return out, nil
}

func (r *GormRepo[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormRepo[T, PT]) FindByName(ctx context.Context, name string) (*T, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *GormRepo[T, PT]) first(ctx context.Context, cond string, arg string) (*T, error) {
	var m T
	err := r.db.WithContext(ctx).Where(cond, arg).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.StoreError("find "+r.entity, err)
	}
	return &m, nil
}

func (r *GormRepo[T, PT]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return domain.StoreError("delete "+r.entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const (
	pgUniqueViolation = "23505"
	mysqlDupEntry     = 1062
)

// isDupKey reports a unique index violation. TranslateError maps these to
// gorm.ErrDuplicatedKey; the driver codes cover sessions opened without it.
func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDupEntry
	}
	return false
}
