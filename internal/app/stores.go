package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-shop/internal/core/config"
	"go-gin-shop/internal/core/database"
	"go-gin-shop/internal/core/logger"
	"go-gin-shop/internal/domain"
	"go-gin-shop/internal/repo"
	"go-gin-shop/internal/session"
)

// Stores holds the repositories and the session store picked by config.
type Stores struct {
	Users      domain.UserRepository
	Categories domain.CategoryRepository
	Products   domain.ProductRepository
	Sessions   session.Store

	// Purge drops expired sessions for backends without a TTL; nil otherwise.
	Purge func(ctx context.Context, now time.Time) (int64, error)

	closers []func(context.Context) error
}

func OpenStores(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Stores, error) {
	s := &Stores{}
	var (
		gdb *gorm.DB
		mdb *mongo.Database
		err error
	)

	switch cfg.DB.Driver {
	case "memory":
		s.Users = repo.NewMemoryUserRepo()
		s.Categories = repo.NewMemoryCategoryRepo()
		s.Products = repo.NewMemoryProductRepo()
	case "mongo":
		var client *mongo.Client
		client, mdb, err = database.NewMongo(ctx, database.MongoOpts{
			URI:            cfg.MongoURI(),
			Database:       cfg.MongoDatabase(),
			Username:       cfg.DB.Username,
			Password:       cfg.DB.Password,
			ConnectTimeout: time.Duration(cfg.Mongo.ConnectTimeoutSec) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)
		if err := database.EnsureMongoIndexes(ctx, mdb); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Users = repo.NewMongoUserRepo(mdb)
		s.Categories = repo.NewMongoCategoryRepo(mdb)
		s.Products = repo.NewMongoProductRepo(mdb)
	default:
		gdb, err = database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                GormDSN(cfg),
			Username:           cfg.DB.Username,
			Password:           cfg.DB.Password,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
			Log:                logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel),
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		if cfg.DB.AutoMigrate {
			models := []any{&domain.User{}, &domain.Category{}, &domain.Product{}}
			if cfg.Session.Store == "db" {
				models = append(models, &domain.Session{})
			}
			if err := database.AutoMigrate(gdb, models...); err != nil {
				_ = s.Close(ctx)
				return nil, err
			}
			l.Info("automigrate done")
		}
		s.Users = repo.NewGormUserRepo(gdb)
		s.Categories = repo.NewGormCategoryRepo(gdb)
		s.Products = repo.NewGormProductRepo(gdb)
	}

	switch cfg.Session.Store {
	case "redis":
		rdb := session.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		s.Sessions = session.NewRedisStore(rdb)
	case "db":
		switch {
		case gdb != nil:
			gs := session.NewGormStore(gdb)
			s.Sessions, s.Purge = gs, gs.PurgeExpired
		case mdb != nil:
			s.Sessions = session.NewMongoStore(mdb)
		default:
			s.Sessions = session.NewMemoryStore()
		}
	default:
		s.Sessions = session.NewMemoryStore()
	}

	l.Info("stores ready",
		zap.String("driver", cfg.DB.Driver),
		zap.String("sessions", cfg.Session.Store),
	)
	return s, nil
}

// Close releases connections in reverse order of opening.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// GormDSN returns the configured DSN, or builds one from host, port and name.
func GormDSN(cfg *config.Config) string {
	if cfg.DB.DSN != "" {
		return cfg.DB.DSN
	}
	d := cfg.DB
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.Username, d.Password, d.Host, d.Port, d.Name)
	default:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.Port, d.Username, d.Password, d.Name)
	}
}
