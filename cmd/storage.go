package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-DanceStudio/internal/config"
	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/memory"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/migrations"
	mongoStore "github.com/m04kA/SMC-DanceStudio/internal/infra/storage/mongo"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/postgres"
	"github.com/m04kA/SMC-DanceStudio/pkg/dbmetrics"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
	"github.com/m04kA/SMC-DanceStudio/pkg/metrics"
	"github.com/m04kA/SMC-DanceStudio/pkg/txmanager"
)

// backend выбранное хранилище и его менеджер транзакций
type backend struct {
	store     storage.ReservationStore
	txManager storage.TransactionManager
	close     func()
}

func openBackend(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, m, log)
	case config.BackendMongo:
		return openMongo(ctx, cfg, log)
	default:
		log.Warn("Using in-memory storage: data is lost on restart")
		store := memory.NewStore()
		return &backend{store: store, txManager: memory.NewTxManager(store), close: func() {}}, nil
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*backend, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		version, dirty, err := migrations.Version(db)
		if err != nil {
			log.Warn("Failed to read schema version: %v", err)
		} else {
			log.Info("Database schema at version %d (dirty=%t)", version, dirty)
		}
	}

	// Без метрик обёртка просто проксирует вызовы
	stopCh := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)

	return &backend{
		store:     postgres.NewStore(wrapped),
		txManager: txmanager.NewTransactionManager(wrapped),
		close: func() {
			close(stopCh)
			_ = db.Close()
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	client, err := mongoStore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.TimeoutDuration())
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to MongoDB (db=%s)", cfg.Mongo.Database)

	store := mongoStore.NewStore(client.Database(cfg.Mongo.Database))
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	return &backend{
		store:     store,
		txManager: mongoStore.NewTxManager(client),
		close: func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.TimeoutDuration())
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		},
	}, nil
}

// seedHalls залы из конфигурации; повторный запуск обновляет существующие
func seedHalls(ctx context.Context, store storage.ReservationStore, halls []config.HallConfig, log *logger.Logger) error {
	for _, h := range halls {
		hall := &domain.Hall{ID: h.ID, BranchID: h.BranchID, Name: h.Name, Capacity: h.Capacity}
		if err := store.UpsertHall(ctx, hall); err != nil {
			return fmt.Errorf("upsert hall id=%d: %w", h.ID, err)
		}
		log.Info("Hall ready: id=%d, name=%q, capacity=%d", hall.ID, hall.Name, hall.Capacity)
	}
	return nil
}
