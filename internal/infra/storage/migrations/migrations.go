package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

var (
	// ErrSource не удалось прочитать встроенные миграции
	ErrSource = errors.New("migrations: failed to load embedded migrations")

	// ErrDriver не удалось создать драйвер postgres для migrate
	ErrDriver = errors.New("migrations: failed to create database driver")

	// ErrApply ошибка применения миграций
	ErrApply = errors.New("migrations: failed to apply")
)

// Up применяет все новые миграции. Отсутствие изменений ошибкой не считается.
func Up(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}
	return nil
}

// Version текущая версия схемы; 0 если миграции не применялись
func Version(db *sql.DB) (uint, bool, error) {
	m, err := newMigrate(db)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrApply, err)
	}
	return version, dirty, nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSource, err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDriver, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDriver, err)
	}
	return m, nil
}
