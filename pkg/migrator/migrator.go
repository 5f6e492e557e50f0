package migrator

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Поддерживаемые действия
const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var (
	// ErrUnknownAction возвращается для неизвестного действия
	ErrUnknownAction = errors.New("migrator: unknown action")

	// ErrMigrate возвращается при ошибке выполнения миграций
	ErrMigrate = errors.New("migrator: migration failed")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Run применяет миграции из sourceURL (например, file://migrations) к базе dsn
func Run(sourceURL, dsn, action string, log Logger) error {
	switch action {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("%w: create migrate instance: %v", ErrMigrate, err)
	}
	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: %s: %v", ErrMigrate, action, err)
	}

	log.Info("Migrations %s completed", action)
	return nil
}
