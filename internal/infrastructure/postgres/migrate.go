package postgres

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrate aplica las migraciones pendientes con goose. Sin dir usa las migraciones embebidas en el
// binario; con dir lee los .sql desde disco (útil para probar migraciones nuevas sin recompilar).
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir string, log zerolog.Logger) error {
	// goose trabaja sobre database/sql: puente sobre las mismas conexiones del pool.
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar conexión de migraciones")
		}
	}()

	goose.SetLogger(gooseLogger{log: log})
	if dir == "" {
		goose.SetBaseFS(embeddedMigrations)
		dir = "migrations"
	} else {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("directorio de migraciones: %w", err)
		}
		goose.SetBaseFS(nil)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}

// gooseLogger redirige los Printf de goose a zerolog.
type gooseLogger struct {
	log zerolog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error().Msgf(format, v...)
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info().Msgf(format, v...)
}
