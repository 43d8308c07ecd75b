package infra

import (
	"fmt"

	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (partial indexes, exclusion-style constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the schema; also used by integration tests against a
// throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Condominio{},
		&model.Usuario{},
		&model.Suscripcion{},
		&model.Area{},
		&model.Reserva{},
		&model.Curso{},
		&model.Leccion{},
		&model.Inscripcion{},
		&model.LeccionCompletada{},
		&model.Notificacion{},
		&model.Pago{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully
// handle. Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the payment poller: only pending intents are scanned.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pagos_pendientes') THEN
		    CREATE INDEX idx_pagos_pendientes
		        ON pagos (created_at)
		        WHERE estado = 'pending';
		  END IF;
		END $$`,
		// Overlap lookups for confirmed reservations of one area on one date.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_reservas_area_fecha') THEN
		    CREATE INDEX idx_reservas_area_fecha
		        ON reservas (area_id, fecha)
		        WHERE estado = 'confirmed';
		  END IF;
		END $$`,
		// Unread-notification badge query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_notificaciones_no_leidas') THEN
		    CREATE INDEX idx_notificaciones_no_leidas
		        ON notificacions (usuario_id)
		        WHERE read_at IS NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
