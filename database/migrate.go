package database

import (
	"fmt"

	"invoicing-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies idempotent schema migrations for a single
// tenant schema. It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Helpful indexes (line items by invoice, invoices by status)
// - Basic CHECK constraints
// - Idempotency keys table + unique index (via AutoMigrate tags)
func MigrateTenantSchema(schema string) error {
	if !schemaNameRe.MatchString(schema) {
		return fmt.Errorf("invalid tenant schema name: %q", schema)
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction only.
		if err := tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		if err := tx.AutoMigrate(
			&models.Client{},
			&models.Invoice{},
			&models.LineItem{},
			&models.SequenceCounter{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE invoices   ALTER COLUMN subtotal TYPE numeric(12,2)`,
			`ALTER TABLE invoices   ALTER COLUMN tax      TYPE numeric(12,2)`,
			`ALTER TABLE invoices   ALTER COLUMN total    TYPE numeric(12,2)`,
			`ALTER TABLE line_items ALTER COLUMN rate     TYPE numeric(12,2)`,
			`ALTER TABLE line_items ALTER COLUMN amount   TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_line_items_invoice ON line_items (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices (status)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_client ON invoices (client_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'line_items'::regclass
					  AND conname  = 'chk_line_items_quantity_nonneg'
				) THEN
					ALTER TABLE line_items
					ADD CONSTRAINT chk_line_items_quantity_nonneg
					CHECK (quantity >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'sequence_counters'::regclass
					  AND conname  = 'chk_sequence_counters_sequence_pos'
				) THEN
					ALTER TABLE sequence_counters
					ADD CONSTRAINT chk_sequence_counters_sequence_pos
					CHECK (sequence >= 1);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
