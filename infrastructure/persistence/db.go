package persistence

import (
	"context"
	"fmt"

	"github.com/devradar/devradar/internal/database"
)

// AutoMigrate creates or updates the posting tables.
func AutoMigrate(ctx context.Context, db database.Database) error {
	if err := db.Session(ctx).AutoMigrate(
		&RawPostingModel{},
		&ClassifiedPostingModel{},
	); err != nil {
		return fmt.Errorf("migrate posting tables: %w", err)
	}
	return nil
}
