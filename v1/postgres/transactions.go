package postgres

import (
	"context"

	"gorm.io/gorm"
)

// cloneWithTx returns a Postgres bound to tx. The clone shares the logger and
// shutdown signals of p; it does not run its own monitoring.
func (p *Postgres) cloneWithTx(tx *gorm.DB) *Postgres {
	clone := &Postgres{
		cfg:             p.cfg,
		logger:          p.logger,
		shutdownSignal:  p.shutdownSignal,
		retryChanSignal: p.retryChanSignal,
	}
	clone.client.Store(tx)
	return clone
}

// Transaction executes the given function within a database transaction.
// If the function returns an error, the transaction is rolled back; otherwise, it's committed.
// Searches started from the transaction-scoped Postgres see its uncommitted writes.
//
// Example usage:
//
//	err := pg.Transaction(ctx, func(tx *Postgres) error {
//		if err := tx.DB().Create(&article).Error; err != nil {
//			return err
//		}
//		var rows []Article
//		_, err := searcher.Execute(ctx, tx.Search(&Article{}), "Article", req, &rows)
//		return err
//	})
func (p *Postgres) Transaction(ctx context.Context, fn func(pg *Postgres) error) error {
	err := p.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(p.cloneWithTx(tx))
	})
	return TranslateError(err)
}

// Migrate runs gorm auto-migration for models.
func (p *Postgres) Migrate(ctx context.Context, models ...interface{}) error {
	return TranslateError(p.DB().WithContext(ctx).AutoMigrate(models...))
}
