package mariadb

import (
	"context"

	"gorm.io/gorm"
)

// cloneWithTx returns a MariaDB bound to tx. The clone shares the logger,
// mutex and shutdown signals of m.
func (m *MariaDB) cloneWithTx(tx *gorm.DB) *MariaDB {
	return &MariaDB{
		client:          tx,
		cfg:             m.cfg,
		logger:          m.logger,
		mu:              m.mu,
		shutdownSignal:  m.shutdownSignal,
		retryChanSignal: m.retryChanSignal,
	}
}

// Transaction executes the given function within a database transaction.
// If the function returns an error, the transaction is rolled back; otherwise, it's committed.
func (m *MariaDB) Transaction(ctx context.Context, fn func(db *MariaDB) error) error {
	err := m.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(m.cloneWithTx(tx))
	})
	return TranslateError(err)
}

// Migrate runs gorm auto-migration for models.
func (m *MariaDB) Migrate(ctx context.Context, models ...interface{}) error {
	return TranslateError(m.DB().WithContext(ctx).AutoMigrate(models...))
}
