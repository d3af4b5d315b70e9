package repository

import (
	"context"

	domainRepo "github.com/stationhq/fuelops-api/internal/domain/repository"
	"gorm.io/gorm"
)

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by database transactions. Row
// locks taken via the GetForUpdate methods are released when the callback
// returns and the transaction commits or rolls back.
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
