package repository

import "context"

// TxManager runs a function inside one durable transaction. Everything a
// repository does with the derived context happens in that transaction, so a
// business operation (record sale, void sale, close shift) either commits
// all of its ledger writes or none of them. Row locks taken through
// GetForUpdate variants are held until the function returns.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
