package dao

import (
	"context"

	"github.com/asaworks/asa-studio/base/stores/localkv"
)

// Dao is the data access layer over the durable local store. Persistence
// logic lives here so the service layer never touches storage keys directly.
type Dao struct {
	ctx context.Context

	Store *localkv.Store
}

func New(ctx context.Context, store *localkv.Store) *Dao {
	return &Dao{
		ctx:   ctx,
		Store: store,
	}
}
