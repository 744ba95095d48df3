package service

import (
	"context"

	"go.opentelemetry.io/otel/codes"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/core/db"
	"invoicely.app/api/core/db/sqlc"
	"invoicely.app/api/internal/store"
)

// StoreProvider is the subset of stores a transactional operation may touch.
// Accepting an invitation, creating an organization with its owner and
// merging settings all go through it.
type StoreProvider interface {
	Users() store.UserStore
	Organizations() store.OrganizationStore
	Memberships() store.MembershipStore
	Notifications() store.NotificationStore
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

// WithTx wraps the transaction in a span so slow row locks (settings
// updates, invitation accepts) show up in traces.
func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	ctx, span := logger.Tracer().Start(ctx, "db.transaction")
	defer span.End()

	err := r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction rolled back")
	}
	return err
}
