package handlers

import (
	"context"
	"time"

	"alumni-office/internal/db"
)

// Store is the slice of *db.Database the handlers use.
type Store interface {
	FetchAll(ctx context.Context, resource, stmt string) (db.Result, error)
	Insert(ctx context.Context, table string, columns []string, values []any) error
	Ping(ctx context.Context) error
}

// Options carries per-request limits shared by the data handlers.
type Options struct {
	QueryTimeout time.Duration
	CacheMaxAge  int
}

func (o Options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.QueryTimeout)
}
