package synchist

import (
	"context"
	"errors"
)

var ErrRunNotFound = errors.New("sync run not found")

type SyncRunRepository interface {
	Create(ctx context.Context, run SyncRun) (SyncRun, error)
	Latest(ctx context.Context) (SyncRun, error)
	Recent(ctx context.Context, limit int) ([]SyncRun, error)
}
