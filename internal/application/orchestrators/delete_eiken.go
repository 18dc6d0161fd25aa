package orchestrators

import (
	"context"
	"log/slog"
)

// EikenStoreForDelete defines the store interface needed by DeleteEiken.
type EikenStoreForDelete interface {
	DeleteByID(ctx context.Context, id string) error
}

// DeleteEikenDeps holds dependencies for DeleteEiken.
type DeleteEikenDeps struct {
	EikenStore EikenStoreForDelete
}

// ExecuteDeleteEiken removes one Eiken practice record by id.
func ExecuteDeleteEiken(ctx context.Context, id string, deps DeleteEikenDeps) error {
	if err := deps.EikenStore.DeleteByID(ctx, id); err != nil {
		return err
	}
	slog.Info("eiken_event", "event", "deleted", "record_id", id)
	return nil
}
