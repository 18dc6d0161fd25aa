package orchestrators

import (
	"context"
	"log/slog"
)

// CoachingStoreForDelete defines the store interface needed by
// DeleteCoachingReport.
type CoachingStoreForDelete interface {
	DeleteByID(ctx context.Context, id string) error
}

// DeleteCoachingReportDeps holds dependencies for DeleteCoachingReport.
type DeleteCoachingReportDeps struct {
	CoachingStore CoachingStoreForDelete
}

// ExecuteDeleteCoachingReport removes one coaching report by id.
func ExecuteDeleteCoachingReport(ctx context.Context, id string, deps DeleteCoachingReportDeps) error {
	if err := deps.CoachingStore.DeleteByID(ctx, id); err != nil {
		return err
	}
	slog.Info("coaching_event", "event", "deleted", "report_id", id)
	return nil
}
