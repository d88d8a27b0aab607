package report

import (
	"context"
)

// RecapService aggregates attendance sessions into period reports.
type RecapService interface {
	// Recap computes per-employee counters over the resolved window
	Recap(ctx context.Context, req RecapRequest) (RecapResponse, error)

	// Export renders a printable HTML report: a summary table (one row per
	// employee) or a detail table (one row per session).
	Export(ctx context.Context, req ExportRequest) (string, error)
}
