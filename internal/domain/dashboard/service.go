package dashboard

import (
	"context"
)

type StatsService interface {
	// Stats computes the admin dashboard counters for today's civil date
	Stats(ctx context.Context) (Stats, error)
}
