package run

import (
	"context"

	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
)

// Repository defines the storage contract for clustering runs.
type Repository interface {
	Save(ctx context.Context, r domrun.Run) error
	Get(ctx context.Context, id string) (domrun.Run, error)
	Delete(ctx context.Context, id string) error
}
