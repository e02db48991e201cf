package match

import (
	"context"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// MatchUC finds and ranks drivers for a pickup request
type MatchUC interface {
	FindBestDrivers(ctx context.Context, req models.MatchRequest) (models.MatchResult, error)
}
