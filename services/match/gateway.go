package match

import (
	"context"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// MatchGW relays finished match results to the surrounding system
type MatchGW interface {
	PublishMatchResult(ctx context.Context, result models.MatchResult) error
}
