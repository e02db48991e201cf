package gateway

import (
	"context"

	"github.com/tawseel/dispatch/internal/pkg/constants"
	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/internal/pkg/nsq"
	"github.com/tawseel/dispatch/services/match"
)

// MatchGW publishes finished match results to NSQ for the surrounding
// system (ride offers, analytics).
type MatchGW struct {
	producer *nsq.Producer
}

func NewMatchGW(producer *nsq.Producer) *MatchGW {
	return &MatchGW{producer: producer}
}

var _ match.MatchGW = (*MatchGW)(nil)

func (gw *MatchGW) PublishMatchResult(_ context.Context, result models.MatchResult) error {
	return gw.producer.Publish(constants.TopicMatchResults, result)
}
