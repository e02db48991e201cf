package usecase

import (
	"sync"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// PendingQueues buffers ride status events per passenger between
// notification cycles. Order within a passenger's queue is preserved.
type PendingQueues struct {
	mu     sync.Mutex
	queues map[string][]models.RideStatusEvent
}

func NewPendingQueues() *PendingQueues {
	return &PendingQueues{queues: make(map[string][]models.RideStatusEvent)}
}

func (p *PendingQueues) Enqueue(event models.RideStatusEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues[event.PassengerID] = append(p.queues[event.PassengerID], event)
}

// Flush swaps out every queue and returns them. Events enqueued while the
// returned map is being processed land in the fresh map and go out next
// cycle.
func (p *PendingQueues) Flush() map[string][]models.RideStatusEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queues) == 0 {
		return nil
	}
	out := p.queues
	p.queues = make(map[string][]models.RideStatusEvent)
	return out
}
