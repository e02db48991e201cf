package repository

import (
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/internal/utils"
	"github.com/tawseel/dispatch/services/location"
)

const (
	shardCount = 32

	// indexPrecision is the finest geohash precision kept per entry; the
	// coarser index levels are its prefixes
	indexPrecision = 6
)

var indexPrecisions = []uint{3, 4, 5, 6}

type entry struct {
	pos  models.DriverPosition
	cell string // geohash at indexPrecision
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// Registry is the in-memory driver position store: a sharded map so writers
// on distinct drivers never contend, a swap-based dirty set for exact
// batch collection, and a geohash cell index for radius prefiltering.
type Registry struct {
	shards [shardCount]*shard

	dirtyMu sync.Mutex
	dirty   map[string]struct{}

	index *cellIndex

	now func() time.Time
}

// NewRegistry creates an empty position registry
func NewRegistry() *Registry {
	return newRegistry(time.Now)
}

func newRegistry(now func() time.Time) *Registry {
	r := &Registry{
		dirty: make(map[string]struct{}),
		index: newCellIndex(),
		now:   now,
	}
	for i := range r.shards {
		r.shards[i] = &shard{entries: make(map[string]entry)}
	}
	return r
}

var _ location.PositionRegistry = (*Registry)(nil)

func (r *Registry) shardFor(driverID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(driverID))
	return r.shards[h.Sum32()%shardCount]
}

// UpdatePosition overwrites the driver's entry and flags it dirty.
// Last write wins; there is at most one entry per driver.
func (r *Registry) UpdatePosition(driverID string, lat, lng float64) {
	cell := utils.EncodeCell(lat, lng, indexPrecision)

	s := r.shardFor(driverID)
	s.mu.Lock()
	old, existed := s.entries[driverID]
	s.entries[driverID] = entry{
		pos: models.DriverPosition{
			DriverID:   driverID,
			Latitude:   lat,
			Longitude:  lng,
			ObservedAt: r.now(),
		},
		cell: cell,
	}
	s.mu.Unlock()

	if !existed {
		r.index.add(driverID, cell)
	} else if old.cell != cell {
		r.index.remove(driverID, old.cell)
		r.index.add(driverID, cell)
	}

	r.dirtyMu.Lock()
	r.dirty[driverID] = struct{}{}
	r.dirtyMu.Unlock()
}

// SnapshotDirty swaps out the dirty set, then reads the flagged entries.
// A write landing after the swap goes into the fresh set and is delivered
// next cycle; an entry evicted between swap and read is skipped. The result
// is ordered by driver id so batches are deterministic.
func (r *Registry) SnapshotDirty() []models.DriverPosition {
	r.dirtyMu.Lock()
	collected := r.dirty
	r.dirty = make(map[string]struct{})
	r.dirtyMu.Unlock()

	if len(collected) == 0 {
		return nil
	}

	positions := make([]models.DriverPosition, 0, len(collected))
	for driverID := range collected {
		if pos, ok := r.Get(driverID); ok {
			positions = append(positions, pos)
		}
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].DriverID < positions[j].DriverID
	})
	return positions
}

// EvictStale removes entries observed before now-threshold and returns the
// evicted driver ids. Eviction also clears any pending dirty flag so a
// removed driver can never reappear in a later batch without a fresh write.
func (r *Registry) EvictStale(threshold time.Duration) []string {
	cutoff := r.now().Add(-threshold)

	var evicted []string
	for _, s := range r.shards {
		s.mu.Lock()
		for driverID, e := range s.entries {
			if e.pos.ObservedAt.Before(cutoff) {
				delete(s.entries, driverID)
				r.index.remove(driverID, e.cell)
				evicted = append(evicted, driverID)
			}
		}
		s.mu.Unlock()
	}

	if len(evicted) > 0 {
		r.dirtyMu.Lock()
		for _, driverID := range evicted {
			delete(r.dirty, driverID)
		}
		r.dirtyMu.Unlock()
	}

	return evicted
}

// Get returns a copy of the driver's last known position
func (r *Registry) Get(driverID string) (models.DriverPosition, bool) {
	s := r.shardFor(driverID)
	s.mu.RLock()
	e, ok := s.entries[driverID]
	s.mu.RUnlock()
	return e.pos, ok
}

// GetAll returns a copy of every entry, used when a new admin subscriber
// needs the full current state
func (r *Registry) GetAll() map[string]models.DriverPosition {
	all := make(map[string]models.DriverPosition)
	for _, s := range r.shards {
		s.mu.RLock()
		for driverID, e := range s.entries {
			all[driverID] = e.pos
		}
		s.mu.RUnlock()
	}
	return all
}

// NearbyIDs returns the ids of drivers whose indexed cell falls inside the
// geohash coverage of the circle. This over-approximates the radius; the
// caller applies exact haversine filtering.
func (r *Registry) NearbyIDs(lat, lng, radiusKm float64) []string {
	return r.index.idsIn(utils.CoverageCells(lat, lng, radiusKm))
}

// cellIndex maintains geohash cell membership at several precisions so a
// radius query can pick the coarsest level that covers it.
type cellIndex struct {
	mu    sync.RWMutex
	cells map[uint]map[string]map[string]struct{} // precision -> cell -> ids
}

func newCellIndex() *cellIndex {
	idx := &cellIndex{cells: make(map[uint]map[string]map[string]struct{})}
	for _, p := range indexPrecisions {
		idx.cells[p] = make(map[string]map[string]struct{})
	}
	return idx
}

func (idx *cellIndex) add(driverID, cell string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, p := range indexPrecisions {
		prefix := cell[:p]
		ids, ok := idx.cells[p][prefix]
		if !ok {
			ids = make(map[string]struct{})
			idx.cells[p][prefix] = ids
		}
		ids[driverID] = struct{}{}
	}
}

func (idx *cellIndex) remove(driverID, cell string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, p := range indexPrecisions {
		prefix := cell[:p]
		if ids, ok := idx.cells[p][prefix]; ok {
			delete(ids, driverID)
			if len(ids) == 0 {
				delete(idx.cells[p], prefix)
			}
		}
	}
}

func (idx *cellIndex) idsIn(cells []string) []string {
	if len(cells) == 0 {
		return nil
	}
	precision := uint(len(cells[0]))

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	level, ok := idx.cells[precision]
	if !ok {
		return nil
	}

	var ids []string
	for _, cell := range cells {
		for driverID := range level[cell] {
			ids = append(ids, driverID)
		}
	}
	return ids
}
