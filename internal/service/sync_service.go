package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"journeys/internal/model"
	"journeys/internal/stream"
)

// DefaultFlushDebounce is the coalescing window for progress taps. Long
// enough to absorb rapid repeated taps, short enough that the canonical
// store never lags noticeably.
const DefaultFlushDebounce = 500 * time.Millisecond

const flushWriteTimeout = 10 * time.Second

// JourneyStream is the slice of the persistence gateway the sync engine
// needs: the live list plus the atomic increment primitive.
type JourneyStream interface {
	WatchAll(ctx context.Context) <-chan []model.Journey
	IncrementProgress(ctx context.Context, id uint, delta int) (int64, error)
}

// SortModeStream provides the live sort preference.
type SortModeStream interface {
	WatchSortMode(ctx context.Context) <-chan model.SortMode
	SaveSortMode(ctx context.Context, mode model.SortMode) error
}

// SyncService keeps an in-memory mirror of the persisted journey list that
// reacts to progress taps instantly while the actual writes are debounced
// and batched. The persisted store stays the source of truth: canonical
// emissions are adopted whenever they cannot clobber an unflushed local
// increment, and deferred until after the flush otherwise. Progress taps
// are coalesced per journey into one net write per debounce window, which
// avoids reorder jitter under progress-based sorting and cuts write
// volume.
type SyncService struct {
	store JourneyStream
	prefs SortModeStream

	window time.Duration

	mu       sync.Mutex
	local    []model.Journey
	pending  map[uint]int
	inflight map[uint]int
	deferred []model.Journey
	timer    *time.Timer
	gen      uint64
	sortMode model.SortMode

	hub *stream.Hub[[]model.Journey]
}

func NewSyncService(store JourneyStream, prefs SortModeStream, window time.Duration) *SyncService {
	if window <= 0 {
		window = DefaultFlushDebounce
	}
	return &SyncService{
		store:    store,
		prefs:    prefs,
		window:   window,
		pending:  make(map[uint]int),
		inflight: make(map[uint]int),
		sortMode: model.DefaultSortMode,
		hub:      stream.NewHub[[]model.Journey](),
	}
}

// Run consumes the canonical journey stream and the sort preference
// stream until ctx is cancelled or both streams terminate. A terminated
// stream is logged and treated as the end of the session, never a crash.
func (s *SyncService) Run(ctx context.Context) {
	journeys := s.store.WatchAll(ctx)
	modes := s.prefs.WatchSortMode(ctx)

	for journeys != nil || modes != nil {
		select {
		case <-ctx.Done():
			return
		case list, ok := <-journeys:
			if !ok {
				logrus.Warn("sync: journey stream terminated")
				journeys = nil
				continue
			}
			s.onCanonical(list)
		case mode, ok := <-modes:
			if !ok {
				logrus.Warn("sync: sort mode stream terminated")
				modes = nil
				continue
			}
			s.onSortMode(mode)
		}
	}
}

// Increment applies one unit of progress to the journey. A journey whose
// goal is already complete ignores the tap.
func (s *SyncService) Increment(id uint) { s.adjust(id, 1) }

// Decrement removes one unit of progress. At zero the tap is ignored.
func (s *SyncService) Decrement(id uint) { s.adjust(id, -1) }

// Journeys returns the current projection: the reconciled list ordered by
// the active sort mode.
func (s *SyncService) Journeys() []model.Journey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SortJourneys(s.local, s.sortMode)
}

// SortMode returns the active ordering.
func (s *SyncService) SortMode() model.SortMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortMode
}

// SetSortMode persists the ordering; the projection updates when the
// preference stream echoes the change back.
func (s *SyncService) SetSortMode(ctx context.Context, mode model.SortMode) error {
	return s.prefs.SaveSortMode(ctx, mode)
}

// Subscribe streams the sorted projection: current value first, then
// every change, latest-value-wins.
func (s *SyncService) Subscribe(ctx context.Context) <-chan []model.Journey {
	return s.hub.Subscribe(ctx, s.Journeys())
}

func (s *SyncService) adjust(id uint, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.local {
		if s.local[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	journey := s.local[idx]
	next := journey.Goal.Progress + delta
	if next < 0 || next > journey.Goal.Value {
		return
	}
	journey.Goal.Progress = next

	updated := make([]model.Journey, len(s.local))
	copy(updated, s.local)
	updated[idx] = journey
	s.local = updated

	s.pending[id] += delta
	if s.pending[id] == 0 {
		delete(s.pending, id)
	}

	s.restartTimerLocked()
	s.publishLocked()
}

// restartTimerLocked atomically replaces the coalescing window. The
// generation counter invalidates a timer that managed to fire between
// Stop and the swap, so two windows never flush the same buffer.
func (s *SyncService) restartTimerLocked() {
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, func() { s.flush(gen) })
}

// flush issues one persistence write per pending journey with its net
// delta. Writes run on a background context so that an ending UI scope
// never cancels them; failures are logged and dropped, the canonical
// stream re-syncs state either way. The flushed ids stay marked as
// in-flight until their writes return, so a canonical emission racing
// the writes is deferred instead of snapping journeys back to stale
// values.
func (s *SyncService) flush(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	batch := s.pending
	s.pending = make(map[uint]int)
	for id := range batch {
		s.inflight[id]++
	}
	s.timer = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), flushWriteTimeout)
	defer cancel()

	for id, delta := range batch {
		if delta == 0 {
			continue
		}
		if _, err := s.store.IncrementProgress(ctx, id, delta); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"id": id, "delta": delta}).
				Error("sync: progress write failed")
		}
	}

	s.mu.Lock()
	for id := range batch {
		if s.inflight[id]--; s.inflight[id] == 0 {
			delete(s.inflight, id)
		}
	}
	if s.deferred != nil && len(s.pending) == 0 && len(s.inflight) == 0 {
		s.local = s.deferred
		s.deferred = nil
		s.publishLocked()
	}
	s.mu.Unlock()
}

func (s *SyncService) onCanonical(incoming []model.Journey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if adoptIncoming(s.local, incoming, s.pending, s.inflight) {
		s.local = incoming
		s.deferred = nil
		s.publishLocked()
		return
	}

	// An unrelated emission (same cardinality, pending writes in flight),
	// e.g. from a concurrent sort-mode change. Adopting now would snap a
	// just-tapped journey back to its stale persisted value, so hold it
	// until the flush lands.
	s.deferred = incoming
}

func (s *SyncService) onSortMode(mode model.SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == s.sortMode {
		return
	}
	s.sortMode = mode
	s.publishLocked()
}

func (s *SyncService) publishLocked() {
	s.hub.Publish(model.SortJourneys(s.local, s.sortMode))
}

// adoptIncoming decides whether a canonical emission replaces the local
// list immediately. It does when no journey with an unflushed or
// in-flight increment appears in the incoming list, or when the
// cardinality changed (an insert or delete happened, local optimism is
// stale regardless).
func adoptIncoming(local, incoming []model.Journey, pending, inflight map[uint]int) bool {
	if len(incoming) != len(local) {
		return true
	}
	for i := range incoming {
		id := incoming[i].ID
		if _, ok := pending[id]; ok {
			return false
		}
		if _, ok := inflight[id]; ok {
			return false
		}
	}
	return true
}
