package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/lumiere-api/utils"
)

type entry struct {
	cart    *Cart
	touched time.Time
}

// Store owns one Cart per session id. Idle carts are evicted by a janitor
// goroutine once Start has been called.
type Store struct {
	mu      sync.Mutex
	carts   map[string]*entry
	idleTTL time.Duration
	now     func() time.Time

	Interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		carts:    make(map[string]*entry),
		idleTTL:  idleTTL,
		now:      time.Now,
		Interval: time.Minute,
		stopChan: make(chan struct{}),
	}
}

// NewSessionID returns a fresh opaque session id.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id looks like one NewSessionID produced.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Snapshot returns the session's cart. Unknown sessions read as empty.
func (s *Store) Snapshot(sessionID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[sessionID]
	if !ok {
		return New().Snapshot()
	}
	e.touched = s.now()
	return e.cart.Snapshot()
}

// Update runs fn against the session's cart, creating it on first use. The
// snapshot reflects the cart after fn, even when fn returns an error.
func (s *Store) Update(sessionID string, fn func(*Cart) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[sessionID]
	if !ok {
		e = &entry{cart: New()}
		s.carts[sessionID] = e
	}
	e.touched = s.now()

	err := fn(e.cart)
	return e.cart.Snapshot(), err
}

// Settle takes the quantities in ordered out of the session's cart, so
// lines added after the snapshot was taken survive. A session left empty is
// forgotten.
func (s *Store) Settle(sessionID string, ordered Snapshot) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[sessionID]
	if !ok {
		return New().Snapshot()
	}
	for _, o := range ordered.Lines {
		l, ok := e.cart.lines[o.ItemID]
		if !ok {
			continue
		}
		if l.Quantity <= o.Quantity {
			delete(e.cart.lines, o.ItemID)
			continue
		}
		l.Quantity -= o.Quantity
	}
	if e.cart.Len() == 0 {
		delete(s.carts, sessionID)
		return New().Snapshot()
	}
	e.touched = s.now()
	return e.cart.Snapshot()
}

// Delete forgets the session entirely.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

func (s *Store) Start() {
	if s.idleTTL <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := s.EvictIdle(); n > 0 {
					utils.InfoLogger.WithField("evicted", n).Debug("Evicted idle carts")
				}
			case <-s.stopChan:
				return
			}
		}
	}()
}

func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// EvictIdle drops carts untouched for longer than the idle TTL and returns
// how many went.
func (s *Store) EvictIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	n := 0
	for id, e := range s.carts {
		if e.touched.Before(cutoff) {
			delete(s.carts, id)
			n++
		}
	}
	return n
}
