package deadline

import (
	"context"
	"log"
	"sync"
	"time"

	"dcportal/internal/queue"
)

// claimTTL bounds how long a transition claim lives. Long enough to cover
// apply retries, short enough that a lost message is eventually re-swept.
const claimTTL = time.Hour

// ComplaintSource lists complaints whose decision window has elapsed.
type ComplaintSource interface {
	DueForAutoAccept(ctx context.Context, now time.Time, window time.Duration) ([]string, error)
}

// MeetingSource lists meetings whose attendance window has elapsed.
type MeetingSource interface {
	DueForAutoAbsent(ctx context.Context, now time.Time, grace time.Duration) ([]string, error)
}

// Guard claims an idempotency key exactly once per TTL.
type Guard interface {
	ClaimOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Publisher hands transitions to the worker.
type Publisher interface {
	Publish(ctx context.Context, msg queue.Message) error
}

// Sweeper periodically finds records past their deadline and publishes one
// transition per record. Ticks are strictly serialized: a sweep finishes
// before the next one starts.
type Sweeper struct {
	complaints ComplaintSource
	meetings   MeetingSource
	guard      Guard
	publisher  Publisher
	logger     *log.Logger

	studentWindow time.Duration
	grace         time.Duration
	interval      time.Duration
	clock         func() time.Time
}

// NewSweeper wires a sweeper. interval is the coarse background tick; the
// user-facing countdown is derived per request and needs no ticker here.
func NewSweeper(complaints ComplaintSource, meetings MeetingSource, guard Guard, publisher Publisher, studentWindow, grace, interval time.Duration, logger *log.Logger) *Sweeper {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Sweeper{
		complaints:    complaints,
		meetings:      meetings,
		guard:         guard,
		publisher:     publisher,
		logger:        logger,
		studentWindow: studentWindow,
		grace:         grace,
		interval:      interval,
		clock:         time.Now,
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx, s.clock())
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(ctx, now)
		}
	}
}

// Sweep runs a single pass over both record kinds.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) {
	due, err := s.complaints.DueForAutoAccept(ctx, now, s.studentWindow)
	if err != nil {
		sweepErrors.Inc()
		s.logger.Printf("sweep: list due complaints failed: %v", err)
	}
	for _, id := range due {
		s.propose(ctx, Transition{Kind: KindComplaint, ID: id, Target: "accepted"})
	}

	dueMeetings, err := s.meetings.DueForAutoAbsent(ctx, now, s.grace)
	if err != nil {
		sweepErrors.Inc()
		s.logger.Printf("sweep: list due meetings failed: %v", err)
	}
	for _, id := range dueMeetings {
		s.propose(ctx, Transition{Kind: KindMeeting, ID: id, Target: "absent"})
	}
}

// propose publishes a transition if its idempotency key has not been claimed
// yet. Publish failures release nothing: the claim TTL expiring puts the
// record back in play, and the conditional UPDATE downstream keeps the
// transition at-most-once regardless.
func (s *Sweeper) propose(ctx context.Context, t Transition) {
	claimed, err := s.guard.ClaimOnce(ctx, t.IdempotencyKey(), claimTTL)
	if err != nil {
		sweepErrors.Inc()
		s.logger.Printf("sweep: claim %s failed: %v", t.IdempotencyKey(), err)
		return
	}
	if !claimed {
		return
	}

	msg, err := queue.NewMessage(MessageType, t)
	if err != nil {
		sweepErrors.Inc()
		s.logger.Printf("sweep: encode transition failed: %v", err)
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		sweepErrors.Inc()
		s.logger.Printf("sweep: publish %s %s failed: %v", t.Kind, t.ID, err)
	}
}

// MemoryGuard is an in-process Guard for dev and tests.
type MemoryGuard struct {
	mu     sync.Mutex
	claims map[string]time.Time
}

// NewMemoryGuard creates an empty guard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{claims: make(map[string]time.Time)}
}

// ClaimOnce claims key until its TTL expires.
func (g *MemoryGuard) ClaimOnce(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now()
	if exp, ok := g.claims[key]; ok && now.Before(exp) {
		return false, nil
	}
	g.claims[key] = now.Add(ttl)
	return true, nil
}
