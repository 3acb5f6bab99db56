package deadline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dcportal/internal/complaint"
	"dcportal/internal/meeting"
)

// ComplaintTransitioner applies auto-accept transitions.
type ComplaintTransitioner interface {
	AutoAccept(ctx context.Context, complaintID string) error
}

// MeetingTransitioner applies auto-absent transitions.
type MeetingTransitioner interface {
	AutoAbsent(ctx context.Context, meetingID string) error
}

// Applier executes queued transitions with bounded retry. A conflict from
// the conditional update means a manual action already settled the record,
// which counts as done.
type Applier struct {
	complaints ComplaintTransitioner
	meetings   MeetingTransitioner
	logger     *log.Logger

	attempts int
	backoff  time.Duration
	sleep    func(time.Duration)
}

// NewApplier wires an applier with attempts retries starting at backoff and
// doubling between tries.
func NewApplier(complaints ComplaintTransitioner, meetings MeetingTransitioner, attempts int, backoff time.Duration, logger *log.Logger) *Applier {
	if attempts <= 0 {
		attempts = 3
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	return &Applier{
		complaints: complaints,
		meetings:   meetings,
		logger:     logger,
		attempts:   attempts,
		backoff:    backoff,
		sleep:      time.Sleep,
	}
}

// Apply performs one transition, retrying transient failures. Exhausted
// retries are logged and counted, never fatal: the next full refetch
// reconciles the record from the database.
func (a *Applier) Apply(ctx context.Context, t Transition) error {
	var err error
	delay := a.backoff
	for attempt := 1; attempt <= a.attempts; attempt++ {
		err = a.applyOnce(ctx, t)
		if err == nil {
			return nil
		}
		if errors.Is(err, complaint.ErrConflict) || errors.Is(err, meeting.ErrConflict) {
			a.logger.Printf("transition %s %s already settled, skipping", t.Kind, t.ID)
			return nil
		}
		if attempt < a.attempts {
			a.logger.Printf("transition %s %s attempt %d failed: %v", t.Kind, t.ID, attempt, err)
			a.sleep(delay)
			delay *= 2
		}
	}
	applyFailures.Inc()
	a.logger.Printf("transition %s %s dropped after %d attempts: %v", t.Kind, t.ID, a.attempts, err)
	return err
}

func (a *Applier) applyOnce(ctx context.Context, t Transition) error {
	switch t.Kind {
	case KindComplaint:
		if err := a.complaints.AutoAccept(ctx, t.ID); err != nil {
			return err
		}
		autoAccepted.Inc()
		return nil
	case KindMeeting:
		if err := a.meetings.AutoAbsent(ctx, t.ID); err != nil {
			return err
		}
		autoAbsent.Inc()
		return nil
	default:
		return fmt.Errorf("unknown transition kind %q", t.Kind)
	}
}
