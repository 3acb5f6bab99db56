package deadline

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"dcportal/internal/complaint"
	"dcportal/internal/meeting"
)

type fakeComplaintTransitioner struct {
	errs  []error
	calls int
}

func (f *fakeComplaintTransitioner) AutoAccept(context.Context, string) error {
	err := f.errs[f.calls]
	f.calls++
	return err
}

type fakeMeetingTransitioner struct {
	errs  []error
	calls int
}

func (f *fakeMeetingTransitioner) AutoAbsent(context.Context, string) error {
	err := f.errs[f.calls]
	f.calls++
	return err
}

func newTestApplier(c ComplaintTransitioner, m MeetingTransitioner, slept *[]time.Duration) *Applier {
	a := NewApplier(c, m, 3, time.Second, log.New(os.Stderr, "", 0))
	a.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return a
}

func TestApplyRetriesWithBackoff(t *testing.T) {
	boom := errors.New("db down")
	c := &fakeComplaintTransitioner{errs: []error{boom, boom, nil}}
	var slept []time.Duration
	a := newTestApplier(c, &fakeMeetingTransitioner{}, &slept)

	err := a.Apply(context.Background(), Transition{Kind: KindComplaint, ID: "CMP-AB12CD", Target: "accepted"})
	if err != nil {
		t.Fatalf("Apply() = %v, want nil", err)
	}
	if c.calls != 3 {
		t.Fatalf("calls = %d, want 3", c.calls)
	}
	if len(slept) != 2 || slept[0] != time.Second || slept[1] != 2*time.Second {
		t.Fatalf("backoff = %v, want [1s 2s]", slept)
	}
}

func TestApplyGivesUpAfterAttempts(t *testing.T) {
	boom := errors.New("db down")
	c := &fakeComplaintTransitioner{errs: []error{boom, boom, boom}}
	var slept []time.Duration
	a := newTestApplier(c, &fakeMeetingTransitioner{}, &slept)

	err := a.Apply(context.Background(), Transition{Kind: KindComplaint, ID: "CMP-AB12CD", Target: "accepted"})
	if !errors.Is(err, boom) {
		t.Fatalf("Apply() = %v, want %v", err, boom)
	}
	if c.calls != 3 {
		t.Fatalf("calls = %d, want 3", c.calls)
	}
}

func TestApplyTreatsConflictAsDone(t *testing.T) {
	c := &fakeComplaintTransitioner{errs: []error{complaint.ErrConflict}}
	m := &fakeMeetingTransitioner{errs: []error{meeting.ErrConflict}}
	var slept []time.Duration
	a := newTestApplier(c, m, &slept)

	if err := a.Apply(context.Background(), Transition{Kind: KindComplaint, ID: "CMP-AB12CD", Target: "accepted"}); err != nil {
		t.Fatalf("complaint conflict: Apply() = %v, want nil", err)
	}
	if err := a.Apply(context.Background(), Transition{Kind: KindMeeting, ID: "MEET-A1B2", Target: "absent"}); err != nil {
		t.Fatalf("meeting conflict: Apply() = %v, want nil", err)
	}
	if c.calls != 1 || m.calls != 1 {
		t.Fatalf("calls = (%d, %d), want (1, 1): conflicts must not be retried", c.calls, m.calls)
	}
	if len(slept) != 0 {
		t.Fatalf("slept %v, want no backoff", slept)
	}
}

func TestApplyUnknownKind(t *testing.T) {
	var slept []time.Duration
	a := newTestApplier(&fakeComplaintTransitioner{}, &fakeMeetingTransitioner{}, &slept)
	if err := a.Apply(context.Background(), Transition{Kind: "invoice", ID: "x"}); err == nil {
		t.Fatal("Apply() = nil, want error for unknown kind")
	}
}
