package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestInMemoryPublishConsume(t *testing.T) {
	q := NewInMemory(4)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	msg, err := NewMessage("transition", map[string]string{"id": "CMP-AB12CD"})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if msg.ID == "" {
		t.Fatal("NewMessage assigned no id")
	}
	if err := q.Publish(ctx, msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msgs, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	select {
	case got := <-msgs:
		if got.ID != msg.ID || got.Type != "transition" {
			t.Fatalf("got %+v, want %+v", got, msg)
		}
		var body map[string]string
		if err := json.Unmarshal(got.Body, &body); err != nil {
			t.Fatalf("body: %v", err)
		}
		if body["id"] != "CMP-AB12CD" {
			t.Fatalf("body = %v", body)
		}
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestInMemoryPublishRespectsContext(t *testing.T) {
	q := NewInMemory(1)
	ctx := context.Background()
	if err := q.Publish(ctx, Message{ID: "1"}); err != nil {
		t.Fatalf("first publish: %v", err)
	}

	// Queue is full; a cancelled context must unblock the second publish.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := q.Publish(cancelled, Message{ID: "2"}); err != context.Canceled {
		t.Fatalf("Publish on full queue = %v, want context.Canceled", err)
	}
}

func TestNewMessageRejectsUnmarshalableBody(t *testing.T) {
	if _, err := NewMessage("transition", make(chan int)); err == nil {
		t.Fatal("NewMessage accepted an unmarshalable body")
	}
}
