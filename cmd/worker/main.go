package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dcportal/internal/complaint"
	"dcportal/internal/config"
	"dcportal/internal/deadline"
	"dcportal/internal/meeting"
	"dcportal/internal/queue"
	"dcportal/internal/store"
	"dcportal/internal/user"
	"dcportal/migrations"
)

// Worker runs the deadline sweeper and applies the transitions it publishes:
// auto-accepting complaints past the decision window and marking absent
// meetings past the attendance grace.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	if err := migrations.Up(db.Client); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	var guard deadline.Guard
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
		guard = deadline.NewMemoryGuard()
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "dcportal:transitions")
		guard = redisClient
	}

	users := user.NewRepository(db.Client)
	complaints := complaint.NewRepository(db.Client)
	meetings := meeting.NewRepository(db.Client)
	complaintSvc := complaint.NewService(complaints, users)
	meetingSvc := meeting.NewService(meetings)

	logger := log.New(os.Stderr, "worker: ", log.LstdFlags)
	sweeper := deadline.NewSweeper(complaints, meetings, guard, q, cfg.StudentWindow, cfg.AttendanceGrace, cfg.SweepInterval, logger)
	applier := deadline.NewApplier(complaintSvc, meetingSvc, 3, time.Second, logger)

	go sweeper.Run(ctx)

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for transitions...")
	for msg := range messages {
		if msg.Type != deadline.MessageType {
			continue
		}
		t, err := deadline.DecodeTransition(msg)
		if err != nil {
			logger.Printf("decode transition %s failed: %v", msg.ID, err)
			continue
		}
		if err := applier.Apply(ctx, t); err != nil && ctx.Err() != nil {
			break
		}
	}

	log.Println("worker stopped")
}
