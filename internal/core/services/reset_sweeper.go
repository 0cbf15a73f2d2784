package services

import (
	"context"
	"log"
	"time"

	"lms-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// ResetSweeper periodically clears expired password reset codes so stale
// pairs do not accumulate on student rows. Expiry is still enforced on every
// confirm; the sweep is hygiene only.
type ResetSweeper struct {
	studentRepo repositories.StudentRepository
	schedule    string
	cron        *cron.Cron
}

// NewResetSweeper creates a new reset sweeper
func NewResetSweeper(studentRepo repositories.StudentRepository, schedule string) *ResetSweeper {
	if schedule == "" {
		schedule = "@every 15m"
	}
	return &ResetSweeper{
		studentRepo: studentRepo,
		schedule:    schedule,
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start schedules the sweep
func (s *ResetSweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("🚀 Reset sweeper started [schedule: %s]", s.schedule)
	return nil
}

// Stop stops the sweep
func (s *ResetSweeper) Stop() {
	s.cron.Stop()
	log.Println("🛑 Reset sweeper stopped")
}

func (s *ResetSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cleared, err := s.studentRepo.ClearExpiredResetCodes(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Reset sweep error: %v", err)
		return
	}
	if cleared > 0 {
		log.Printf("✅ Reset sweep cleared %d expired code(s)", cleared)
	}
}
