package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"hd-clinic-api/config"
	"hd-clinic-api/internal/domain/entity"
	"hd-clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SweepService owns the two standing background jobs:
//
//   - the history archiver, which reclassifies past-dated sessions that were
//     never explicitly completed as discharged history, and
//   - the completion sweep, which discharges sessions left sitting in
//     post-dialysis beyond the configured grace period.
//
// Both are single conditional UPDATEs, so a sweep racing a manual discharge
// resolves in the database rather than in application code, and re-running a
// sweep is a no-op. Failures are logged and retried on the next tick; the
// sweeps never block the request-serving path.
type SweepService struct {
	db          *gorm.DB
	log         *logrus.Logger
	sessionRepo repository.SessionRepository
	cfg         config.ScheduleConfig

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool

	now func() time.Time
}

func NewSweepService(db *gorm.DB, log *logrus.Logger, sessionRepo repository.SessionRepository, cfg config.ScheduleConfig) *SweepService {
	return &SweepService{
		db:          db,
		log:         log,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		stopChan:    make(chan struct{}),
		now:         time.Now,
	}
}

// Start launches the sweep loop. Call Stop() during graceful shutdown.
func (s *SweepService) Start() {
	s.wg.Add(1)
	go s.loop()
	s.log.Infof("Sweep service started: interval=%v, post-dialysis grace=%v", s.cfg.SweepInterval, s.cfg.PostDialysisGrace)
}

// Stop gracefully shuts down the sweep loop. Safe to call multiple times.
func (s *SweepService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("Sweep service stopped")
	}
}

func (s *SweepService) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if _, err := s.RunArchiveSweep(ctx); err != nil {
				s.log.Errorf("Archive sweep failed, will retry next tick: %+v", err)
			}
			if _, err := s.RunCompletionSweep(ctx); err != nil {
				s.log.Errorf("Completion sweep failed, will retry next tick: %+v", err)
			}
			cancel()
		}
	}
}

// RunArchiveSweep moves every non-discharged session dated before today into
// history. Returns the number of sessions archived.
func (s *SweepService) RunArchiveSweep(ctx context.Context) (int64, error) {
	today := entity.DateOnly(s.now())

	archived, err := s.sessionRepo.ArchivePastSessions(s.db.WithContext(ctx), today)
	if err != nil {
		return 0, err
	}

	if archived > 0 {
		s.log.Infof("Archive sweep: moved %d past sessions to history", archived)
	}
	return archived, nil
}

// RunCompletionSweep discharges sessions stuck in post-dialysis longer than
// the configured grace period. Returns the number of sessions discharged.
func (s *SweepService) RunCompletionSweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.cfg.PostDialysisGrace)

	discharged, err := s.sessionRepo.AutoDischargeStale(s.db.WithContext(ctx), cutoff)
	if err != nil {
		return 0, err
	}

	if discharged > 0 {
		s.log.Infof("Completion sweep: auto-discharged %d stale post-dialysis sessions", discharged)
	}
	return discharged, nil
}
