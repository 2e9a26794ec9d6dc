package progress

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"mindbloom/internal/progress/interfaces"
	"mindbloom/internal/providers"
	"mindbloom/internal/structures"
)

// Scheduler periodically writes the report history snapshot and
// restores it on startup.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	snapshot *SnapshotManager
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.snapshot.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted snapshot to file %s", s.config.Persistence.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.snapshot.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting report snapshot to file...")
	err := s.snapshot.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, snapshot *SnapshotManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		metrics:  metrics,
		snapshot: snapshot,
	}
}
