package jobqueue

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	metrics "github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/metrics/counter"
)

const (
	sweepInterval        = 15 * time.Minute
	counterFlushInterval = 5 * time.Second
	pruneInterval        = 24 * time.Hour
)

// Manager manages the global job queue and background tasks
type Manager struct {
	queue              *Queue
	sweepTicker        *time.Ticker
	counterFlushTicker *time.Ticker
	pruneTicker        *time.Ticker
	stopCh             chan struct{}
	wg                 sync.WaitGroup
	mu                 sync.Mutex
	running            bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{
			queue:  NewQueue(2),
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// StartMaintenanceWorker starts the global manager. The db handle is taken
// for symmetry with the rest of the setup calls; the processors read it via
// the global factory.
func StartMaintenanceWorker(db *gorm.DB) {
	if db == nil {
		log.Warn("[JobQueue Manager] No database handle, maintenance worker not started")
		return
	}
	GetManager().Start()
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue and background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and background tasks")

	// Start the job queue
	m.queue.Start()

	// Periodic expiry sweeps for subscriptions and placements
	m.sweepTicker = time.NewTicker(sweepInterval)
	m.wg.Add(1)
	go m.sweepWorker()

	// Counter flush worker (Redis -> DB)
	m.counterFlushTicker = time.NewTicker(counterFlushInterval)
	m.wg.Add(1)
	go m.counterFlushWorker()

	// Daily notification pruning
	m.pruneTicker = time.NewTicker(pruneInterval)
	m.wg.Add(1)
	go m.pruneWorker()

	// Run one sweep immediately so a restart doesn't wait a full interval.
	m.enqueueSweeps()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and background tasks...")

	if m.sweepTicker != nil {
		m.sweepTicker.Stop()
	}
	if m.counterFlushTicker != nil {
		m.counterFlushTicker.Stop()
	}
	if m.pruneTicker != nil {
		m.pruneTicker.Stop()
	}

	// Signal workers to stop
	close(m.stopCh)
	m.stopCh = nil
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	// Stop the job queue
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// sweepWorker periodically enqueues the expiry sweeps
func (m *Manager) sweepWorker() {
	defer m.wg.Done()
	log.Infof("[JobQueue Manager] Started sweep worker (interval: %s)", sweepInterval)

	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Sweep worker stopping")
			return
		case <-m.sweepTicker.C:
			m.enqueueSweeps()
		}
	}
}

func (m *Manager) enqueueSweeps() {
	if _, err := m.queue.EnqueueJob(JobTypeSubscriptionSweep, nil); err != nil {
		log.Errorf("[JobQueue Manager] Failed to enqueue subscription sweep: %v", err)
	}
	if _, err := m.queue.EnqueueJob(JobTypePlacementSweep, nil); err != nil {
		log.Errorf("[JobQueue Manager] Failed to enqueue placement sweep: %v", err)
	}
}

// counterFlushWorker periodically flushes buffered counters from Redis to DB
func (m *Manager) counterFlushWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Counter flush worker stopping")
			return
		case <-m.counterFlushTicker.C:
			if err := metrics.FlushAll(); err != nil {
				log.Errorf("[JobQueue Manager] Counter flush error: %v", err)
			}
		}
	}
}

// pruneWorker enqueues the daily notification prune
func (m *Manager) pruneWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Prune worker stopping")
			return
		case <-m.pruneTicker.C:
			if _, err := m.queue.EnqueueJob(JobTypeNotificationPrune, nil); err != nil {
				log.Errorf("[JobQueue Manager] Failed to enqueue notification prune: %v", err)
			}
		}
	}
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
