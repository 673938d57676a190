/*
scheduler.go - Automated weekly draft scheduler

PURPOSE:
  Periodically checks for projects whose last completed week has no
  report yet and automatically generates a draft from that week's daily
  entries and source records.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - The last completed week is the one ending before today
  - Projects whose slot is already taken (any status) are skipped
  - Generated drafts wait for a human to review and submit

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewDraftScheduler(store, handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - hse/lifecycle.go: CreateDraft used per project
  - cmd/server/main.go: Scheduler startup
*/
package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/warp/hse-engine/hse"
	"github.com/warp/hse-engine/store/sqlite"
)

// DraftScheduler generates weekly drafts for projects that missed theirs.
type DraftScheduler struct {
	Store         *sqlite.Store
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewDraftScheduler creates a new scheduler.
func NewDraftScheduler(store *sqlite.Store, handler *Handler) *DraftScheduler {
	return &DraftScheduler{
		Store:         store,
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (ds *DraftScheduler) Start() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	ds.ticker = time.NewTicker(ds.CheckInterval)
	ds.wg.Add(1)

	go ds.run()

	log.Printf("[Scheduler] Started with check interval: %v", ds.CheckInterval)
}

// Stop stops the scheduler.
func (ds *DraftScheduler) Stop() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.ticker != nil {
		ds.ticker.Stop()
		close(ds.stop)
		ds.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ds *DraftScheduler) run() {
	defer ds.wg.Done()

	// Run immediately on start
	ds.checkAndGenerate()

	for {
		select {
		case <-ds.ticker.C:
			ds.checkAndGenerate()
		case <-ds.stop:
			return
		}
	}
}

func (ds *DraftScheduler) checkAndGenerate() {
	ctx := context.Background()
	today := hse.Today()

	// Last completed week: the one containing today minus one week.
	period := ds.Handler.Weeks.Resolve(today.AddDays(-7))
	if !period.End.Before(today) {
		return
	}

	log.Printf("[Scheduler] Checking drafts for week %d/%d", period.Number, period.Year)

	projects, err := ds.Store.Projects(ctx)
	if err != nil {
		log.Printf("[Scheduler] Error listing projects: %v", err)
		return
	}

	generated := 0
	skipped := 0

	for _, p := range projects {
		existing, err := ds.Store.FindReport(ctx, p.ID, period.Number, period.Year)
		if err != nil {
			log.Printf("[Scheduler] Error checking report for %s: %v", p.ID, err)
			continue
		}
		if existing != nil {
			skipped++
			continue
		}

		submitter := hse.Actor{ID: "scheduler", Role: hse.RoleSubmitter}
		if _, err := ds.Handler.Lifecycle.CreateDraft(ctx, p.ID, period, submitter); err != nil {
			// Lost race with a concurrent manual create - the slot is taken.
			if errors.Is(err, hse.ErrDuplicatePeriod) {
				skipped++
				continue
			}
			log.Printf("[Scheduler] Error generating draft for %s: %v", p.ID, err)
			continue
		}
		generated++
	}

	if generated > 0 || skipped > 0 {
		log.Printf("[Scheduler] Completed: %d generated, %d skipped (already exist)", generated, skipped)
	}
}

// RunNow triggers an immediate check (for testing/admin).
func (ds *DraftScheduler) RunNow() {
	ds.checkAndGenerate()
}

// GetNextRunTime returns when the next scheduled check will occur.
func (ds *DraftScheduler) GetNextRunTime() time.Time {
	return time.Now().Add(ds.CheckInterval)
}
