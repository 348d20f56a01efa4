package background

import (
	"context"
	"log"
	"time"

	"bima-invoice/internal/analytics"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs periodic maintenance: keeping the cached payment summary
// warm so the dashboard never waits on a full store scan.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.AnalyticsService
}

// NewJobScheduler creates a scheduler with the refresh job registered.
func NewJobScheduler(analyticsSvc *analytics.AnalyticsService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.refreshPaymentSummary),
		gocron.WithName("payment-summary-refresh"),
	)
	return err
}

func (js *JobScheduler) refreshPaymentSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := js.analyticsSvc.Refresh(ctx); err != nil {
		log.Printf("Failed to refresh payment summary: %v", err)
	}
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (js *JobScheduler) Stop() error {
	return js.scheduler.Shutdown()
}
