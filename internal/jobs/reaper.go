// Package jobs holds the background maintenance jobs run by the server.
package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/metrics"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/repositories"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/utils"
)

// ReaperJob marks interviews that were never ended as abandoned once their
// planned duration plus a grace period has elapsed.
type ReaperJob struct {
	interviews   *repositories.InterviewRepository
	schedule     string
	graceMinutes int
	cron         *cron.Cron
}

func NewReaperJob(interviews *repositories.InterviewRepository, schedule string, graceMinutes int) *ReaperJob {
	return &ReaperJob{
		interviews:   interviews,
		schedule:     schedule,
		graceMinutes: graceMinutes,
		cron:         cron.New(),
	}
}

// Start schedules the reaper.
func (j *ReaperJob) Start() error {
	logger := utils.GetLogger()
	logger.Info("starting interview reaper", zap.String("schedule", j.schedule))

	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(); err != nil {
			logger.Error("interview reaper run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reaper: %w", err)
	}

	j.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running pass to finish.
func (j *ReaperJob) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce performs a single reap pass and returns how many interviews were
// abandoned.
func (j *ReaperJob) RunOnce() (int, error) {
	stale, err := j.interviews.FindStale(time.Now(), j.graceMinutes)
	if err != nil {
		return 0, err
	}

	logger := utils.GetLogger()
	reaped := 0
	for _, interview := range stale {
		if err := j.interviews.CompleteInterview(interview.ID, models.InterviewAbandoned); err != nil {
			// Raced with an explicit end; nothing to do.
			continue
		}
		metrics.InterviewFinished(models.InterviewAbandoned)
		logger.Info("abandoned stale interview", zap.String("interview_id", interview.ID))
		reaped++
	}
	return reaped, nil
}
