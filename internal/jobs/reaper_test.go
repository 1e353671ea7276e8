package jobs

import (
	"testing"
	"time"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/repositories"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/testhelpers"
)

func seed(t *testing.T, repo *repositories.InterviewRepository, status string, startedAgo time.Duration) *models.Interview {
	t.Helper()
	interview := &models.Interview{
		UserID:        1,
		Role:          "Backend Engineer",
		InterviewType: "technical",
		Difficulty:    2,
		Duration:      30,
		InputMethod:   "text",
		Status:        status,
	}
	if err := repo.CreateInterview(interview); err != nil {
		t.Fatalf("failed to seed interview: %v", err)
	}
	if err := repo.DB.Model(interview).Update("started_at", time.Now().Add(-startedAgo)).Error; err != nil {
		t.Fatalf("failed to backdate interview: %v", err)
	}
	return interview
}

func TestRunOnceAbandonsOnlyOverdueInProgress(t *testing.T) {
	repo := &repositories.InterviewRepository{DB: testhelpers.SetupTestDB(t)}
	job := NewReaperJob(repo, "*/10 * * * *", 15)

	overdue := seed(t, repo, models.InterviewInProgress, 2*time.Hour)
	running := seed(t, repo, models.InterviewInProgress, 5*time.Minute)
	done := seed(t, repo, models.InterviewInProgress, 2*time.Hour)
	if err := repo.CompleteInterview(done.ID, models.InterviewCompleted); err != nil {
		t.Fatalf("failed to complete interview: %v", err)
	}

	reaped, err := job.RunOnce()
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if reaped != 1 {
		t.Fatalf("expected 1 reaped, got %d", reaped)
	}

	got, _ := repo.GetInterviewByID(overdue.ID)
	if got.Status != models.InterviewAbandoned {
		t.Fatalf("expected overdue interview abandoned, got %q", got.Status)
	}
	got, _ = repo.GetInterviewByID(running.ID)
	if got.Status != models.InterviewInProgress {
		t.Fatalf("expected running interview untouched, got %q", got.Status)
	}
	got, _ = repo.GetInterviewByID(done.ID)
	if got.Status != models.InterviewCompleted {
		t.Fatalf("expected completed interview untouched, got %q", got.Status)
	}
}

func TestRunOnceRespectsGracePeriod(t *testing.T) {
	repo := &repositories.InterviewRepository{DB: testhelpers.SetupTestDB(t)}
	job := NewReaperJob(repo, "*/10 * * * *", 15)

	// 30 min duration, ended 10 min ago: inside the 15 min grace window.
	seed(t, repo, models.InterviewInProgress, 40*time.Minute)

	reaped, err := job.RunOnce()
	if err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if reaped != 0 {
		t.Fatalf("expected 0 reaped inside grace window, got %d", reaped)
	}
}
