package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"gorm.io/gorm"
)

func seedTopicWithExercises(t *testing.T, db *gorm.DB, contentIDs ...string) *model.Topic {
	t.Helper()
	topic := &model.Topic{LearningPathID: 1, Title: "Variables and Scoping"}
	for i, cid := range contentIDs {
		topic.Exercises = append(topic.Exercises, model.Exercise{
			ContentID:    cid,
			Title:        "Exercise " + cid,
			Question:     "question",
			Type:         model.ExerciseTypeMultipleChoice,
			OrderInTopic: i + 1,
		})
	}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	return topic
}

func seedAttempt(t *testing.T, db *gorm.DB, userID uint, contentID string, number int, correct bool, score, responseTime float64, at time.Time) {
	t.Helper()
	attempt := &model.Attempt{
		UserID:        userID,
		ContentID:     contentID,
		AttemptNumber: number,
		UserAnswer:    "answer",
		IsCorrect:     correct,
		Score:         &score,
		ResponseTime:  &responseTime,
		CreatedAt:     at,
	}
	if err := db.Create(attempt).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
}

func newProgressService(db *gorm.DB) TopicProgressService {
	return NewTopicProgressService(
		repository.NewExerciseRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewTopicProgressRepository(db),
	)
}

func TestAreAllExercisesCompleted_EmptyTopic(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopicWithExercises(t, db)
	svc := newProgressService(db)

	completed, err := svc.AreAllExercisesCompleted(1, topic.ID)
	if err != nil {
		t.Fatalf("AreAllExercisesCompleted: %v", err)
	}
	if completed {
		t.Error("a topic with zero exercises must never be complete")
	}
}

func TestAreAllExercisesCompleted_ExhaustedCapIsNotCompletion(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopicWithExercises(t, db, "ex-a", "ex-b")
	svc := newProgressService(db)

	base := time.Now().Add(-time.Hour)
	// Exercise A solved on the second try.
	seedAttempt(t, db, 1, "ex-a", 1, false, 0, 10, base)
	seedAttempt(t, db, 1, "ex-a", 2, true, 100, 12, base.Add(time.Minute))
	// Exercise B: cap exhausted, never correct.
	seedAttempt(t, db, 1, "ex-b", 1, false, 0, 8, base.Add(2*time.Minute))
	seedAttempt(t, db, 1, "ex-b", 2, false, 0, 9, base.Add(3*time.Minute))
	seedAttempt(t, db, 1, "ex-b", 3, false, 0, 7, base.Add(4*time.Minute))

	completed, err := svc.AreAllExercisesCompleted(1, topic.ID)
	if err != nil {
		t.Fatalf("AreAllExercisesCompleted: %v", err)
	}
	if completed {
		t.Error("exhausting the attempt cap must not count as completion")
	}
}

func TestAreAllExercisesCompleted_AllSolved(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopicWithExercises(t, db, "ex-a", "ex-b")
	svc := newProgressService(db)

	base := time.Now().Add(-time.Hour)
	seedAttempt(t, db, 1, "ex-a", 1, true, 100, 10, base)
	seedAttempt(t, db, 1, "ex-b", 1, false, 0, 8, base.Add(time.Minute))
	seedAttempt(t, db, 1, "ex-b", 2, true, 100, 9, base.Add(2*time.Minute))

	completed, err := svc.AreAllExercisesCompleted(1, topic.ID)
	if err != nil {
		t.Fatalf("AreAllExercisesCompleted: %v", err)
	}
	if !completed {
		t.Error("every exercise has a correct attempt, expected completion")
	}
}

func TestCreateTopicProgress_NoAttempts(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopicWithExercises(t, db, "ex-a")
	svc := newProgressService(db)

	_, err := svc.CreateTopicProgress(1, 1, topic.ID)
	if !errors.Is(err, ErrNoAttemptsForTopic) {
		t.Errorf("err = %v, want ErrNoAttemptsForTopic", err)
	}
}

func TestCreateTopicProgress_Rollup(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopicWithExercises(t, db, "ex-a", "ex-b")
	svc := newProgressService(db)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	seedAttempt(t, db, 1, "ex-a", 1, false, 50, 10, base)
	seedAttempt(t, db, 1, "ex-a", 2, true, 100, 20, base.Add(time.Minute))
	seedAttempt(t, db, 1, "ex-b", 1, true, 100, 30, base.Add(2*time.Minute))

	progress, err := svc.CreateTopicProgress(1, 7, topic.ID)
	if err != nil {
		t.Fatalf("CreateTopicProgress: %v", err)
	}

	// mean(50, 100, 100) = 83.33 after rounding
	if progress.Score != 83.33 {
		t.Errorf("Score = %v, want 83.33", progress.Score)
	}
	if progress.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3 (every retry counts)", progress.Attempts)
	}
	if progress.TimeSpent != 60 {
		t.Errorf("TimeSpent = %v, want 60", progress.TimeSpent)
	}
	if progress.Status != model.ProgressStatusCompleted {
		t.Errorf("Status = %q, want completed for a mean in [70, 90)", progress.Status)
	}
	if len(progress.RecentScores) != 3 || progress.RecentScores[0] != 50 || progress.RecentScores[2] != 100 {
		t.Errorf("RecentScores = %v, want chronological [50 100 100]", progress.RecentScores)
	}
	if progress.StartedAt == nil || !progress.StartedAt.Equal(base) {
		t.Errorf("StartedAt = %v, want timestamp of the first attempt (%v)", progress.StartedAt, base)
	}
	if progress.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
}

func TestCreateTopicProgress_StatusThresholds(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   string
	}{
		{"mastered at 90", []float64{80, 100}, model.ProgressStatusMastered},
		{"completed at 70", []float64{40, 100}, model.ProgressStatusCompleted},
		{"low mean stays in progress", []float64{0, 0, 100}, model.ProgressStatusInProgress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			topic := seedTopicWithExercises(t, db, "ex-a")
			svc := newProgressService(db)

			base := time.Now().Add(-time.Hour)
			for i, score := range tc.scores {
				correct := i == len(tc.scores)-1
				seedAttempt(t, db, 1, "ex-a", i+1, correct, score, 5, base.Add(time.Duration(i)*time.Minute))
			}

			progress, err := svc.CreateTopicProgress(1, 1, topic.ID)
			if err != nil {
				t.Fatalf("CreateTopicProgress: %v", err)
			}
			if progress.Status != tc.want {
				t.Errorf("Status = %q, want %q (scores %v)", progress.Status, tc.want, tc.scores)
			}
		})
	}
}

func TestCreateTopicProgress_Idempotent(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopicWithExercises(t, db, "ex-a")
	svc := newProgressService(db)

	base := time.Now().Add(-time.Hour)
	seedAttempt(t, db, 1, "ex-a", 1, false, 60, 15, base)
	seedAttempt(t, db, 1, "ex-a", 2, true, 100, 25, base.Add(time.Minute))

	first, err := svc.CreateTopicProgress(1, 1, topic.ID)
	if err != nil {
		t.Fatalf("first aggregation: %v", err)
	}
	second, err := svc.CreateTopicProgress(1, 1, topic.ID)
	if err != nil {
		t.Fatalf("second aggregation: %v", err)
	}

	if first.Score != second.Score || first.Attempts != second.Attempts ||
		first.TimeSpent != second.TimeSpent || first.Status != second.Status {
		t.Errorf("aggregation not idempotent: first=%+v second=%+v", first, second)
	}

	var count int64
	if err := db.Model(&model.TopicProgress{}).Count(&count).Error; err != nil {
		t.Fatalf("count progress rows: %v", err)
	}
	if count != 1 {
		t.Errorf("progress rows = %d, want a single upserted record", count)
	}
}

func TestGetTopicProgress(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopicWithExercises(t, db, "ex-a")
	svc := newProgressService(db)

	// Nothing saved yet, nothing completed.
	progress, allCompleted, err := svc.GetTopicProgress(1, 1, topic.ID)
	if err != nil {
		t.Fatalf("GetTopicProgress: %v", err)
	}
	if progress != nil || allCompleted {
		t.Errorf("got progress=%+v allCompleted=%v, want nil/false before any attempt", progress, allCompleted)
	}

	seedAttempt(t, db, 1, "ex-a", 1, true, 100, 5, time.Now().Add(-time.Minute))
	if _, err := svc.CreateTopicProgress(1, 1, topic.ID); err != nil {
		t.Fatalf("CreateTopicProgress: %v", err)
	}

	progress, allCompleted, err = svc.GetTopicProgress(1, 1, topic.ID)
	if err != nil {
		t.Fatalf("GetTopicProgress: %v", err)
	}
	if progress == nil || !allCompleted {
		t.Fatalf("got progress=%+v allCompleted=%v, want saved record and true", progress, allCompleted)
	}
	if progress.Status != model.ProgressStatusMastered {
		t.Errorf("Status = %q, want mastered for a perfect score", progress.Status)
	}
}
