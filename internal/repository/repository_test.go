package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lshigami/Axolotls/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Topic{}, &model.Exercise{}, &model.Attempt{}, &model.TopicProgress{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestAttemptRepository_ChronologicalOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	base := time.Now().Add(-time.Hour)
	// Insert out of chronological order on purpose.
	timestamps := []time.Time{base.Add(2 * time.Minute), base, base.Add(time.Minute)}
	for i, at := range timestamps {
		score := float64(i * 10)
		attempt := &model.Attempt{
			UserID:        1,
			ContentID:     "ex-1",
			AttemptNumber: i + 1,
			UserAnswer:    fmt.Sprintf("answer %d", i),
			Score:         &score,
			CreatedAt:     at,
		}
		if err := repo.Create(attempt); err != nil {
			t.Fatalf("create attempt %d: %v", i, err)
		}
	}
	// Another user's attempt must not leak in.
	other := &model.Attempt{UserID: 2, ContentID: "ex-1", AttemptNumber: 1, UserAnswer: "other"}
	if err := repo.Create(other); err != nil {
		t.Fatalf("create other user attempt: %v", err)
	}

	attempts, err := repo.FindByUserAndContent(1, "ex-1")
	if err != nil {
		t.Fatalf("FindByUserAndContent: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("len = %d, want 3", len(attempts))
	}
	for i := 1; i < len(attempts); i++ {
		if attempts[i].CreatedAt.Before(attempts[i-1].CreatedAt) {
			t.Errorf("attempts not in chronological order: %v before %v", attempts[i].CreatedAt, attempts[i-1].CreatedAt)
		}
	}

	count, err := repo.CountByUserAndContent(1, "ex-1")
	if err != nil {
		t.Fatalf("CountByUserAndContent: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestExerciseRepository_FindByTopicID(t *testing.T) {
	db := newTestDB(t)
	topicRepo := NewTopicRepository(db)
	exerciseRepo := NewExerciseRepository(db)

	topic := &model.Topic{
		LearningPathID: 1,
		Title:          "Closures",
		Exercises: []model.Exercise{
			{ContentID: "ex-b", Title: "B", Question: "q", Type: model.ExerciseTypeCoding, EvaluationCriteria: "works", OrderInTopic: 2},
			{ContentID: "ex-a", Title: "A", Question: "q", Type: model.ExerciseTypeMultipleChoice, CorrectAnswer: "x", OrderInTopic: 1},
			{ContentID: "ex-c", Title: "C", Question: "q", Type: model.ExerciseTypeDebugging, CorrectAnswer: "y", OrderInTopic: 3},
		},
	}
	if err := topicRepo.Create(topic); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	// Soft-delete one exercise; it should vanish from the active set.
	if err := db.Where("content_id = ?", "ex-c").Delete(&model.Exercise{}).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	exercises, err := exerciseRepo.FindByTopicID(topic.ID)
	if err != nil {
		t.Fatalf("FindByTopicID: %v", err)
	}
	if len(exercises) != 2 {
		t.Fatalf("len = %d, want 2 active exercises", len(exercises))
	}
	if exercises[0].ContentID != "ex-a" || exercises[1].ContentID != "ex-b" {
		t.Errorf("order = [%s %s], want [ex-a ex-b]", exercises[0].ContentID, exercises[1].ContentID)
	}

	found, err := exerciseRepo.FindByContentID("ex-a")
	if err != nil {
		t.Fatalf("FindByContentID: %v", err)
	}
	if found.Title != "A" {
		t.Errorf("FindByContentID returned %q, want exercise A", found.Title)
	}

	loaded, err := topicRepo.FindByIDWithExercises(topic.ID)
	if err != nil {
		t.Fatalf("FindByIDWithExercises: %v", err)
	}
	if len(loaded.Exercises) != 2 {
		t.Errorf("preloaded exercises = %d, want 2", len(loaded.Exercises))
	}
}

func TestTopicProgressRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicProgressRepository(db)

	started := time.Now().Add(-time.Hour)
	completed := time.Now()
	progress := &model.TopicProgress{
		UserID:         1,
		LearningPathID: 2,
		TopicID:        3,
		Score:          75.5,
		Attempts:       4,
		TimeSpent:      120,
		RecentScores:   []float64{50, 100, 52, 100},
		Status:         model.ProgressStatusCompleted,
		StartedAt:      &started,
		CompletedAt:    &completed,
	}
	if err := repo.Upsert(progress); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	recomputed := &model.TopicProgress{
		UserID:         1,
		LearningPathID: 2,
		TopicID:        3,
		Score:          91.25,
		Attempts:       6,
		TimeSpent:      180,
		RecentScores:   []float64{50, 100, 52, 100, 95, 100},
		Status:         model.ProgressStatusMastered,
		StartedAt:      &started,
		CompletedAt:    &completed,
	}
	if err := repo.Upsert(recomputed); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	if err := db.Model(&model.TopicProgress{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows = %d, want the single upserted record", count)
	}

	found, err := repo.Find(1, 2, 3)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.Score != 91.25 || found.Attempts != 6 || found.Status != model.ProgressStatusMastered {
		t.Errorf("found = %+v, want the recomputed values", found)
	}
	if len(found.RecentScores) != 6 {
		t.Errorf("RecentScores = %v, want 6 entries", found.RecentScores)
	}

	if _, err := repo.Find(9, 9, 9); err == nil {
		t.Error("Find for a missing key must return an error")
	}
}
