package repository

import (
	"github.com/lshigami/Axolotls/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopicProgressRepository interface {
	Upsert(progress *model.TopicProgress) error
	Find(userID, learningPathID, topicID uint) (*model.TopicProgress, error)
}

type topicProgressRepository struct {
	db *gorm.DB
}

func NewTopicProgressRepository(db *gorm.DB) TopicProgressRepository {
	return &topicProgressRepository{db: db}
}

// Upsert inserts the progress record or, when one already exists for the
// (user, learning path, topic) key, overwrites its recomputed fields.
func (r *topicProgressRepository) Upsert(progress *model.TopicProgress) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "learning_path_id"}, {Name: "topic_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "attempts", "time_spent", "recent_scores", "status",
			"started_at", "completed_at", "updated_at",
		}),
	}).Create(progress).Error
}

func (r *topicProgressRepository) Find(userID, learningPathID, topicID uint) (*model.TopicProgress, error) {
	var progress model.TopicProgress
	err := r.db.
		Where("user_id = ? AND learning_path_id = ? AND topic_id = ?", userID, learningPathID, topicID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
