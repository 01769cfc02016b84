package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mockmate/interview/internal/models"
)

// InterviewStore persists interview records.
type InterviewStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewInterviewStore(db *gorm.DB, log *zap.Logger) *InterviewStore {
	return &InterviewStore{db: db, log: log}
}

func (s *InterviewStore) Create(ctx context.Context, interview *models.Interview) error {
	if err := s.db.WithContext(ctx).Create(interview).Error; err != nil {
		return err
	}
	return nil
}

func (s *InterviewStore) Get(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := s.db.WithContext(ctx).First(&interview, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// Complete marks the interview finished, writing status, scores,
// feedback and the completion timestamp together. Re-applying the same
// values is a no-op in effect, so a failed finish can always be
// retried.
func (s *InterviewStore) Complete(ctx context.Context, id string, totalScore, maxScore int, feedback string, completedAt time.Time) error {
	result := s.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.StatusCompleted,
			"total_score":  totalScore,
			"max_score":    maxScore,
			"feedback":     feedback,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.log.Info("Interview completed",
		zap.String("interview_id", id),
		zap.Int("total_score", totalScore),
		zap.Int("max_score", maxScore))
	return nil
}
