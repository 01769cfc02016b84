package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mockmate/interview/internal/models"
)

// QuestionStore persists question records, hiding transient failures
// from the session layer where possible: batch inserts are retried
// exactly once before degrading to placeholder mode, and updates keyed
// by a placeholder identity are skipped without a round trip.
type QuestionStore struct {
	db        *gorm.DB
	log       *zap.Logger
	backoff   time.Duration
	hrBackoff time.Duration
	sleep     func(time.Duration)
}

func NewQuestionStore(db *gorm.DB, log *zap.Logger, backoff, hrBackoff time.Duration) *QuestionStore {
	return &QuestionStore{
		db:        db,
		log:       log,
		backoff:   backoff,
		hrBackoff: hrBackoff,
		sleep:     time.Sleep,
	}
}

// InsertBatch inserts all questions for one interview, assigning UUID
// identities. On failure it retries once after a fixed backoff; HR
// batches wait longer before retrying since their failures tend to be
// caused by stale auth tokens that need time to refresh. If the retry
// also fails it returns ErrUsePlaceholders and leaves the slice
// untouched for the caller to tag.
func (s *QuestionStore) InsertBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	for _, q := range questions {
		if q.ID == "" || IsPlaceholderID(q.ID) {
			q.ID = uuid.New().String()
		}
	}

	err := s.db.WithContext(ctx).Create(questions).Error
	if err == nil {
		return nil
	}

	backoff := s.backoff
	if questions[0].QuestionType == models.QuestionTypeHR {
		backoff = s.hrBackoff
	}
	s.log.Warn("Question batch insert failed, retrying",
		zap.String("interview_id", questions[0].InterviewID),
		zap.Duration("backoff", backoff),
		zap.Error(err))
	s.sleep(backoff)

	if err := s.db.WithContext(ctx).Create(questions).Error; err != nil {
		s.log.Warn("Question batch insert retry failed, degrading to placeholder identities",
			zap.String("interview_id", questions[0].InterviewID),
			zap.Error(err))
		return ErrUsePlaceholders
	}
	return nil
}

// UpdateAnswer writes the answer field selected by kind for a single
// question row. Placeholder identities are skipped deliberately: the
// row does not exist server-side, and reporting success keeps the
// in-memory question set authoritative.
func (s *QuestionStore) UpdateAnswer(ctx context.Context, id string, kind models.AnswerKind, value string) error {
	if IsPlaceholderID(id) {
		return nil
	}
	column := "user_answer"
	if kind == models.KindCoding {
		column = "user_code"
	}
	err := s.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", id).
		Update(column, value).Error
	if err == nil {
		return nil
	}

	s.log.Warn("Answer update failed, retrying",
		zap.String("question_id", id),
		zap.Error(err))
	s.sleep(s.backoff)
	return s.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", id).
		Update(column, value).Error
}

// SaveEvaluation writes the evaluator's verdict back onto one question
// row. Placeholder rows are skipped for the same reason as updates.
func (s *QuestionStore) SaveEvaluation(ctx context.Context, id string, isCorrect bool, score int, feedback string) error {
	if IsPlaceholderID(id) {
		return nil
	}
	return s.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_correct":  isCorrect,
			"score":       score,
			"ai_feedback": feedback,
		}).Error
}

// ListByInterview returns the interview's questions in position order.
func (s *QuestionStore) ListByInterview(ctx context.Context, interviewID string) ([]*models.Question, error) {
	var questions []*models.Question
	err := s.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("position ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
