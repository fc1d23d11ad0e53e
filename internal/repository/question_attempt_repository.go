package repository

import (
	"lingo_learn_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionAttemptRepository struct {
	DB *gorm.DB
}

func NewQuestionAttemptRepository(db *gorm.DB) *QuestionAttemptRepository {
	return &QuestionAttemptRepository{DB: db}
}

// CountByUserAndQuestion 统计用户对某题的历史提交数，尝试次数 = 历史提交数 + 1
func (r *QuestionAttemptRepository) CountByUserAndQuestion(tx *gorm.DB, userID, questionID uint) (int64, error) {
	if tx == nil {
		tx = r.DB
	}
	var count int64
	err := tx.Model(&model.QuestionAttempt{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Count(&count).Error
	return count, err
}

func (r *QuestionAttemptRepository) Create(tx *gorm.DB, attempt *model.QuestionAttempt) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(attempt).Error
}

// ListByUserAndQuestion 按提交时间倒序返回用户对某题的作答记录
func (r *QuestionAttemptRepository) ListByUserAndQuestion(userID, questionID uint) ([]model.QuestionAttempt, error) {
	var attempts []model.QuestionAttempt
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}
