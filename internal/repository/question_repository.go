package repository

import (
	"errors"
	"lingo_learn_backend/internal/model"
	"lingo_learn_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindForReviewByIDs 返回指定题目中标记进入课程复习的子集
func (r *QuestionRepository) FindForReviewByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("id IN ? AND select_for_review = ?", ids, true).Find(&questions).Error
	return questions, err
}
