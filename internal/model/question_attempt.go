package model

import "encoding/json"

// QuestionAttempt 用户答题记录，创建后不可变；重复作答会新增一条记录
// swagger:model QuestionAttempt
type QuestionAttempt struct {
	UUIDBase
	UserID        uint            `gorm:"index:idx_attempt_user_question;type:bigint unsigned;not null" json:"userId"`
	QuestionID    uint            `gorm:"index:idx_attempt_user_question;type:bigint unsigned;not null" json:"questionId"`
	LessonID      uint            `gorm:"index;type:bigint unsigned;not null" json:"lessonId"`
	UserAnswer    json.RawMessage `gorm:"type:json" json:"userAnswer"`
	IsCorrect     bool            `json:"isCorrect"`
	AttemptNumber int             `gorm:"default:1" json:"attemptNumber"`
	JemsEarned    int             `gorm:"default:0" json:"jemsEarned"`
	XPEarned      int             `gorm:"default:0" json:"xpEarned"`
}

func (QuestionAttempt) TableName() string {
	return "question_attempts"
}
