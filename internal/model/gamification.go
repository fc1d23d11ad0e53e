package model

type RewardSource string

const (
	SourceQuestion RewardSource = "question" // 答题奖励
	SourceStreak   RewardSource = "streak"   // 连续活跃里程碑奖励
	SourceLesson   RewardSource = "lesson"
	SourceAdmin    RewardSource = "admin"
)

// UserXPTransaction 经验值流水，仅追加
type UserXPTransaction struct {
	BaseModel
	UserID     uint         `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Amount     int          `gorm:"not null" json:"amount"`
	SourceType RewardSource `gorm:"size:20;not null" json:"sourceType"`
	QuestionID *uint        `gorm:"index;type:bigint unsigned" json:"questionId,omitempty"`
}

func (UserXPTransaction) TableName() string {
	return "user_xp_transactions"
}

// UserJemTransaction 虚拟货币流水，仅追加
type UserJemTransaction struct {
	BaseModel
	UserID     uint         `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Amount     int          `gorm:"not null" json:"amount"`
	SourceType RewardSource `gorm:"size:20;not null" json:"sourceType"`
	QuestionID *uint        `gorm:"index;type:bigint unsigned" json:"questionId,omitempty"`
}

func (UserJemTransaction) TableName() string {
	return "user_jem_transactions"
}
