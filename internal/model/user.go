package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string     `gorm:"size:100;not null" json:"Name"`
	Email        string     `gorm:"size:100;unique;not null" json:"Email"`
	Role         UserRole   `gorm:"type:enum('student','teacher','admin');default:'student'" json:"Role"`
	TotalXP      int        `gorm:"default:0" json:"totalXp"`              // 累计经验值
	Jems         int        `gorm:"default:5" json:"jems"`                 // 虚拟货币余额
	StreakDays   int        `gorm:"default:0" json:"streakDays"`           // 连续活跃天数
	LastActivity *time.Time `gorm:"index" json:"lastActivity,omitempty"`   // 最近一次提交时间
	Language     string     `gorm:"size:10;default:'en'" json:"Language"`
	Disabled     bool       `gorm:"default:false" json:"Disabled"`
	LastSeen     time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"LastSeen"`
}

func (User) TableName() string {
	return "users"
}
