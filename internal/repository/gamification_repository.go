package repository

import (
	"lingo_learn_backend/internal/model"

	"gorm.io/gorm"
)

// GamificationRepository 负责经验值与虚拟货币流水的追加写入
type GamificationRepository struct {
	DB *gorm.DB
}

func NewGamificationRepository(db *gorm.DB) *GamificationRepository {
	return &GamificationRepository{DB: db}
}

func (r *GamificationRepository) CreateXPTransaction(tx *gorm.DB, record *model.UserXPTransaction) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(record).Error
}

func (r *GamificationRepository) CreateJemTransaction(tx *gorm.DB, record *model.UserJemTransaction) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(record).Error
}

func (r *GamificationRepository) ListXPTransactions(userID uint, limit int) ([]model.UserXPTransaction, error) {
	var records []model.UserXPTransaction
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

func (r *GamificationRepository) ListJemTransactions(userID uint, limit int) ([]model.UserJemTransaction, error) {
	var records []model.UserJemTransaction
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}
