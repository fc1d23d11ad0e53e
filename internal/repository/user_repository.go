package repository

import (
	"errors"
	"lingo_learn_backend/internal/model"
	"lingo_learn_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDForUpdate 在事务内加行锁读取用户，账本更新期间串行化同一用户的并发提交
func (r *UserRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*model.User, error) {
	var user model.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Save(tx *gorm.DB, user *model.User) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(user).Error
}

func (r *UserRepository) FindTopByXP(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("disabled = ?", false).Order("total_xp DESC").Limit(limit).Find(&users).Error
	return users, err
}

// CountWithMoreXP 返回经验值高于给定值的用户数，用于计算排名
func (r *UserRepository) CountWithMoreXP(totalXP int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("disabled = ? AND total_xp > ?", false, totalXP).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", gorm.Expr("CURRENT_TIMESTAMP(3)")).
		Error
}
