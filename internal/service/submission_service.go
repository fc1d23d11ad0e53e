package service

import (
	"encoding/json"
	"lingo_learn_backend/internal/model"
	"lingo_learn_backend/internal/repository"
	"lingo_learn_backend/internal/util"
	"lingo_learn_backend/pkg/logger"
	"lingo_learn_backend/pkg/monitoring"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionService 串起 规范化 -> 判题 -> 奖励 -> 入账 的完整提交流程。
// 判题部分无状态可并发；账本落库是唯一的竞争点，按用户行锁串行化。
type SubmissionService struct {
	QuestionRepo     *repository.QuestionRepository
	AttemptRepo      *repository.QuestionAttemptRepository
	UserRepo         *repository.UserRepository
	GamificationRepo *repository.GamificationRepository
	Calculator       *RewardCalculator
	DB               *gorm.DB
	MaxRetries       int
}

func NewSubmissionService(
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.QuestionAttemptRepository,
	userRepo *repository.UserRepository,
	gamificationRepo *repository.GamificationRepository,
	calculator *RewardCalculator,
	db *gorm.DB,
	maxRetries int,
) *SubmissionService {
	return &SubmissionService{
		QuestionRepo:     questionRepo,
		AttemptRepo:      attemptRepo,
		UserRepo:         userRepo,
		GamificationRepo: gamificationRepo,
		Calculator:       calculator,
		DB:               db,
		MaxRetries:       maxRetries,
	}
}

// GamificationUpdates 提交事务完成后的用户累计状态快照
type GamificationUpdates struct {
	XPEarned   int `json:"xp_earned"`
	JemsEarned int `json:"jems_earned"`
	TotalXP    int `json:"total_xp"`
	TotalJems  int `json:"total_jems"`
	StreakDays int `json:"streak_days"`
}

// SubmissionResult 提交接口的完整返回
type SubmissionResult struct {
	Attempt             *model.QuestionAttempt `json:"attempt"`
	Feedback            Feedback               `json:"feedback"`
	GamificationUpdates GamificationUpdates    `json:"gamificationUpdates"`
}

// Submit 处理一次答题提交。
// 规范化失败直接返回，不产生任何落库；判题与奖励计算是纯函数；
// 作答记录与用户累计状态在同一个事务内提交，冲突时有限次重试。
func (s *SubmissionService) Submit(userID, questionID, lessonID uint, rawAnswer json.RawMessage) (*SubmissionResult, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}

	key, err := question.DecodeKey()
	if err != nil {
		return nil, err
	}

	normalized, err := NormalizeAnswer(key, rawAnswer)
	if err != nil {
		return nil, err
	}

	feedback := Grade(question, key, normalized)

	storedAnswer, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}

	var result *SubmissionResult
	err = retryOnLockConflict(s.MaxRetries, userID, questionID, func() error {
		var recordErr error
		result, recordErr = s.record(userID, questionID, lessonID, question, feedback.Correct, storedAnswer)
		return recordErr
	})
	if err != nil {
		return nil, err
	}

	// 只统计成功落账的提交
	monitoring.ObserveSubmission(string(question.Type), feedback.Correct)

	result.Feedback = feedback
	return result, nil
}

// retryOnLockConflict 锁冲突时有限次重试账本事务，其他错误立即返回，
// 重试耗尽返回 ErrLedgerConflict
func retryOnLockConflict(maxRetries int, userID, questionID uint, fn func() error) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isLockConflict(err) {
			return err
		}
		logger.Log.Warn("ledger transaction conflict, retrying",
			zap.Uint("userId", userID),
			zap.Uint("questionId", questionID),
			zap.Int("retry", attempt+1),
			zap.Error(err),
		)
	}
	return util.ErrLedgerConflict
}

// record 单次账本事务：锁定用户行、计算尝试次数与奖励、写入作答记录与流水、更新累计状态。
// 全部成功或全部回滚，不存在记了提交却丢了奖励的中间态。
func (s *SubmissionService) record(userID, questionID, lessonID uint, question *model.Question, isCorrect bool, storedAnswer json.RawMessage) (*SubmissionResult, error) {
	var result SubmissionResult
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := s.UserRepo.FindByIDForUpdate(tx, userID)
		if err != nil {
			return err
		}

		priorAttempts, err := s.AttemptRepo.CountByUserAndQuestion(tx, userID, questionID)
		if err != nil {
			return err
		}
		attemptNumber := int(priorAttempts) + 1

		reward := s.Calculator.Compute(question, isCorrect, attemptNumber, user.StreakDays, user.LastActivity, now)

		attempt := &model.QuestionAttempt{
			UserID:        userID,
			QuestionID:    questionID,
			LessonID:      lessonID,
			UserAnswer:    storedAnswer,
			IsCorrect:     isCorrect,
			AttemptNumber: attemptNumber,
			JemsEarned:    reward.Jems,
			XPEarned:      reward.XP,
		}
		if err := s.AttemptRepo.Create(tx, attempt); err != nil {
			return err
		}

		qid := questionID
		if reward.XP > 0 {
			record := &model.UserXPTransaction{
				UserID:     userID,
				Amount:     reward.XP,
				SourceType: model.SourceQuestion,
				QuestionID: &qid,
			}
			if err := s.GamificationRepo.CreateXPTransaction(tx, record); err != nil {
				return err
			}
		}
		if reward.Jems > 0 {
			record := &model.UserJemTransaction{
				UserID:     userID,
				Amount:     reward.Jems,
				SourceType: model.SourceQuestion,
				QuestionID: &qid,
			}
			if err := s.GamificationRepo.CreateJemTransaction(tx, record); err != nil {
				return err
			}
		}
		if reward.StreakBonus > 0 {
			record := &model.UserJemTransaction{
				UserID:     userID,
				Amount:     reward.StreakBonus,
				SourceType: model.SourceStreak,
				QuestionID: &qid,
			}
			if err := s.GamificationRepo.CreateJemTransaction(tx, record); err != nil {
				return err
			}
		}

		user.TotalXP += reward.XP
		user.Jems += reward.Jems + reward.StreakBonus
		user.StreakDays = reward.StreakAfter
		user.LastActivity = &now
		if err := s.UserRepo.Save(tx, user); err != nil {
			return err
		}

		result.Attempt = attempt
		result.GamificationUpdates = GamificationUpdates{
			XPEarned:   reward.XP,
			JemsEarned: reward.Jems + reward.StreakBonus,
			TotalXP:    user.TotalXP,
			TotalJems:  user.Jems,
			StreakDays: user.StreakDays,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAttempts 返回当前用户对某题的历史作答
func (s *SubmissionService) ListAttempts(userID, questionID uint) ([]model.QuestionAttempt, error) {
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		return nil, err
	}
	return s.AttemptRepo.ListByUserAndQuestion(userID, questionID)
}

// isLockConflict 识别 MySQL 死锁(1213)与锁等待超时(1205)
func isLockConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Deadlock found") || strings.Contains(msg, "Lock wait timeout")
}
