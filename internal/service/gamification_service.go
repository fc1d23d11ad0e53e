package service

import (
	"context"
	"encoding/json"
	"fmt"
	"lingo_learn_backend/internal/model"
	"lingo_learn_backend/internal/repository"
	"lingo_learn_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardCacheTTL = time.Minute

// GamificationService 用户游戏化状态查询与排行榜
type GamificationService struct {
	UserRepo         *repository.UserRepository
	GamificationRepo *repository.GamificationRepository
	Redis            *redis.Client
}

func NewGamificationService(userRepo *repository.UserRepository, gamificationRepo *repository.GamificationRepository, rdb *redis.Client) *GamificationService {
	return &GamificationService{
		UserRepo:         userRepo,
		GamificationRepo: gamificationRepo,
		Redis:            rdb,
	}
}

// GamificationSummary 用户当前累计状态
type GamificationSummary struct {
	TotalXP      int                        `json:"totalXp"`
	TotalJems    int                        `json:"totalJems"`
	StreakDays   int                        `json:"streakDays"`
	LastActivity *time.Time                 `json:"lastActivity,omitempty"`
	RecentXP     []model.UserXPTransaction  `json:"recentXp"`
	RecentJems   []model.UserJemTransaction `json:"recentJems"`
}

func (s *GamificationService) Summary(userID uint) (*GamificationSummary, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	recentXP, err := s.GamificationRepo.ListXPTransactions(userID, 10)
	if err != nil {
		return nil, err
	}
	recentJems, err := s.GamificationRepo.ListJemTransactions(userID, 10)
	if err != nil {
		return nil, err
	}

	return &GamificationSummary{
		TotalXP:      user.TotalXP,
		TotalJems:    user.Jems,
		StreakDays:   user.StreakDays,
		LastActivity: user.LastActivity,
		RecentXP:     recentXP,
		RecentJems:   recentJems,
	}, nil
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	UserID  uint   `json:"userId"`
	Name    string `json:"name"`
	TotalXP int    `json:"totalXp"`
}

// Leaderboard 按总经验排名，结果短暂缓存
func (s *GamificationService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	cacheKey := fmt.Sprintf("gamification:leaderboard:%d", limit)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:    i + 1,
			UserID:  u.ID,
			Name:    u.Name,
			TotalXP: u.TotalXP,
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Debug("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}

// MyRank 返回当前用户的排名（比其经验高的用户数 + 1）
func (s *GamificationService) MyRank(userID uint) (int, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return 0, err
	}
	higher, err := s.UserRepo.CountWithMoreXP(user.TotalXP)
	if err != nil {
		return 0, err
	}
	return int(higher) + 1, nil
}
