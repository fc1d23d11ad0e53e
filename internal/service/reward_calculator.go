package service

import (
	"lingo_learn_backend/internal/config"
	"lingo_learn_backend/internal/model"
	"time"
)

// Reward 一次提交的奖励结算结果
type Reward struct {
	Jems        int // 答题奖励货币
	XP          int // 答题奖励经验
	StreakBonus int // 连续活跃里程碑的一次性奖励货币
	StreakAfter int // 结算后的连续活跃天数
}

// RewardCalculator 按尝试次数衰减和连续活跃规则计算奖励，曲线参数来自配置
type RewardCalculator struct {
	cfg config.RewardConfig
}

func NewRewardCalculator(cfg config.RewardConfig) *RewardCalculator {
	return &RewardCalculator{cfg: cfg}
}

// UpdateConfig 配置热重载时替换奖励参数
func (c *RewardCalculator) UpdateConfig(cfg config.RewardConfig) {
	c.cfg = cfg
}

// Compute 计算本次提交的奖励。
// 答错不得奖励，但提交本身计入当日活跃；答对时首次尝试得满额，
// 之后按尝试次数整除衰减并有下限保底。
func (c *RewardCalculator) Compute(q *model.Question, isCorrect bool, attemptNumber int, streakBefore int, lastActivity *time.Time, now time.Time) Reward {
	reward := Reward{
		StreakAfter: NextStreak(streakBefore, lastActivity, now),
	}

	if !isCorrect {
		return reward
	}

	xpBase := q.XPAvailable
	if xpBase <= 0 {
		xpBase = c.cfg.XPPerDifficulty * q.Difficulty
	}

	if attemptNumber <= 1 {
		reward.Jems = q.Jems
		reward.XP = xpBase
	} else {
		reward.Jems = maxInt(c.cfg.MinJems, q.Jems/attemptNumber)
		reward.XP = maxInt(c.cfg.MinXP, xpBase/attemptNumber)
	}

	// 里程碑奖励：连续天数推进且落在里程碑上时一次性发放
	if c.cfg.StreakBonusJems > 0 &&
		reward.StreakAfter != streakBefore &&
		c.cfg.StreakMilestone > 0 &&
		reward.StreakAfter%c.cfg.StreakMilestone == 0 {
		reward.StreakBonus = c.cfg.StreakBonusJems
	}

	return reward
}

// NextStreak 按日期推进连续活跃天数：同一自然日不变，恰好隔一天加一，中断或首次活跃归一
func NextStreak(streakBefore int, lastActivity *time.Time, now time.Time) int {
	if lastActivity == nil {
		return 1
	}

	switch daysBetween(*lastActivity, now) {
	case 0:
		if streakBefore < 1 {
			return 1
		}
		return streakBefore
	case 1:
		return streakBefore + 1
	default:
		return 1
	}
}

// daysBetween 按日历日计算间隔天数。
// 日期在 UTC 上重建后再求差，夏令时切换造成的23/25小时自然日不影响结果。
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
